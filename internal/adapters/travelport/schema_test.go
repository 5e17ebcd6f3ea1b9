package travelport_test

import (
	"encoding/json"
	"testing"

	"travelfares/internal/adapters/travelport"
)

func TestCodeRef_BothShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"LHR"`, "LHR"},
		{`{"value":"JFK"}`, "JFK"},
		{`null`, ""},
	}
	for _, tc := range cases {
		var c travelport.CodeRef
		if err := json.Unmarshal([]byte(tc.in), &c); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if c.Value != tc.want {
			t.Fatalf("unmarshal %s: got %q, want %q", tc.in, c.Value, tc.want)
		}
	}

	b, err := json.Marshal(travelport.CodeRef{Value: "LHR"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"value":"LHR"}` {
		t.Fatalf("marshal emitted %s", b)
	}
}

func TestFlightRef_BothShapes(t *testing.T) {
	var plain travelport.FlightRef
	if err := json.Unmarshal([]byte(`"f1"`), &plain); err != nil || plain.Ref != "f1" {
		t.Fatalf("plain ref: %v %+v", err, plain)
	}

	var obj travelport.FlightRef
	if err := json.Unmarshal([]byte(`{"@type":"FlightID","FlightRef":"f2"}`), &obj); err != nil || obj.Ref != "f2" {
		t.Fatalf("object ref: %v %+v", err, obj)
	}

	b, err := json.Marshal(travelport.FlightRef{Ref: "f3"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"@type":"FlightID","FlightRef":"f3"}` {
		t.Fatalf("marshal emitted %s", b)
	}
}

func TestReferenceEntry_Discriminator(t *testing.T) {
	raw := `[
	  {"@type":"ReferenceListFlight","Flight":[{"id":"f1","carrier":"BA","number":"117","Origin":"LHR","Destination":"JFK"}]},
	  {"@type":"ReferenceListProduct","Product":[{"@type":"ProductAir","id":"p1"}]},
	  {"@type":"ReferenceListBrand"}
	]`
	var entries []travelport.ReferenceEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Type != travelport.TypeReferenceListFlight || len(entries[0].Flight) != 1 {
		t.Fatalf("flight entry: %+v", entries[0])
	}
	if entries[1].Type != travelport.TypeReferenceListProduct || len(entries[1].Product) != 1 {
		t.Fatalf("product entry: %+v", entries[1])
	}
	if len(entries[2].Flight) != 0 && len(entries[2].Product) != 0 {
		t.Fatalf("unknown entry should carry no records: %+v", entries[2])
	}
}
