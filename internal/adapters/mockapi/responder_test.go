package mockapi_test

import (
	"errors"
	"testing"

	"travelfares/internal/adapters/mockapi"
	"travelfares/internal/adapters/travelport"
)

func searchPayload(origin, destination string, roundTrip bool) travelport.SearchRequest {
	req := travelport.OfferingsRequest{
		PassengerCriteria: []travelport.PassengerCriterion{{Value: "ADT", Number: 1}},
		SearchCriteriaFlight: []travelport.FlightCriterion{{
			DepartureDate: "2026-09-10",
			From:          travelport.Endpoint{Value: origin},
			To:            travelport.Endpoint{Value: destination},
		}},
	}
	if roundTrip {
		req.SearchCriteriaFlight = append(req.SearchCriteriaFlight, travelport.FlightCriterion{
			DepartureDate: "2026-09-17",
			From:          travelport.Endpoint{Value: destination},
			To:            travelport.Endpoint{Value: origin},
		})
	}
	return travelport.SearchRequest{QueryRequest: travelport.QueryRequest{Request: req}}
}

// indexes resolves a response's reference list the way a consumer would.
func indexes(t *testing.T, resp *travelport.SearchResponse) (map[string]travelport.Flight, map[string]travelport.Product) {
	t.Helper()
	flights := map[string]travelport.Flight{}
	products := map[string]travelport.Product{}
	for _, ref := range resp.Response.ReferenceList {
		switch ref.Type {
		case travelport.TypeReferenceListFlight:
			for _, f := range ref.Flight {
				flights[f.ID] = f
			}
		case travelport.TypeReferenceListProduct:
			for _, p := range ref.Product {
				products[p.ID] = p
			}
		}
	}
	return flights, products
}

func TestRespond_OneWayEconomy(t *testing.T) {
	resp, err := mockapi.NewResponder(42).Respond(searchPayload("LHR", "JFK", false))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	offerings := resp.Response.Offerings.Offering
	if len(offerings) < 3 || len(offerings) > 5 {
		t.Fatalf("expected 3-5 offerings, got %d", len(offerings))
	}

	flights, products := indexes(t, resp)
	for _, off := range offerings {
		// one adult, economy, one-way: base 450 with ±10% jitter
		v := off.TotalPrice.Value
		if v < 450*0.9 || v > 450*1.1 {
			t.Fatalf("price %v outside jitter band around 450", v)
		}
		if off.TotalPrice.Code != "USD" {
			t.Fatalf("unexpected currency %s", off.TotalPrice.Code)
		}

		ref := off.ProductOptions[0].ProductRef
		p, ok := products[ref]
		if !ok {
			t.Fatalf("offering %s references unknown product %s", off.ID, ref)
		}
		if p.Type != travelport.TypeProductAir || len(p.FlightSegment) != 1 {
			t.Fatalf("one-way product should hold 1 segment: %+v", p)
		}
		f, ok := flights[p.FlightSegment[0].Flight.Ref]
		if !ok {
			t.Fatalf("segment references unknown flight %s", p.FlightSegment[0].Flight.Ref)
		}
		if f.Origin.Value != "LHR" || f.Destination.Value != "JFK" {
			t.Fatalf("flight route %s→%s, want LHR→JFK", f.Origin.Value, f.Destination.Value)
		}
		if f.DepartureTime[:10] != "2026-09-10" {
			t.Fatalf("departure date not echoed: %s", f.DepartureTime)
		}
	}
}

func TestRespond_RoundTrip(t *testing.T) {
	resp, err := mockapi.NewResponder(7).Respond(searchPayload("LHR", "JFK", true))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	flights, products := indexes(t, resp)
	for _, off := range resp.Response.Offerings.Offering {
		// round trip: 450 × 1.8 with jitter
		v := off.TotalPrice.Value
		if v < 450*1.8*0.9 || v > 450*1.8*1.1 {
			t.Fatalf("round-trip price %v outside expected band", v)
		}

		p := products[off.ProductOptions[0].ProductRef]
		if len(p.FlightSegment) != 2 {
			t.Fatalf("round-trip product should hold 2 segments: %+v", p)
		}
		ret := flights[p.FlightSegment[1].Flight.Ref]
		if ret.Origin.Value != "JFK" || ret.Destination.Value != "LHR" {
			t.Fatalf("return leg route %s→%s", ret.Origin.Value, ret.Destination.Value)
		}
		if ret.DepartureTime[:10] != "2026-09-17" {
			t.Fatalf("return date not echoed: %s", ret.DepartureTime)
		}
		if p.FlightSegment[0].ConnectionDuration == "" {
			t.Fatalf("expected connection duration between segments")
		}
	}
}

func TestRespond_CabinAndPassengersScalePrice(t *testing.T) {
	sr := searchPayload("LHR", "JFK", false)
	sr.QueryRequest.Request.Cabin = []string{"Business"}
	sr.QueryRequest.Request.PassengerCriteria = []travelport.PassengerCriterion{{Value: "ADT", Number: 2}}

	resp, err := mockapi.NewResponder(7).Respond(sr)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, off := range resp.Response.Offerings.Offering {
		v := off.TotalPrice.Value
		if v < 2500*2*0.9 || v > 2500*2*1.1 {
			t.Fatalf("business ×2 price %v outside expected band", v)
		}
	}
}

func TestRespond_UnknownRouteIsEmptySuccess(t *testing.T) {
	resp, err := mockapi.NewResponder(7).Respond(searchPayload("CDG", "NRT", false))
	if err != nil {
		t.Fatalf("unknown route must not error: %v", err)
	}
	if resp.Response == nil {
		t.Fatalf("expected response container")
	}
	if n := len(resp.Response.Offerings.Offering); n != 0 {
		t.Fatalf("expected zero offerings, got %d", n)
	}
}

func TestRespond_NoCriteria(t *testing.T) {
	sr := travelport.SearchRequest{}
	if _, err := mockapi.NewResponder(7).Respond(sr); !errors.Is(err, mockapi.ErrNoCriteria) {
		t.Fatalf("expected ErrNoCriteria, got %v", err)
	}
}

func TestRespond_SeededIsReproducible(t *testing.T) {
	a, err := mockapi.NewResponder(99).Respond(searchPayload("LHR", "JFK", false))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := mockapi.NewResponder(99).Respond(searchPayload("LHR", "JFK", false))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(a.Response.Offerings.Offering) != len(b.Response.Offerings.Offering) {
		t.Fatalf("seeded responder not reproducible")
	}
	for i := range a.Response.Offerings.Offering {
		if a.Response.Offerings.Offering[i].TotalPrice.Value != b.Response.Offerings.Offering[i].TotalPrice.Value {
			t.Fatalf("seeded prices differ at %d", i)
		}
	}
}
