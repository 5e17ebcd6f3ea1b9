// Package travelport speaks the catalog-product-offerings wire format of the
// Travelport flight-search API. Field names and nesting are fixed by the
// remote schema and must not drift.
package travelport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ---- request ----

type SearchRequest struct {
	QueryRequest QueryRequest `json:"CatalogProductOfferingsQueryRequest"`
}

type QueryRequest struct {
	ResponseModifiers ResponseModifiersAir `json:"CustomResponseModifiersAir"`
	Request           OfferingsRequest     `json:"CatalogProductOfferingsRequest"`
}

type ResponseModifiersAir struct {
	SearchRepresentation   string `json:"SearchRepresentation"`
	IncludeCo2Emissions    bool   `json:"includeCo2EmissionsDataInd"`
	IncludeFlightAmenities bool   `json:"includeFlightAmenitiesInd"`
}

type OfferingsRequest struct {
	OffersPerPage        int                  `json:"offersPerPage"`
	SortBy               string               `json:"sortBy"`
	ContentSourceList    []string             `json:"contentSourceList"`
	PassengerCriteria    []PassengerCriterion `json:"PassengerCriteria"`
	SearchCriteriaFlight []FlightCriterion    `json:"SearchCriteriaFlight"`
	Cabin                []string             `json:"Cabin,omitempty"`
}

type PassengerCriterion struct {
	Value  string `json:"value"` // ADT | CNN
	Number int    `json:"number"`
	Age    *int   `json:"age,omitempty"`
}

type FlightCriterion struct {
	DepartureDate string   `json:"departureDate"`
	From          Endpoint `json:"From"`
	To            Endpoint `json:"To"`
}

type Endpoint struct {
	Value         string `json:"value"`
	CityOrAirport string `json:"cityOrAirport,omitempty"`
}

// ---- response ----

type SearchResponse struct {
	Response *OfferingsResponse `json:"CatalogProductOfferingsResponse"`
}

type OfferingsResponse struct {
	Offerings     OfferingList     `json:"CatalogProductOfferings"`
	ReferenceList []ReferenceEntry `json:"ReferenceList"`
}

type OfferingList struct {
	Offering []Offering `json:"CatalogProductOffering"`
}

type Offering struct {
	Type           string          `json:"@type,omitempty"`
	ID             string          `json:"id"`
	TotalPrice     Price           `json:"TotalPrice"`
	ProductOptions []ProductOption `json:"ProductOptions"`
}

type Price struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

// ProductOption points at a product, either through the ProductRef
// indirection or (legacy form) as direct flight ids.
type ProductOption struct {
	Type       string   `json:"@type,omitempty"`
	ProductRef string   `json:"ProductRef,omitempty"`
	FlightRefs []string `json:"FlightRefs,omitempty"`
}

// Reference-list `@type` discriminators and record types.
const (
	TypeReferenceListFlight  = "ReferenceListFlight"
	TypeReferenceListProduct = "ReferenceListProduct"
	TypeProductAir           = "ProductAir"
)

// ReferenceEntry is one typed collection inside ReferenceList. Entries with
// an unrecognized Type carry no Flight/Product records and are ignored.
type ReferenceEntry struct {
	Type    string    `json:"@type"`
	Flight  []Flight  `json:"Flight,omitempty"`
	Product []Product `json:"Product,omitempty"`
}

type Flight struct {
	Type          string   `json:"@type,omitempty"`
	ID            string   `json:"id"`
	Carrier       string   `json:"carrier"`
	Number        string   `json:"number"`
	DepartureTime string   `json:"departureTime,omitempty"`
	ArrivalTime   string   `json:"arrivalTime,omitempty"`
	Origin        CodeRef  `json:"Origin"`
	Destination   CodeRef  `json:"Destination"`
	Aircraft      *CodeRef `json:"Aircraft,omitempty"`
}

type Product struct {
	Type          string          `json:"@type,omitempty"`
	ID            string          `json:"id"`
	Quantity      int             `json:"Quantity,omitempty"`
	FlightSegment []FlightSegment `json:"FlightSegment,omitempty"`
}

type FlightSegment struct {
	Type               string    `json:"@type,omitempty"`
	Sequence           int       `json:"sequence,omitempty"`
	ConnectionDuration string    `json:"connectionDuration,omitempty"`
	Flight             FlightRef `json:"Flight"`
}

// CodeRef is a code-valued field the API serves in two shapes: a plain string
// ("LHR") or an object ({"value":"LHR"}). Both unmarshal; marshaling always
// emits the object form the mock and real service use.
type CodeRef struct {
	Value string
}

func (c CodeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value string `json:"value"`
	}{c.Value})
}

func (c *CodeRef) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("travelport: empty code value")
	}
	switch b[0] {
	case 'n': // null
		c.Value = ""
		return nil
	case '"':
		return json.Unmarshal(b, &c.Value)
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("travelport: code value: %w", err)
	}
	c.Value = obj.Value
	return nil
}

// FlightRef is a flight-id reference the API serves either as the bare id
// string or as {"@type":"FlightID","FlightRef":id}. Marshaling emits the
// object form.
type FlightRef struct {
	Ref string
}

func (f FlightRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"@type"`
		Ref  string `json:"FlightRef"`
	}{Type: "FlightID", Ref: f.Ref})
}

func (f *FlightRef) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("travelport: empty flight ref")
	}
	switch b[0] {
	case 'n':
		f.Ref = ""
		return nil
	case '"':
		return json.Unmarshal(b, &f.Ref)
	}
	var obj struct {
		Ref string `json:"FlightRef"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("travelport: flight ref: %w", err)
	}
	f.Ref = obj.Ref
	return nil
}
