// Package mockapi fabricates Travelport catalog responses from a small static
// flight table, for development and testing against the real schema.
package mockapi

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"travelfares/internal/adapters/travelport"
)

// ErrNoCriteria means the request carried no SearchCriteriaFlight at all;
// the endpoint answers 400 for it. An unknown route is NOT an error: that is
// success with zero offerings, same as the real API.
var ErrNoCriteria = errors.New("no search criteria provided")

type mockFlight struct {
	Carrier       string
	Number        string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	Aircraft      string
}

var mockFlights = []mockFlight{
	{Carrier: "BA", Number: "117", Origin: "LHR", Destination: "JFK", DepartureTime: "08:25:00", ArrivalTime: "11:05:00", Aircraft: "777"},
	{Carrier: "AA", Number: "100", Origin: "LHR", Destination: "JFK", DepartureTime: "10:30:00", ArrivalTime: "13:15:00", Aircraft: "787"},
	{Carrier: "VS", Number: "4", Origin: "LHR", Destination: "JFK", DepartureTime: "12:00:00", ArrivalTime: "14:45:00", Aircraft: "A350"},
	{Carrier: "DL", Number: "1", Origin: "JFK", Destination: "LHR", DepartureTime: "22:00:00", ArrivalTime: "09:30:00", Aircraft: "A330"},
	{Carrier: "BA", Number: "178", Origin: "JFK", Destination: "LHR", DepartureTime: "20:15:00", ArrivalTime: "07:45:00", Aircraft: "777"},
}

// Base fares keyed by the API cabin codes (absent cabin filter = Economy).
var basePrices = map[string]decimal.Decimal{
	"Economy":        decimal.NewFromInt(450),
	"PremiumEconomy": decimal.NewFromInt(850),
	"Business":       decimal.NewFromInt(2500),
	"First":          decimal.NewFromInt(5000),
}

var (
	roundTripFactor = decimal.NewFromFloat(1.8)
	jitterSpread    = 0.2 // price jitter drawn from [0.9, 1.1)
)

type Responder struct {
	rng *rand.Rand
}

// NewResponder builds a responder; seed 0 seeds from the clock, any other
// value makes the fabricated offers reproducible.
func NewResponder(seed int64) *Responder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Responder{rng: rand.New(rand.NewSource(seed))}
}

// Respond fabricates 3-5 offerings matching the requested route, echoing the
// request's route, dates, passengers and cabin into the generated records so
// the interpreter exercises the same resolution path as against the real API.
func (m *Responder) Respond(sr travelport.SearchRequest) (*travelport.SearchResponse, error) {
	req := sr.QueryRequest.Request
	if len(req.SearchCriteriaFlight) == 0 {
		return nil, ErrNoCriteria
	}

	outLeg := req.SearchCriteriaFlight[0]
	origin := strings.ToUpper(outLeg.From.Value)
	destination := strings.ToUpper(outLeg.To.Value)
	departureDate := outLeg.DepartureDate

	returnDate := ""
	if len(req.SearchCriteriaFlight) > 1 {
		returnDate = req.SearchCriteriaFlight[1].DepartureDate
	}

	passengers := 0
	for _, p := range req.PassengerCriteria {
		passengers += p.Number
	}
	if passengers <= 0 {
		passengers = 1
	}

	cabin := "Economy"
	if len(req.Cabin) > 0 {
		cabin = req.Cabin[0]
	}

	outbound := flightsForRoute(origin, destination)
	var returns []mockFlight
	if returnDate != "" {
		returns = flightsForRoute(destination, origin)
	}

	if len(outbound) == 0 {
		// No criteria matched: success with zero results, never an error.
		return emptyResponse(), nil
	}

	var (
		offerings     []travelport.Offering
		flightRecords []travelport.Flight
		products      []travelport.Product
	)

	numOffers := 3 + m.rng.Intn(3)
	for i := 0; i < numOffers; i++ {
		selected := []mockFlight{outbound[m.rng.Intn(len(outbound))]}
		if len(returns) > 0 {
			selected = append(selected, returns[m.rng.Intn(len(returns))])
		}

		productID := fmt.Sprintf("Product_%d", i)
		var segments []travelport.FlightSegment
		for idx, f := range selected {
			flightID := fmt.Sprintf("Flight_%s_%d", productID, idx)
			date := departureDate
			if idx > 0 {
				date = returnDate
			}
			flightRecords = append(flightRecords, travelport.Flight{
				Type:          "Flight",
				ID:            flightID,
				Carrier:       f.Carrier,
				Number:        f.Number,
				DepartureTime: date + "T" + f.DepartureTime,
				ArrivalTime:   date + "T" + f.ArrivalTime,
				Origin:        travelport.CodeRef{Value: f.Origin},
				Destination:   travelport.CodeRef{Value: f.Destination},
				Aircraft:      &travelport.CodeRef{Value: f.Aircraft},
			})
			seg := travelport.FlightSegment{
				Type:     "FlightSegment",
				Sequence: idx + 1,
				Flight:   travelport.FlightRef{Ref: flightID},
			}
			if idx < len(selected)-1 {
				seg.ConnectionDuration = "PT2H30M"
			}
			segments = append(segments, seg)
		}
		products = append(products, travelport.Product{
			Type:          travelport.TypeProductAir,
			ID:            productID,
			Quantity:      1,
			FlightSegment: segments,
		})

		offerings = append(offerings, travelport.Offering{
			Type: "CatalogProductOffering",
			ID:   fmt.Sprintf("Offer_%d", i),
			TotalPrice: travelport.Price{
				Code:  "USD",
				Value: m.price(cabin, passengers, returnDate != ""),
			},
			ProductOptions: []travelport.ProductOption{{
				Type:       "ProductOption",
				ProductRef: productID,
			}},
		})
	}

	return &travelport.SearchResponse{
		Response: &travelport.OfferingsResponse{
			Offerings: travelport.OfferingList{Offering: offerings},
			ReferenceList: []travelport.ReferenceEntry{
				{Type: travelport.TypeReferenceListFlight, Flight: flightRecords},
				{Type: travelport.TypeReferenceListProduct, Product: products},
			},
		},
	}, nil
}

func flightsForRoute(origin, destination string) []mockFlight {
	var out []mockFlight
	for _, f := range mockFlights {
		if f.Origin == origin && f.Destination == destination {
			out = append(out, f)
		}
	}
	return out
}

func emptyResponse() *travelport.SearchResponse {
	return &travelport.SearchResponse{
		Response: &travelport.OfferingsResponse{
			Offerings:     travelport.OfferingList{Offering: []travelport.Offering{}},
			ReferenceList: []travelport.ReferenceEntry{},
		},
	}
}

// price = cabin base × passengers × round-trip factor × jitter, 2dp.
func (m *Responder) price(cabin string, passengers int, roundTrip bool) float64 {
	base, ok := basePrices[cabin]
	if !ok {
		base = basePrices["Economy"]
	}
	p := base.Mul(decimal.NewFromInt(int64(passengers)))
	if roundTrip {
		p = p.Mul(roundTripFactor)
	}
	jitter := 1 - jitterSpread/2 + m.rng.Float64()*jitterSpread
	p = p.Mul(decimal.NewFromFloat(jitter)).Round(2)
	return p.InexactFloat64()
}
