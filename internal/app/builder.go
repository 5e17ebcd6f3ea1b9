package app

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"travelfares/internal/adapters/travelport"
	"travelfares/internal/domain"
)

// Fixed request-level options; the remote schema expects these verbatim.
const (
	offersPerPage  = 50
	sortLowToHigh  = "Price-LowToHigh"
	cityOrAirport  = "City or Airport"
	passengerAdult = "ADT"
	passengerChild = "CNN"
)

var contentSources = []string{"GDS", "NDC"}

// API cabin codes per search-form cabin class. Economy has no entry: the
// cabin filter is omitted entirely for the default class.
var cabinCodes = map[domain.CabinClass]string{
	domain.CabinPremiumEconomy: "PremiumEconomy",
	domain.CabinBusiness:       "Business",
	domain.CabinFirst:          "First",
}

// BuildRequest turns validated criteria into the nested query payload.
// Deterministic and infallible; Validate runs before this ever does.
func BuildRequest(c domain.SearchCriteria) travelport.SearchRequest {
	req := travelport.OfferingsRequest{
		OffersPerPage:        offersPerPage,
		SortBy:               sortLowToHigh,
		ContentSourceList:    contentSources,
		PassengerCriteria:    passengerCriteria(c),
		SearchCriteriaFlight: flightCriteria(c),
	}
	if code, ok := cabinCodes[c.CabinClass]; ok {
		req.Cabin = []string{code}
	}
	return travelport.SearchRequest{
		QueryRequest: travelport.QueryRequest{
			ResponseModifiers: travelport.ResponseModifiersAir{
				SearchRepresentation:   "Journey",
				IncludeCo2Emissions:    true,
				IncludeFlightAmenities: true,
			},
			Request: req,
		},
	}
}

func passengerCriteria(c domain.SearchCriteria) []travelport.PassengerCriterion {
	var out []travelport.PassengerCriterion
	if c.Adults > 0 {
		out = append(out, travelport.PassengerCriterion{Value: passengerAdult, Number: c.Adults})
	}
	if c.ChildCount > 0 {
		for _, raw := range domain.SplitAges(c.ChildAges) {
			age, err := strconv.Atoi(raw)
			if err != nil {
				log.Warn().Str("age", raw).Msg("skipping unparseable child age")
				continue
			}
			a := age
			out = append(out, travelport.PassengerCriterion{Value: passengerChild, Number: 1, Age: &a})
		}
	}
	return out
}

func flightCriteria(c domain.SearchCriteria) []travelport.FlightCriterion {
	origin := strings.ToUpper(strings.TrimSpace(c.Origin))
	dest := strings.ToUpper(strings.TrimSpace(c.Destination))

	legs := []travelport.FlightCriterion{{
		DepartureDate: c.DepartureDate,
		From:          travelport.Endpoint{Value: origin, CityOrAirport: cityOrAirport},
		To:            travelport.Endpoint{Value: dest, CityOrAirport: cityOrAirport},
	}}
	if c.RoundTrip && c.ReturnDate != "" {
		legs = append(legs, travelport.FlightCriterion{
			DepartureDate: c.ReturnDate,
			From:          travelport.Endpoint{Value: dest},
			To:            travelport.Endpoint{Value: origin},
		})
	}
	return legs
}
