package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"travelfares/internal/adapters/travelport"
	"travelfares/internal/domain"
)

const (
	maxOffers      = 50
	maxProductRefs = 5
)

// Interpret flattens a catalog response into presentable offers, preserving
// response order and capping at maxOffers. The criteria are only used for the
// degraded-display fallback when an offering's flights cannot be resolved.
//
// A missing top-level container is a hard error; per-offer gaps degrade to a
// generic route line instead of failing the whole search.
func Interpret(resp *travelport.SearchResponse, c domain.SearchCriteria) ([]domain.Offer, error) {
	if resp == nil || resp.Response == nil {
		return nil, travelport.ErrNoResponse
	}
	offerings := resp.Response.Offerings.Offering
	if len(offerings) == 0 {
		return nil, domain.ErrNoOffers
	}

	// One pass over the reference list builds both indexes; offerings then
	// resolve purely by key lookup. Unknown @type entries carry no records.
	flights := make(map[string]travelport.Flight)
	products := make(map[string]travelport.Product)
	for _, ref := range resp.Response.ReferenceList {
		switch ref.Type {
		case travelport.TypeReferenceListFlight:
			for _, f := range ref.Flight {
				if f.ID != "" {
					flights[f.ID] = f
				}
			}
		case travelport.TypeReferenceListProduct:
			for _, p := range ref.Product {
				if p.ID != "" {
					products[p.ID] = p
				}
			}
		}
	}

	if len(offerings) > maxOffers {
		offerings = offerings[:maxOffers]
	}

	out := make([]domain.Offer, 0, len(offerings))
	for _, off := range offerings {
		refs := productRefs(off)

		lines := segmentLines(refs, products, flights)
		if len(lines) == 0 {
			// Some responses reference flights directly instead of products.
			lines = directFlightLines(refs, flights)
		}

		itinerary := make([]string, 0, len(lines)+2)
		itinerary = append(itinerary, "Flight Offer: "+off.ID)
		if len(lines) > 0 {
			itinerary = append(itinerary, lines...)
		} else {
			itinerary = append(itinerary, fmt.Sprintf("Route: %s → %s", c.Origin, c.Destination))
			if c.RoundTrip {
				itinerary = append(itinerary, fmt.Sprintf("Return: %s → %s", c.Destination, c.Origin))
			}
		}

		currency := off.TotalPrice.Code
		if currency == "" {
			currency = "USD"
		}
		price := decimal.NewFromFloat(off.TotalPrice.Value)
		itinerary = append(itinerary, fmt.Sprintf("Price: %s %s", currency, price.StringFixed(2)))

		raw, err := json.Marshal(off)
		if err != nil {
			log.Error().Err(err).Str("offer", off.ID).Msg("marshal offering for audit failed")
		}

		out = append(out, domain.Offer{
			ID:        off.ID,
			Price:     price,
			Currency:  currency,
			Itinerary: itinerary,
			RawJSON:   raw,
		})
	}
	return out, nil
}

// productRefs collects an offering's product references, supporting both the
// ProductRef indirection and the legacy direct FlightRefs list.
func productRefs(off travelport.Offering) []string {
	var refs []string
	for _, opt := range off.ProductOptions {
		if opt.ProductRef != "" {
			refs = append(refs, opt.ProductRef)
		} else if len(opt.FlightRefs) > 0 {
			refs = append(refs, opt.FlightRefs...)
		}
	}
	return refs
}

// segmentLines resolves product refs through their flight segments into
// rendered lines, in segment order.
func segmentLines(refs []string, products map[string]travelport.Product, flights map[string]travelport.Flight) []string {
	if len(refs) > maxProductRefs {
		refs = refs[:maxProductRefs]
	}
	var lines []string
	for _, ref := range refs {
		p, ok := products[ref]
		if !ok || p.Type != travelport.TypeProductAir {
			continue
		}
		for _, seg := range p.FlightSegment {
			if seg.Flight.Ref == "" {
				continue
			}
			if f, ok := flights[seg.Flight.Ref]; ok {
				if line, ok := flightLine(f); ok {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines
}

func directFlightLines(refs []string, flights map[string]travelport.Flight) []string {
	var lines []string
	for _, ref := range refs {
		if f, ok := flights[ref]; ok {
			if line, ok := flightLine(f); ok {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// flightLine renders one resolved flight. Carrier and number are required;
// times are optional suffixes.
func flightLine(f travelport.Flight) (string, bool) {
	if f.Carrier == "" || f.Number == "" {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s: %s → %s", f.Carrier, f.Number, f.Origin.Value, f.Destination.Value)
	if f.DepartureTime != "" {
		fmt.Fprintf(&b, " (Dep: %s)", f.DepartureTime)
	}
	if f.ArrivalTime != "" {
		fmt.Fprintf(&b, " (Arr: %s)", f.ArrivalTime)
	}
	return b.String(), true
}
