package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Offer is one flattened, user-presentable fare from a search response.
// Itinerary holds the rendered lines: an offer header, one line per resolved
// flight (or a generic route fallback), and a trailing price line.
type Offer struct {
	ID        string          `json:"id"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Itinerary []string        `json:"itinerary"`
	RawJSON   json.RawMessage `json:"raw,omitempty"` // source offering, kept for audit
}

// Summary is a short single-line label for list display.
func (o Offer) Summary() string {
	first := "Flight Offer"
	if len(o.Itinerary) > 0 {
		first = o.Itinerary[0]
	}
	return fmt.Sprintf("%s - %s %s", first, o.Currency, o.Price.StringFixed(2))
}

// ResultSet is the complete output of one search. Token identifies the search
// within its order's session; a stored set is only ever the order's newest.
type ResultSet struct {
	Token     int64          `json:"token"`
	Criteria  SearchCriteria `json:"criteria"`
	Offers    []Offer        `json:"offers"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderLine is the value handed back when an offer is attached to an order.
// Persisting it is the order system's concern, not ours.
type OrderLine struct {
	OrderID     string          `json:"order_id"`
	OfferID     string          `json:"offer_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
}
