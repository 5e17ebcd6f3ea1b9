package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travelfares/internal/adapters/travelport"
	"travelfares/internal/domain"
)

// Searcher is the outbound catalog-search port (real client or mock).
type Searcher interface {
	Search(ctx context.Context, sr travelport.SearchRequest) (*travelport.SearchResponse, error)
}

// SearchService runs the search → interpret → store pipeline and the
// follow-up offer selection. Each search wholly replaces the order's previous
// result set; the store's token guard drops out-of-order completions.
type SearchService struct {
	api   Searcher
	store domain.ResultStore
}

func NewSearchService(api Searcher, store domain.ResultStore) *SearchService {
	return &SearchService{api: api, store: store}
}

// Search validates the criteria, queries the catalog service and stores the
// flattened offers as the order's current result set. If a newer search for
// the same order started while this one was in flight, the result is
// discarded and domain.ErrStaleSearch returned.
func (s *SearchService) Search(ctx context.Context, orderID string, c domain.SearchCriteria) (domain.ResultSet, error) {
	if err := c.Validate(); err != nil {
		return domain.ResultSet{}, err
	}

	token, err := s.store.Begin(ctx, orderID)
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("begin search: %w", err)
	}

	resp, err := s.api.Search(ctx, BuildRequest(c))
	if err != nil {
		return domain.ResultSet{}, err
	}

	offers, err := Interpret(resp, c)
	if err != nil {
		return domain.ResultSet{}, err
	}

	rs := domain.ResultSet{
		Token:     token,
		Criteria:  c,
		Offers:    offers,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, orderID, rs); err != nil {
		return domain.ResultSet{}, err
	}

	log.Info().
		Str("order", orderID).
		Int64("token", token).
		Int("offers", len(offers)).
		Msg("flight search completed")
	return rs, nil
}

// Select attaches one offer from the order's current result set as an order
// line. The token must match the newest search; offerID empty means the first
// (cheapest, given the fixed low-to-high sort) offer. A currency mismatch
// with the order is warned, not blocking.
func (s *SearchService) Select(ctx context.Context, orderID string, token int64, offerID, orderCurrency string) (domain.OrderLine, error) {
	rs, err := s.store.Get(ctx, orderID)
	if err != nil {
		return domain.OrderLine{}, err
	}
	if token != rs.Token {
		return domain.OrderLine{}, domain.ErrStaleSearch
	}
	if len(rs.Offers) == 0 {
		return domain.OrderLine{}, domain.ErrNoOffers
	}

	offer := rs.Offers[0]
	if offerID != "" {
		found := false
		for _, o := range rs.Offers {
			if o.ID == offerID {
				offer = o
				found = true
				break
			}
		}
		if !found {
			return domain.OrderLine{}, domain.ErrOfferNotFound
		}
	}

	if orderCurrency != "" && !strings.EqualFold(orderCurrency, offer.Currency) {
		log.Warn().
			Str("order", orderID).
			Str("offer_currency", offer.Currency).
			Str("order_currency", orderCurrency).
			Msg("currency mismatch on offer selection")
	}

	return domain.OrderLine{
		OrderID:     orderID,
		OfferID:     offer.ID,
		Description: strings.Join(offer.Itinerary, "\n"),
		Quantity:    1,
		UnitPrice:   offer.Price,
		Currency:    offer.Currency,
	}, nil
}
