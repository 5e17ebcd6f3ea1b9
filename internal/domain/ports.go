package domain

import (
	"context"
	"errors"
)

var (
	// ErrNoOffers means the upstream answered but had nothing to sell.
	ErrNoOffers = errors.New("no flight offers found for the selected criteria")
	// ErrStaleSearch means a newer search for the same order superseded this one.
	ErrStaleSearch = errors.New("search superseded by a newer search")
	// ErrNoResults means no result set is currently held for the order.
	ErrNoResults = errors.New("no search results available for this order")
	// ErrOfferNotFound means the requested offer id is not in the current result set.
	ErrOfferNotFound = errors.New("offer not found in current search results")
)

// ResultStore holds the single current result set per order. Begin issues a
// token for a new search; Put only lands a set whose token is still the
// order's newest (ErrStaleSearch otherwise), so a slow in-flight response can
// never overwrite the results of a later search.
type ResultStore interface {
	Begin(ctx context.Context, orderID string) (int64, error)
	Put(ctx context.Context, orderID string, rs ResultSet) error
	Get(ctx context.Context, orderID string) (ResultSet, error)
}
