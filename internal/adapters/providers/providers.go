// Package providers defines the adapter surface upstream flight sources
// implement. Search is the one required capability; everything else is
// optional and probed with interface assertions, never assumed.
package providers

import (
	"context"

	"farescout/internal/core/offer"
)

// SearchProvider is the required capability of every adapter
type SearchProvider interface {
	// Name identifies the provider in cache keys and result envelopes
	Name() string

	// Search returns normalized offers for the given params
	// fails with a Validation error on missing required fields and an
	// Upstream error when the remote call fails or returns garbage
	Search(ctx context.Context, params offer.SearchParams) ([]offer.Offer, error)
}

// AdvancedSearcher handles the multi-origin/destination request shape
type AdvancedSearcher interface {
	SearchAdvanced(ctx context.Context, req AdvancedSearchRequest) ([]offer.Offer, error)
}

// Repricer re-prices a previously returned offer set
type Repricer interface {
	PriceOffers(ctx context.Context, req PriceOffersRequest) ([]offer.Offer, error)
}

// CheapestDatesSearcher finds the cheapest travel dates for a route
type CheapestDatesSearcher interface {
	SearchCheapestDates(ctx context.Context, q CheapestDatesQuery) (CheapestDatesResult, error)
}

// InspirationSearcher runs open-destination searches from an origin
type InspirationSearcher interface {
	SearchInspiration(ctx context.Context, q InspirationQuery) (InspirationResult, error)
}

// PriceMetricsProvider looks up the historical price quartiles for a route/date
type PriceMetricsProvider interface {
	ItineraryPriceMetrics(ctx context.Context, q PriceMetricsQuery) (PriceMetricsResult, error)
}
