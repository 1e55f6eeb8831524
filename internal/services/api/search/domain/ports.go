package domain

import (
	"context"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, params offer.SearchParams) (offer.SearchResult, error)
	SearchAdvanced(ctx context.Context, req providers.AdvancedSearchRequest, includeScore bool) (offer.SearchResult, error)
}
