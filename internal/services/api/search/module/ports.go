package module

import (
	"context"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
	searchsvc "farescout/internal/services/api/search/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptSearchPort struct{ svc searchsvc.Service }

// Search runs a simple one-route search
func (a adaptSearchPort) Search(ctx context.Context, params offer.SearchParams) (offer.SearchResult, error) {
	return a.svc.Search(ctx, params)
}

// SearchAdvanced runs a multi-leg search
func (a adaptSearchPort) SearchAdvanced(
	ctx context.Context,
	req providers.AdvancedSearchRequest,
	includeScore bool,
) (offer.SearchResult, error) {
	return a.svc.SearchAdvanced(ctx, req, includeScore)
}
