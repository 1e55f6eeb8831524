// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"farescout/internal/modkit/httpkit"
	"farescout/internal/services/api/search/domain"
	svc "farescout/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// simple one-route search, query-string driven
	httpkit.Get(r, "/", h.search)

	// multi-leg GDS-shaped search
	httpkit.PostJSON[domain.AdvancedInput](r, "/advanced", h.searchAdvanced)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /search Search search
// @Summary Search flight offers
// @Tags Search
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param destination query string false "Destination IATA code"
// @Param departDate query string true "Departure date YYYY-MM-DD"
// @Param includeScore query bool false "Attach desirability scores"
// @Success 200 {object} offer.SearchResult "ok"
// @Router /search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	params, err := domain.QueryFromRequest(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), params)
}

// swagger:route POST /search/advanced Search searchAdvanced
// @Summary Search flight offers with a multi-leg request
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.AdvancedInput true "Advanced request"
// @Success 200 {object} offer.SearchResult "ok"
// @Router /search/advanced [post]
func (h *handlers) searchAdvanced(r *stdhttp.Request, in domain.AdvancedInput) (any, error) {
	return h.svc.SearchAdvanced(r.Context(), in.AdvancedSearchRequest, in.IncludeScore)
}
