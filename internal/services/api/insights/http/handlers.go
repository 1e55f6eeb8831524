// Package http provides http transport for insights
package http

import (
	stdhttp "net/http"

	"farescout/internal/modkit/httpkit"
	"farescout/internal/services/api/insights/domain"
	svc "farescout/internal/services/api/insights/service"
)

// Register mounts insight endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/dates", h.dates)
	httpkit.Get(r, "/inspiration", h.inspiration)
	httpkit.Get(r, "/price-metrics", h.priceMetrics)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /insights/dates Insights cheapestDates
// @Summary Find the cheapest travel dates for a route
// @Tags Insights
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param destination query string true "Destination IATA code"
// @Param departureDate query string true "Departure date YYYY-MM-DD"
// @Success 200 {object} providers.CheapestDatesResult "ok"
// @Router /insights/dates [get]
func (h *handlers) dates(r *stdhttp.Request) (any, error) {
	q, err := domain.DatesQueryFromRequest(r)
	if err != nil {
		return nil, err
	}
	return h.svc.CheapestDates(r.Context(), q)
}

// swagger:route GET /insights/inspiration Insights inspiration
// @Summary Suggest cheap destinations from an origin
// @Tags Insights
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param maxPrice query number false "Price ceiling"
// @Success 200 {object} providers.InspirationResult "ok"
// @Router /insights/inspiration [get]
func (h *handlers) inspiration(r *stdhttp.Request) (any, error) {
	q, err := domain.InspirationQueryFromRequest(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Inspiration(r.Context(), q)
}

// swagger:route GET /insights/price-metrics Insights priceMetrics
// @Summary Historical price quartiles for a route and date
// @Tags Insights
// @Produce json
// @Param originIataCode query string true "Origin IATA code"
// @Param destinationIataCode query string true "Destination IATA code"
// @Param departureDate query string true "Departure date YYYY-MM-DD"
// @Success 200 {object} providers.PriceMetricsResult "ok"
// @Router /insights/price-metrics [get]
func (h *handlers) priceMetrics(r *stdhttp.Request) (any, error) {
	q, err := domain.MetricsQueryFromRequest(r)
	if err != nil {
		return nil, err
	}
	return h.svc.PriceMetrics(r.Context(), q)
}
