// Package http provides http transport for pricing
package http

import (
	stdhttp "net/http"

	"farescout/internal/modkit/httpkit"
	"farescout/internal/services/api/pricing/domain"
	svc "farescout/internal/services/api/pricing/service"
)

// Register mounts pricing endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.PriceInput](r, "/", h.price)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /pricing Pricing price
// @Summary Confirm pricing for previously indexed offers
// @Tags Pricing
// @Accept json
// @Produce json
// @Param payload body domain.PriceInput true "Offer refs to re-price"
// @Success 200 {object} domain.PriceResult "ok"
// @Router /pricing [post]
func (h *handlers) price(r *stdhttp.Request, in domain.PriceInput) (any, error) {
	return h.svc.PriceByRefs(r.Context(), in)
}
