package module

import (
	"context"

	"farescout/internal/services/api/pricing/domain"
	pricingsvc "farescout/internal/services/api/pricing/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPricingPort struct{ svc pricingsvc.Service }

// PriceByRefs re-prices previously indexed offers
func (a adaptPricingPort) PriceByRefs(ctx context.Context, in domain.PriceInput) (domain.PriceResult, error) {
	return a.svc.PriceByRefs(ctx, in)
}
