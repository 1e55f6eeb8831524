package module

import (
	"context"

	"farescout/internal/adapters/providers"
	insightssvc "farescout/internal/services/api/insights/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptInsightsPort struct{ svc insightssvc.Service }

// CheapestDates finds the cheapest travel dates for a route
func (a adaptInsightsPort) CheapestDates(
	ctx context.Context,
	q providers.CheapestDatesQuery,
) (providers.CheapestDatesResult, error) {
	return a.svc.CheapestDates(ctx, q)
}

// Inspiration runs an open-destination search
func (a adaptInsightsPort) Inspiration(
	ctx context.Context,
	q providers.InspirationQuery,
) (providers.InspirationResult, error) {
	return a.svc.Inspiration(ctx, q)
}

// PriceMetrics looks up historical price quartiles
func (a adaptInsightsPort) PriceMetrics(
	ctx context.Context,
	q providers.PriceMetricsQuery,
) (providers.PriceMetricsResult, error) {
	return a.svc.PriceMetrics(ctx, q)
}
