// Package service contains the re-pricing workflow: offer refs are resolved
// through the offer index and handed to the provider's pricing capability
package service

import (
	"context"
	"encoding/json"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/logger"
	"farescout/internal/platform/store"
	"farescout/internal/services/api/pricing/domain"
)

// Service defines the pricing service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the pricing service
type Svc struct {
	provider providers.SearchProvider
	kv       store.KV
	log      logger.Logger
}

// New constructs a pricing service
func New(p providers.SearchProvider, kv store.KV) *Svc {
	if p == nil {
		panic("pricing.Service requires a non nil provider")
	}
	return &Svc{provider: p, kv: kv, log: *logger.Named("pricing")}
}

// PriceByRefs resolves each ref from the offer index and re-prices the lot.
// Unknown or corrupt refs are skipped; pricing with nothing resolved fails.
func (s *Svc) PriceByRefs(ctx context.Context, in domain.PriceInput) (domain.PriceResult, error) {
	rep, ok := s.provider.(providers.Repricer)
	if !ok {
		return domain.PriceResult{}, perr.Configf("re-pricing not supported by provider %s", s.provider.Name())
	}
	if s.kv == nil {
		return domain.PriceResult{}, perr.Configf("offer index unavailable")
	}

	resolved := make([]offer.Offer, 0, len(in.OfferRefs))
	for _, ref := range in.OfferRefs {
		raw, found, err := s.kv.Get(ctx, ref)
		if err != nil {
			s.log.Warn().Err(err).Str("ref", ref).Msg("offer ref read failed")
			continue
		}
		if !found {
			continue
		}
		var o offer.Offer
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			s.log.Warn().Err(err).Str("ref", ref).Msg("offer ref corrupt")
			continue
		}
		resolved = append(resolved, o)
	}
	if len(resolved) == 0 {
		return domain.PriceResult{}, perr.NotFoundf("no offers found for the given refs")
	}

	priced, err := rep.PriceOffers(ctx, providers.PriceOffersRequest{
		Offers:     resolved,
		Include:    in.Include,
		ForceClass: in.ForceClass,
	})
	if err != nil {
		return domain.PriceResult{}, err
	}
	return domain.PriceResult{Offers: priced, Count: len(priced)}, nil
}
