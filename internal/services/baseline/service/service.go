// Package service maintains the historical price baseline. Fresh search
// results are recorded as snapshots into clickhouse, and the per-route
// distribution (median, volatility, sample size) feeds the scorer. Both
// directions are best-effort: a missing or failing store never breaks search.
package service

import (
	"context"
	"encoding/json"
	"time"

	"farescout/internal/core/cachekey"
	"farescout/internal/core/offer"
	"farescout/internal/platform/logger"
	"farescout/internal/platform/store"
	"farescout/internal/services/baseline/repo"

	"github.com/google/uuid"
)

const statsTTL = time.Hour

// Service records snapshots and serves baseline stats
type Service interface {
	Record(ctx context.Context, params offer.SearchParams, offers []offer.Offer)
	Stats(ctx context.Context, params offer.SearchParams) *offer.BaselineStats
}

// Svc implements the baseline service
// repo and kv may both be nil, every call then degrades to a no-op
type Svc struct {
	repo repo.Repo
	kv   store.KV
	log  logger.Logger
	now  func() time.Time
}

// New constructs a baseline service
func New(r repo.Repo, kv store.KV) *Svc {
	return &Svc{repo: r, kv: kv, log: *logger.Named("baseline"), now: time.Now}
}

func routeKey(params offer.SearchParams) string {
	return params.Origin + "-" + params.Destination
}

func cabinOf(params offer.SearchParams) string {
	if params.Cabin == "" {
		return string(offer.CabinEconomy)
	}
	return string(params.Cabin)
}

// Record persists one snapshot per offer, best-effort
func (s *Svc) Record(ctx context.Context, params offer.SearchParams, offers []offer.Offer) {
	if s.repo == nil || len(offers) == 0 {
		return
	}
	captured := s.now().UTC()
	snaps := make([]repo.Snapshot, 0, len(offers))
	for _, o := range offers {
		snaps = append(snaps, repo.Snapshot{
			ID:         uuid.NewString(),
			RouteKey:   routeKey(params),
			DepartDate: params.DepartDate,
			Cabin:      cabinOf(params),
			Price:      o.Price.Amount,
			Currency:   o.Price.Currency,
			Provider:   o.Provider,
			CapturedAt: captured,
		})
	}
	if err := s.repo.InsertSnapshots(ctx, snaps); err != nil {
		s.log.Warn().Err(err).Str("route", routeKey(params)).Msg("snapshot insert failed")
	}
}

// Stats returns the baseline for the searched route, nil when unavailable
// results are cached under baseline:<route|date|cabin sha1> for an hour
func (s *Svc) Stats(ctx context.Context, params offer.SearchParams) *offer.BaselineStats {
	if s.repo == nil || params.Destination == "" {
		return nil
	}
	key, err := cachekey.For(cachekey.PrefixBaseline, map[string]any{
		"routeKey":   routeKey(params),
		"departDate": params.DepartDate,
		"cabin":      cabinOf(params),
	})
	if err != nil {
		return nil
	}

	if s.kv != nil {
		if raw, ok, gerr := s.kv.Get(ctx, key); gerr == nil && ok {
			var cached offer.BaselineStats
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached
			}
		}
	}

	stats, found, err := s.repo.Stats(ctx, routeKey(params), params.DepartDate, cabinOf(params))
	if err != nil {
		s.log.Warn().Err(err).Str("route", routeKey(params)).Msg("baseline query failed")
		return nil
	}
	if !found {
		return nil
	}

	if s.kv != nil {
		if b, merr := json.Marshal(stats); merr == nil {
			if serr := s.kv.Set(ctx, key, string(b), statsTTL); serr != nil {
				s.log.Warn().Err(serr).Str("key", key).Msg("baseline cache write failed")
			}
		}
	}
	return &stats
}
