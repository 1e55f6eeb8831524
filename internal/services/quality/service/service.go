// Package service resolves airline and airport quality ratings. Ratings are
// Skytrax-style 1..5, read from postgres, cached in the kv layer for a day,
// with 3 as the neutral fallback for anything unknown.
package service

import (
	"context"
	"strconv"
	"time"

	"farescout/internal/core/cachekey"
	"farescout/internal/modkit/repokit"
	"farescout/internal/platform/logger"
	"farescout/internal/platform/store"
	"farescout/internal/services/quality/repo"

	"golang.org/x/sync/errgroup"
)

// NeutralRating stands in for any airline or airport without data
const NeutralRating = 3

const cacheTTL = 24 * time.Hour

// RouteRatings bundles the three lookups the extended scorer blends
type RouteRatings struct {
	Airline float64
	Origin  float64
	Dest    float64
}

// Service defines the quality rating contract
type Service interface {
	AirlineRating(ctx context.Context, iata string) (float64, error)
	AirportRating(ctx context.Context, iata string) (float64, error)
	RouteRatings(ctx context.Context, airline, origin, dest string) (RouteRatings, error)
}

// Svc implements the quality service
type Svc struct {
	Repo repo.Repo
	kv   store.KV
	log  logger.Logger
}

// New constructs a quality service
// kv may be nil, every lookup then goes to postgres
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], kv store.KV) *Svc {
	if db == nil {
		panic("quality.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("quality.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), kv: kv, log: *logger.Named("quality")}
}

// AirlineRating returns the carrier rating, neutral 3 when unknown
func (s *Svc) AirlineRating(ctx context.Context, iata string) (float64, error) {
	return s.rating(ctx, cachekey.PrefixAirline+":"+iata, iata, s.Repo.AirlineRating)
}

// AirportRating returns the airport rating, neutral 3 when unknown
func (s *Svc) AirportRating(ctx context.Context, iata string) (float64, error) {
	return s.rating(ctx, cachekey.PrefixAirport+":"+iata, iata, s.Repo.AirportRating)
}

func (s *Svc) rating(
	ctx context.Context,
	key, iata string,
	lookup func(context.Context, string) (float64, bool, error),
) (float64, error) {
	if iata == "" {
		return NeutralRating, nil
	}
	if s.kv != nil {
		if raw, ok, err := s.kv.Get(ctx, key); err == nil && ok {
			if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
				return v, nil
			}
		}
	}

	rating := float64(NeutralRating)
	got, found, err := lookup(ctx, iata)
	if err != nil {
		return 0, err
	}
	if found {
		rating = got
	}

	if s.kv != nil {
		if err := s.kv.Set(ctx, key, strconv.FormatFloat(rating, 'f', -1, 64), cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("rating cache write failed")
		}
	}
	return rating, nil
}

// RouteRatings fetches the airline and both airport ratings concurrently
func (s *Svc) RouteRatings(ctx context.Context, airline, origin, dest string) (RouteRatings, error) {
	var out RouteRatings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.AirlineRating(gctx, airline)
		out.Airline = v
		return err
	})
	g.Go(func() error {
		v, err := s.AirportRating(gctx, origin)
		out.Origin = v
		return err
	})
	g.Go(func() error {
		v, err := s.AirportRating(gctx, dest)
		out.Dest = v
		return err
	})
	if err := g.Wait(); err != nil {
		return RouteRatings{}, err
	}
	return out, nil
}
