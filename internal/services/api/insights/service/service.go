// Package service implements the insights workflows: cheapest dates,
// inspiration and historical price metrics, each behind a read-through cache
package service

import (
	"context"
	"encoding/json"
	"time"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/cachekey"
	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/logger"
	"farescout/internal/platform/store"
	"farescout/internal/services/api/insights/domain"
)

// DefaultCacheTTL is how long insight payloads stay fresh
const DefaultCacheTTL = time.Hour

// Service defines the insights service contract
type Service interface {
	domain.ServicePort
}

// Options tunes the service
type Options struct {
	CacheTTL time.Duration
}

// Svc implements the insights service
type Svc struct {
	provider providers.SearchProvider
	kv       store.KV
	ttl      time.Duration
	log      logger.Logger
}

// New constructs an insights service. kv may be nil, which disables caching
func New(p providers.SearchProvider, kv store.KV, opts ...Options) *Svc {
	if p == nil {
		panic("insights.Service requires a non nil provider")
	}
	ttl := DefaultCacheTTL
	if len(opts) > 0 && opts[0].CacheTTL > 0 {
		ttl = opts[0].CacheTTL
	}
	return &Svc{provider: p, kv: kv, ttl: ttl, log: *logger.Named("insights")}
}

// datesKeyFields is the canonical shape hashed into a dates cache key.
// Field order matters, omitted optionals serialize as explicit nulls
type datesKeyFields struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    *string `json:"returnDate"`
	OneWay        *bool   `json:"oneWay"`
	Duration      *string `json:"duration"`
	NonStop       *bool   `json:"nonStop"`
	ViewBy        *string `json:"viewBy"`
	Provider      string  `json:"provider"`
}

type inspirationKeyFields struct {
	Origin        string   `json:"origin"`
	DepartureDate *string  `json:"departureDate"`
	OneWay        *bool    `json:"oneWay"`
	Duration      *string  `json:"duration"`
	NonStop       *bool    `json:"nonStop"`
	MaxPrice      *float64 `json:"maxPrice"`
	ViewBy        *string  `json:"viewBy"`
	Provider      string   `json:"provider"`
}

type metricsKeyFields struct {
	OriginIATACode      string `json:"originIataCode"`
	DestinationIATACode string `json:"destinationIataCode"`
	DepartureDate       string `json:"departureDate"`
	CurrencyCode        string `json:"currencyCode,omitempty"`
	OneWay              bool   `json:"oneWay"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CheapestDates finds the cheapest travel dates for a route
func (s *Svc) CheapestDates(
	ctx context.Context,
	q providers.CheapestDatesQuery,
) (providers.CheapestDatesResult, error) {
	key, err := cachekey.For(cachekey.PrefixDates, datesKeyFields{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    nullable(q.ReturnDate),
		OneWay:        q.OneWay,
		Duration:      nullable(q.Duration),
		NonStop:       q.NonStop,
		ViewBy:        nullable(q.ViewBy),
		Provider:      s.provider.Name(),
	})
	if err != nil {
		return providers.CheapestDatesResult{}, err
	}

	var cached providers.CheapestDatesResult
	if s.readCached(ctx, key, &cached) {
		return cached, nil
	}

	cd, ok := s.provider.(providers.CheapestDatesSearcher)
	if !ok {
		return providers.CheapestDatesResult{},
			perr.Configf("cheapest dates search not supported by provider %s", s.provider.Name())
	}
	res, err := cd.SearchCheapestDates(ctx, q)
	if err != nil {
		return providers.CheapestDatesResult{}, err
	}
	s.writeCached(ctx, key, res)
	return res, nil
}

// Inspiration runs an open-destination search from an origin
func (s *Svc) Inspiration(
	ctx context.Context,
	q providers.InspirationQuery,
) (providers.InspirationResult, error) {
	key, err := cachekey.For(cachekey.PrefixInspiration, inspirationKeyFields{
		Origin:        q.Origin,
		DepartureDate: nullable(q.DepartureDate),
		OneWay:        q.OneWay,
		Duration:      nullable(q.Duration),
		NonStop:       q.NonStop,
		MaxPrice:      q.MaxPrice,
		ViewBy:        nullable(q.ViewBy),
		Provider:      s.provider.Name(),
	})
	if err != nil {
		return providers.InspirationResult{}, err
	}

	var cached providers.InspirationResult
	if s.readCached(ctx, key, &cached) {
		return cached, nil
	}

	insp, ok := s.provider.(providers.InspirationSearcher)
	if !ok {
		return providers.InspirationResult{},
			perr.Configf("inspiration search not supported by provider %s", s.provider.Name())
	}
	res, err := insp.SearchInspiration(ctx, q)
	if err != nil {
		return providers.InspirationResult{}, err
	}
	s.writeCached(ctx, key, res)
	return res, nil
}

// PriceMetrics looks up the historical quartile distribution for a route/date
func (s *Svc) PriceMetrics(
	ctx context.Context,
	q providers.PriceMetricsQuery,
) (providers.PriceMetricsResult, error) {
	key, err := cachekey.For(cachekey.PrefixPriceIPA, metricsKeyFields{
		OriginIATACode:      q.OriginIATACode,
		DestinationIATACode: q.DestinationIATACode,
		DepartureDate:       q.DepartureDate,
		CurrencyCode:        q.CurrencyCode,
		OneWay:              q.OneWay,
	})
	if err != nil {
		return providers.PriceMetricsResult{}, err
	}

	var cached providers.PriceMetricsResult
	if s.readCached(ctx, key, &cached) {
		return cached, nil
	}

	pm, ok := s.provider.(providers.PriceMetricsProvider)
	if !ok {
		return providers.PriceMetricsResult{},
			perr.Configf("itinerary price metrics not supported by provider %s", s.provider.Name())
	}
	res, err := pm.ItineraryPriceMetrics(ctx, q)
	if err != nil {
		return providers.PriceMetricsResult{}, err
	}
	s.writeCached(ctx, key, res)
	return res, nil
}

// readCached reports whether key held a decodable payload. Read errors and
// corrupt entries count as misses
func (s *Svc) readCached(ctx context.Context, key string, out any) bool {
	if s.kv == nil {
		return false
	}
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("insight cache read failed")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("insight cache entry corrupt")
		return false
	}
	return true
}

func (s *Svc) writeCached(ctx context.Context, key string, v any) {
	if s.kv == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, key, string(b), s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("insight cache write failed")
	}
}
