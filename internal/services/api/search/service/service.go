// Package service contains the offer aggregation workflows: cache-aside
// search, dedup, optional scoring and the advanced multi-leg variant
package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/cachekey"
	"farescout/internal/core/dedupe"
	"farescout/internal/core/offer"
	"farescout/internal/core/scoring"
	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/logger"
	"farescout/internal/platform/store"
	"farescout/internal/services/api/search/domain"
	baselinesvc "farescout/internal/services/baseline/service"
	qualitysvc "farescout/internal/services/quality/service"
)

// DefaultCacheTTL is how long search results stay cached
const DefaultCacheTTL = 10 * time.Minute

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Options tunes the service
type Options struct {
	CacheTTL time.Duration
}

// Svc implements the search service
// kv, baseline and quality may each be nil; the flow degrades gracefully
type Svc struct {
	provider providers.SearchProvider
	kv       store.KV
	baseline baselinesvc.Service
	quality  qualitysvc.Service
	ttl      time.Duration
	log      logger.Logger
}

// New constructs a search service
func New(p providers.SearchProvider, kv store.KV, baseline baselinesvc.Service, quality qualitysvc.Service, opts ...Options) *Svc {
	if p == nil {
		panic("search.Service requires a non nil provider")
	}
	ttl := DefaultCacheTTL
	if len(opts) > 0 && opts[0].CacheTTL > 0 {
		ttl = opts[0].CacheTTL
	}
	return &Svc{
		provider: p,
		kv:       kv,
		baseline: baseline,
		quality:  quality,
		ttl:      ttl,
		log:      *logger.Named("search"),
	}
}

// Search runs the cache-aside aggregation flow and assembles the envelope
func (s *Svc) Search(ctx context.Context, params offer.SearchParams) (offer.SearchResult, error) {
	offers, err := s.getOrFetchOffers(ctx, params)
	if err != nil {
		return offer.SearchResult{}, err
	}
	return s.envelope(ctx, params, offers, params.IncludeScore, params.SortBy), nil
}

// SearchAdvanced runs the multi-leg flow, degrading to a simple search when
// the provider lacks the capability
func (s *Svc) SearchAdvanced(ctx context.Context, req providers.AdvancedSearchRequest, includeScore bool) (offer.SearchResult, error) {
	offers, err := s.getOrFetchOffersAdvanced(ctx, req)
	if err != nil {
		return offer.SearchResult{}, err
	}
	simple, _ := req.ReduceToSimple()
	if simple.Currency == "" {
		simple.Currency = req.CurrencyCode
	}
	return s.envelope(ctx, simple, offers, includeScore, ""), nil
}

func (s *Svc) envelope(ctx context.Context, params offer.SearchParams, offers []offer.Offer, includeScore bool, sortBy string) offer.SearchResult {
	currency := params.Currency
	if len(offers) > 0 && offers[0].Price.Currency != "" {
		currency = offers[0].Price.Currency
	}
	if currency == "" {
		currency = "USD"
	}

	var payload any
	if includeScore {
		scored := s.scoreAll(ctx, params, offers)
		sortScored(sortBy, scored)
		payload = scored
	} else {
		sortPlain(sortBy, offers)
		payload = offers
	}
	return offer.SearchResult{
		Offers:   payload,
		Count:    len(offers),
		Currency: currency,
		Provider: s.provider.Name(),
	}
}

// scoreAll scores every offer against the route baseline, blending quality
// ratings when the rating service is wired
func (s *Svc) scoreAll(ctx context.Context, params offer.SearchParams, offers []offer.Offer) []offer.ScoredOffer {
	var baseline *offer.BaselineStats
	if s.baseline != nil {
		baseline = s.baseline.Stats(ctx, params)
	}

	scored := make([]offer.ScoredOffer, 0, len(offers))
	for _, o := range offers {
		if s.quality != nil {
			carrier := ""
			if len(o.Outbound.Segments) > 0 {
				carrier = o.Outbound.Segments[0].MarketingCarrier
			}
			ratings, err := s.quality.RouteRatings(ctx, carrier, params.Origin, params.Destination)
			if err == nil {
				scored = append(scored, scoring.ScoreWithQuality(o, baseline, nil, ratings.Airline, ratings.Origin, ratings.Dest))
				continue
			}
			s.log.Warn().Err(err).Str("offer", o.ID).Msg("quality ratings unavailable, plain scoring")
		}
		scored = append(scored, scoring.Score(o, baseline, nil))
	}
	return scored
}

func sortScored(sortBy string, offers []offer.ScoredOffer) {
	switch sortBy {
	case "price":
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price.Amount < offers[j].Price.Amount })
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].TotalDurationMinutes() < offers[j].TotalDurationMinutes()
		})
	case "score":
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Score > offers[j].Score })
	}
}

func sortPlain(sortBy string, offers []offer.Offer) {
	switch sortBy {
	case "price":
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price.Amount < offers[j].Price.Amount })
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].TotalDurationMinutes() < offers[j].TotalDurationMinutes()
		})
	}
}

// searchKeyFields is the canonical shape hashed into the cache key
// field order and nulls match the per-request canonicalization exactly
type searchKeyFields struct {
	Origin      string                `json:"origin"`
	Destination any                   `json:"destination"`
	DepartDate  string                `json:"departDate"`
	ReturnDate  any                   `json:"returnDate"`
	OneWay      bool                  `json:"oneWay"`
	Passengers  offer.PassengerCounts `json:"passengers"`
	Cabin       any                   `json:"cabin"`
	Currency    any                   `json:"currency"`
	MaxStops    any                   `json:"maxStops"`
	SortBy      any                   `json:"sortBy"`
	Provider    string                `json:"provider"`
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *Svc) cacheKey(params offer.SearchParams) (string, error) {
	fields := searchKeyFields{
		Origin:      params.Origin,
		Destination: nullable(params.Destination),
		DepartDate:  params.DepartDate,
		ReturnDate:  nullable(params.ReturnDate),
		OneWay:      params.OneWay,
		Passengers:  params.Passengers,
		Cabin:       nullable(string(params.Cabin)),
		Currency:    nullable(params.Currency),
		SortBy:      nullable(params.SortBy),
		Provider:    s.provider.Name(),
	}
	if params.MaxStops != nil {
		fields.MaxStops = *params.MaxStops
	}
	return cachekey.For(cachekey.PrefixSearch, fields)
}

// advancedKeyFields is the canonical shape for the advanced cache key
type advancedKeyFields struct {
	CurrencyCode       any              `json:"currencyCode"`
	OriginDestinations []advancedKeyLeg `json:"originDestinations"`
	Travelers          []advancedKeyTvl `json:"travelers"`
	Criteria           any              `json:"criteria"`
	Provider           string           `json:"provider"`
}

type advancedKeyLeg struct {
	Origin      string `json:"originLocationCode"`
	Destination string `json:"destinationLocationCode"`
	Date        any    `json:"date"`
}

type advancedKeyTvl struct {
	ID   string `json:"id"`
	Type string `json:"travelerType"`
}

func (s *Svc) advancedCacheKey(req providers.AdvancedSearchRequest) (string, error) {
	legs := make([]advancedKeyLeg, 0, len(req.OriginDestinations))
	for _, od := range req.OriginDestinations {
		leg := advancedKeyLeg{Origin: od.OriginLocationCode, Destination: od.DestinationLocationCode}
		if od.DepartureDateTimeRange != nil {
			leg.Date = nullable(od.DepartureDateTimeRange.Date)
		}
		legs = append(legs, leg)
	}
	tvls := make([]advancedKeyTvl, 0, len(req.Travelers))
	for _, t := range req.Travelers {
		tvls = append(tvls, advancedKeyTvl{ID: t.ID, Type: t.TravelerType})
	}
	fields := advancedKeyFields{
		CurrencyCode:       nullable(req.CurrencyCode),
		OriginDestinations: legs,
		Travelers:          tvls,
		Provider:           s.provider.Name(),
	}
	if req.SearchCriteria != nil && req.SearchCriteria.MaxFlightOffers > 0 {
		fields.Criteria = req.SearchCriteria.MaxFlightOffers
	}
	return cachekey.For(cachekey.PrefixSearchAdv, fields)
}

// kvGet reads the cache, treating every failure as a miss
func (s *Svc) kvGet(ctx context.Context, key string) (string, bool) {
	if s.kv == nil {
		return "", false
	}
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return "", false
	}
	return raw, ok
}

// kvSet writes the cache, logging failures and moving on
func (s *Svc) kvSet(ctx context.Context, key, value string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// getOrFetchOffers is the §cache-aside read path: hit means dedup and, when
// the dedup shortened the list, a self-healing rewrite of the entry
func (s *Svc) getOrFetchOffers(ctx context.Context, params offer.SearchParams) ([]offer.Offer, error) {
	key, err := s.cacheKey(params)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.kvGet(ctx, key); ok {
		var cached []offer.Offer
		if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
			deduped := dedupe.Dedupe(cached)
			if len(deduped) != len(cached) {
				if b, merr := json.Marshal(deduped); merr == nil {
					s.kvSet(ctx, key, string(b))
				}
			}
			return deduped, nil
		}
		// corrupt entry, refetch below
	}

	offers, err := s.provider.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	offers = dedupe.Dedupe(offers)

	if b, merr := json.Marshal(offers); merr == nil {
		s.kvSet(ctx, key, string(b))
	}

	// enrich extras before the per-offer writes so the details lookup has
	// the full identity even when read straight from the offer index
	for i := range offers {
		coreID := strings.TrimPrefix(offers[i].ID, offers[i].Provider+":")
		ref := cachekey.OfferRef(offers[i].Provider, coreID)
		offers[i] = offers[i].WithExtras(map[string]any{
			offer.ExtraOfferRef: ref,
			offer.ExtraID:       offers[i].ID,
			offer.ExtraProvider: offers[i].Provider,
		})
		if b, merr := json.Marshal(offers[i]); merr == nil {
			s.kvSet(ctx, ref, string(b))
		}
	}

	if s.baseline != nil {
		s.baseline.Record(ctx, params, offers)
	}
	return offers, nil
}

func (s *Svc) getOrFetchOffersAdvanced(ctx context.Context, req providers.AdvancedSearchRequest) ([]offer.Offer, error) {
	key, err := s.advancedCacheKey(req)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.kvGet(ctx, key); ok {
		var cached []offer.Offer
		if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
			deduped := dedupe.Dedupe(cached)
			if len(deduped) != len(cached) {
				if b, merr := json.Marshal(deduped); merr == nil {
					s.kvSet(ctx, key, string(b))
				}
			}
			return deduped, nil
		}
	}

	var offers []offer.Offer
	if adv, ok := s.provider.(providers.AdvancedSearcher); ok {
		offers, err = adv.SearchAdvanced(ctx, req)
		if err != nil {
			return nil, err
		}
	} else {
		simple, ok := req.ReduceToSimple()
		if !ok {
			return nil, perr.Newf(perr.ErrorCodeValidation, "advanced request has no origin destinations")
		}
		offers, err = s.provider.Search(ctx, simple)
		if err != nil {
			return nil, err
		}
		offers = dedupe.Dedupe(offers)
	}

	if b, merr := json.Marshal(offers); merr == nil {
		s.kvSet(ctx, key, string(b))
	}

	// the GDS adapter returns provider-local ids, so the ref is namespaced
	// explicitly; other providers skip the per-offer index here
	if s.provider.Name() == "amadeus" {
		for i := range offers {
			ref := "amadeus:offer:" + offers[i].ID
			if b, merr := json.Marshal(offers[i]); merr == nil {
				s.kvSet(ctx, ref, string(b))
			}
			offers[i] = offers[i].WithExtras(map[string]any{offer.ExtraOfferRef: ref})
		}
	}
	return offers, nil
}
