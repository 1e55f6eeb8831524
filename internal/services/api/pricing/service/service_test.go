package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
	perr "farescout/internal/platform/errors"
	"farescout/internal/services/api/pricing/domain"
)

type searchOnly struct{}

func (searchOnly) Name() string { return "serpapi" }
func (searchOnly) Search(context.Context, offer.SearchParams) ([]offer.Offer, error) {
	return nil, nil
}

type repricing struct {
	searchOnly
	got []offer.Offer
	req providers.PriceOffersRequest
	err error
}

func (r *repricing) Name() string { return "amadeus" }

func (r *repricing) PriceOffers(_ context.Context, req providers.PriceOffersRequest) ([]offer.Offer, error) {
	r.req = req
	if r.err != nil {
		return nil, r.err
	}
	return r.got, nil
}

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func seedOffer(kv *memKV, ref, id string, amount float64) {
	b, _ := json.Marshal(offer.Offer{
		ID: id, Provider: "amadeus",
		Price: offer.Money{Amount: amount, Currency: "USD"},
	})
	kv.data[ref] = string(b)
}

func TestPriceByRefs_ResolvesAndReprices(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	seedOffer(kv, "offer:amadeus:1", "1", 680)
	seedOffer(kv, "offer:amadeus:2", "2", 520)

	p := &repricing{got: []offer.Offer{{ID: "1", Price: offer.Money{Amount: 700, Currency: "USD"}}}}
	s := New(p, kv)

	res, err := s.PriceByRefs(context.Background(), domain.PriceInput{
		OfferRefs:  []string{"offer:amadeus:1", "offer:amadeus:2"},
		Include:    []string{"bags"},
		ForceClass: true,
	})
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if res.Count != 1 || res.Offers[0].Price.Amount != 700 {
		t.Fatalf("result wrong: %+v", res)
	}
	if len(p.req.Offers) != 2 || p.req.Offers[0].ID != "1" {
		t.Fatalf("resolved offers wrong: %+v", p.req.Offers)
	}
	if len(p.req.Include) != 1 || !p.req.ForceClass {
		t.Fatalf("options not forwarded: %+v", p.req)
	}
}

func TestPriceByRefs_SkipsMissingAndCorrupt(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	seedOffer(kv, "offer:amadeus:1", "1", 680)
	kv.data["offer:amadeus:bad"] = "{corrupt"

	p := &repricing{got: []offer.Offer{{ID: "1"}}}
	s := New(p, kv)

	res, err := s.PriceByRefs(context.Background(), domain.PriceInput{
		OfferRefs: []string{"offer:amadeus:missing", "offer:amadeus:bad", "offer:amadeus:1"},
	})
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if len(p.req.Offers) != 1 || res.Count != 1 {
		t.Fatalf("only the valid ref should survive: %+v", p.req.Offers)
	}
}

func TestPriceByRefs_NothingResolved(t *testing.T) {
	t.Parallel()

	s := New(&repricing{}, newMemKV())
	_, err := s.PriceByRefs(context.Background(), domain.PriceInput{OfferRefs: []string{"offer:amadeus:gone"}})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPriceByRefs_CapabilityMissing(t *testing.T) {
	t.Parallel()

	s := New(searchOnly{}, newMemKV())
	_, err := s.PriceByRefs(context.Background(), domain.PriceInput{OfferRefs: []string{"x"}})
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestPriceByRefs_ProviderErrorPropagates(t *testing.T) {
	t.Parallel()

	kv := newMemKV()
	seedOffer(kv, "offer:amadeus:1", "1", 680)
	s := New(&repricing{err: errors.New("pricing down")}, kv)

	if _, err := s.PriceByRefs(context.Background(), domain.PriceInput{OfferRefs: []string{"offer:amadeus:1"}}); err == nil {
		t.Fatalf("provider error must propagate")
	}
}
