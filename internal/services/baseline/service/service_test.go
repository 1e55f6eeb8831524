package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farescout/internal/core/offer"
	"farescout/internal/services/baseline/repo"
)

type fakeRepo struct {
	inserted [][]repo.Snapshot
	insErr   error

	stats    offer.BaselineStats
	found    bool
	statsErr error
	queries  int
}

func (f *fakeRepo) InsertSnapshots(_ context.Context, snaps []repo.Snapshot) error {
	f.inserted = append(f.inserted, snaps)
	return f.insErr
}

func (f *fakeRepo) Stats(_ context.Context, _, _, _ string) (offer.BaselineStats, bool, error) {
	f.queries++
	return f.stats, f.found, f.statsErr
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

func params() offer.SearchParams {
	return offer.SearchParams{Origin: "SFO", Destination: "LHR", DepartDate: "2025-11-10"}
}

func offers() []offer.Offer {
	return []offer.Offer{
		{ID: "a", Provider: "mock", Price: offer.Money{Amount: 680, Currency: "USD"}},
		{ID: "b", Provider: "mock", Price: offer.Money{Amount: 520, Currency: "USD"}},
	}
}

func TestRecord_SnapshotsEveryOffer(t *testing.T) {
	t.Parallel()

	r := &fakeRepo{}
	s := New(r, nil)
	s.now = func() time.Time { return time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC) }

	s.Record(context.Background(), params(), offers())

	if len(r.inserted) != 1 || len(r.inserted[0]) != 2 {
		t.Fatalf("expected one batch of 2 snapshots, got %+v", r.inserted)
	}
	snap := r.inserted[0][0]
	if snap.RouteKey != "SFO-LHR" || snap.DepartDate != "2025-11-10" || snap.Cabin != "economy" {
		t.Fatalf("snapshot keys wrong: %+v", snap)
	}
	if snap.Price != 680 || snap.Provider != "mock" || snap.ID == "" {
		t.Fatalf("snapshot values wrong: %+v", snap)
	}
	if !snap.CapturedAt.Equal(time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("captured at wrong: %v", snap.CapturedAt)
	}
	if r.inserted[0][0].ID == r.inserted[0][1].ID {
		t.Fatalf("snapshot ids must be unique")
	}
}

func TestRecord_BestEffort(t *testing.T) {
	t.Parallel()

	s := New(&fakeRepo{insErr: errors.New("ch down")}, nil)
	s.Record(context.Background(), params(), offers()) // must not panic

	s = New(nil, nil)
	s.Record(context.Background(), params(), offers()) // nil repo is a no-op
}

func TestStats_FoundAndCached(t *testing.T) {
	t.Parallel()

	r := &fakeRepo{
		stats: offer.BaselineStats{MedianPrice: 600, Volatility: 42, SampleSize: 18, LastUpdatedUTC: "2025-11-01T12:00:00Z"},
		found: true,
	}
	kv := newMemKV()
	s := New(r, kv)

	for i := 0; i < 3; i++ {
		got := s.Stats(context.Background(), params())
		if got == nil || got.MedianPrice != 600 || got.SampleSize != 18 {
			t.Fatalf("stats %d wrong: %+v", i, got)
		}
	}
	if r.queries != 1 {
		t.Fatalf("repo queried %d times, want 1", r.queries)
	}
	if len(kv.data) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(kv.data))
	}
	for k := range kv.data {
		if k[:9] != "baseline:" {
			t.Fatalf("cache key prefix wrong: %q", k)
		}
	}
}

func TestStats_NilOnMissingHistoryOrError(t *testing.T) {
	t.Parallel()

	if got := New(&fakeRepo{found: false}, nil).Stats(context.Background(), params()); got != nil {
		t.Fatalf("no history should yield nil, got %+v", got)
	}
	if got := New(&fakeRepo{statsErr: errors.New("ch down")}, nil).Stats(context.Background(), params()); got != nil {
		t.Fatalf("query failure should yield nil, got %+v", got)
	}
	if got := New(nil, nil).Stats(context.Background(), params()); got != nil {
		t.Fatalf("nil repo should yield nil, got %+v", got)
	}

	p := params()
	p.Destination = ""
	if got := New(&fakeRepo{found: true}, nil).Stats(context.Background(), p); got != nil {
		t.Fatalf("anywhere search has no route baseline, got %+v", got)
	}
}
