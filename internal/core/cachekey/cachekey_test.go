package cachekey

import (
	"strings"
	"testing"

	"farescout/internal/core/offer"
)

type searchKey struct {
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	DepartDate  string                `json:"departDate"`
	Passengers  offer.PassengerCounts `json:"passengers"`
	Currency    string                `json:"currency"`
	Provider    string                `json:"provider"`
}

func TestHash_Stable(t *testing.T) {
	t.Parallel()

	a := searchKey{Origin: "SFO", Destination: "LHR", DepartDate: "2025-11-10", Passengers: offer.PassengerCounts{Adults: 1}, Currency: "USD", Provider: "mock"}
	b := a

	ha, err := Hash(a)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hb, err := Hash(b)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if ha != hb {
		t.Fatalf("equal values hashed differently: %s vs %s", ha, hb)
	}
	if len(ha) != 40 {
		t.Fatalf("expected sha1 hex digest, got %q", ha)
	}
}

func TestHash_MapInsertionOrderIrrelevant(t *testing.T) {
	t.Parallel()

	m1 := map[string]any{}
	m1["origin"] = "SFO"
	m1["currency"] = "USD"

	m2 := map[string]any{}
	m2["currency"] = "USD"
	m2["origin"] = "SFO"

	h1, _ := Hash(m1)
	h2, _ := Hash(m2)
	if h1 != h2 {
		t.Fatalf("insertion order changed the hash: %s vs %s", h1, h2)
	}
}

func TestHash_RelevantFieldChangesKey(t *testing.T) {
	t.Parallel()

	base := searchKey{Origin: "SFO", Destination: "LHR", DepartDate: "2025-11-10", Passengers: offer.PassengerCounts{Adults: 1}, Currency: "USD", Provider: "mock"}
	eur := base
	eur.Currency = "EUR"

	hb, _ := Hash(base)
	he, _ := Hash(eur)
	if hb == he {
		t.Fatalf("currency change did not change the hash")
	}
}

func TestFor_Prefixes(t *testing.T) {
	t.Parallel()

	key, err := For(PrefixSearch, searchKey{Origin: "SFO"})
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if !strings.HasPrefix(key, "search:") {
		t.Fatalf("key %q missing search: prefix", key)
	}
}

func TestOfferRef_Layout(t *testing.T) {
	t.Parallel()

	if got := OfferRef("mock", "mock-1"); got != "offer:mock:mock-1" {
		t.Fatalf("offer ref = %q", got)
	}
}
