package mock

import (
	"context"
	"testing"

	"farescout/internal/core/offer"
)

func params() offer.SearchParams {
	return offer.SearchParams{
		Origin:      "SFO",
		Destination: "LHR",
		DepartDate:  "2025-11-10",
		Passengers:  offer.PassengerCounts{Adults: 1},
	}
}

func TestSearch_ReturnsFixtureSet(t *testing.T) {
	t.Parallel()

	offers, err := New().Search(context.Background(), params())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}
	if offers[0].ID != "mock-1" || offers[0].Outbound.Stops != 0 {
		t.Fatalf("first offer wrong: %+v", offers[0])
	}
	if offers[1].ID != "mock-2" || offers[1].Outbound.Stops != 1 {
		t.Fatalf("second offer wrong: %+v", offers[1])
	}
	if offers[0].Price.Amount != 680 || offers[1].Price.Amount != 520 {
		t.Fatalf("fixture prices wrong: %v %v", offers[0].Price, offers[1].Price)
	}
}

func TestSearch_MaxStopsZero_FiltersToDirect(t *testing.T) {
	t.Parallel()

	p := params()
	zero := 0
	p.MaxStops = &zero

	offers, err := New().Search(context.Background(), p)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != "mock-1" {
		t.Fatalf("maxStops=0 should keep only mock-1, got %+v", offers)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	t.Parallel()

	a, _ := New().Search(context.Background(), params())
	b, _ := New().Search(context.Background(), params())
	if a[0].ID != b[0].ID || a[1].Price.Amount != b[1].Price.Amount {
		t.Fatalf("fixture provider not deterministic")
	}
}

func TestSearch_ValidatesParams(t *testing.T) {
	t.Parallel()

	if _, err := New().Search(context.Background(), offer.SearchParams{Origin: "SFO"}); err == nil {
		t.Fatalf("missing departDate accepted")
	}
	if _, err := New().Search(context.Background(), offer.SearchParams{DepartDate: "2025-11-10"}); err == nil {
		t.Fatalf("missing origin accepted")
	}
}

func TestSearch_DefaultsCurrencyAndCabin(t *testing.T) {
	t.Parallel()

	offers, err := New().Search(context.Background(), params())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if offers[0].Price.Currency != "USD" || offers[0].Cabin != offer.CabinEconomy {
		t.Fatalf("defaults not applied: %v %v", offers[0].Price.Currency, offers[0].Cabin)
	}

	p := params()
	p.Currency = "EUR"
	p.Cabin = offer.CabinBusiness
	offers, _ = New().Search(context.Background(), p)
	if offers[0].Price.Currency != "EUR" || offers[0].Cabin != offer.CabinBusiness {
		t.Fatalf("explicit currency/cabin not honored")
	}
}
