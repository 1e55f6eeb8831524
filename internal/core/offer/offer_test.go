package offer

import (
	"testing"
)

func seg(flight string, minutes int) Segment {
	return Segment{
		Origin:           "SFO",
		Destination:      "LHR",
		DepartureTimeUTC: "2025-11-10T08:00:00.000Z",
		ArrivalTimeUTC:   "2025-11-10T16:30:00.000Z",
		MarketingCarrier: "BA",
		FlightNumber:     flight,
		DurationMinutes:  minutes,
	}
}

func TestMoney_Validate(t *testing.T) {
	t.Parallel()

	if err := (Money{Amount: 100, Currency: "USD"}).Validate(); err != nil {
		t.Fatalf("valid money rejected: %v", err)
	}
	if err := (Money{Amount: -1, Currency: "USD"}).Validate(); err == nil {
		t.Fatalf("negative amount accepted")
	}
	if err := (Money{Amount: 1, Currency: "US"}).Validate(); err == nil {
		t.Fatalf("2-letter currency accepted")
	}
}

func TestSegment_Validate_NegativeDuration(t *testing.T) {
	t.Parallel()

	s := seg("BA280", -5)
	if err := s.Validate(); err == nil {
		t.Fatalf("negative duration accepted")
	}
}

func TestNewItinerary_Empty(t *testing.T) {
	t.Parallel()

	if _, err := NewItinerary(nil, 0); err == nil {
		t.Fatalf("empty itinerary accepted")
	}
}

func TestNewItinerary_DerivesStopsAndDuration(t *testing.T) {
	t.Parallel()

	it, err := NewItinerary([]Segment{seg("AF65", 645), seg("AF1300", 115)}, 0)
	if err != nil {
		t.Fatalf("NewItinerary: %v", err)
	}
	if it.Stops != 1 {
		t.Fatalf("stops = %d want 1", it.Stops)
	}
	if it.DurationMinutes != 760 {
		t.Fatalf("duration = %d want 760", it.DurationMinutes)
	}
}

func TestNewItinerary_ProviderTotalWins(t *testing.T) {
	t.Parallel()

	it, err := NewItinerary([]Segment{seg("AF65", 645), seg("AF1300", 115)}, 800)
	if err != nil {
		t.Fatalf("NewItinerary: %v", err)
	}
	if it.DurationMinutes != 800 {
		t.Fatalf("duration = %d want provider-supplied 800", it.DurationMinutes)
	}
}

func TestOffer_WithExtras_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	o := Offer{ID: "mock:mock-1", Provider: "mock", Extras: Extras{ExtraFareBrand: "Light"}}
	enriched := o.WithExtras(map[string]any{ExtraOfferRef: "offer:mock:mock-1"})

	if o.Extras.String(ExtraOfferRef) != "" {
		t.Fatalf("receiver extras mutated: %#v", o.Extras)
	}
	if enriched.Extras.String(ExtraOfferRef) != "offer:mock:mock-1" {
		t.Fatalf("enriched extras missing offerRef: %#v", enriched.Extras)
	}
	if enriched.Extras.String(ExtraFareBrand) != "Light" {
		t.Fatalf("existing extras dropped: %#v", enriched.Extras)
	}
}

func TestOffer_Totals(t *testing.T) {
	t.Parallel()

	out, _ := NewItinerary([]Segment{seg("BA280", 510)}, 0)
	in, _ := NewItinerary([]Segment{seg("BA281", 500), seg("BA43", 90)}, 0)
	o := Offer{Outbound: out, Inbound: &in}

	if got := o.TotalDurationMinutes(); got != 1100 {
		t.Fatalf("total duration = %d want 1100", got)
	}
	if got := o.TotalStops(); got != 1 {
		t.Fatalf("total stops = %d want 1", got)
	}
}

func TestOffer_HasCheckedBag(t *testing.T) {
	t.Parallel()

	o := Offer{}
	if o.HasCheckedBag() {
		t.Fatalf("no baggage should mean no checked bag")
	}
	o.Baggage = &BaggageAllowance{CarryOn: "1 x 8kg"}
	if o.HasCheckedBag() {
		t.Fatalf("carry-on only should mean no checked bag")
	}
	o.Baggage = &BaggageAllowance{Checked: "1 x 23kg"}
	if !o.HasCheckedBag() {
		t.Fatalf("checked allowance not detected")
	}
}

func TestSearchParams_Validate(t *testing.T) {
	t.Parallel()

	p := SearchParams{Origin: "SFO", DepartDate: "2025-11-10"}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if err := (SearchParams{DepartDate: "2025-11-10"}).Validate(); err == nil {
		t.Fatalf("missing origin accepted")
	}
	if err := (SearchParams{Origin: "SFO"}).Validate(); err == nil {
		t.Fatalf("missing departDate accepted")
	}
}

func TestExtras_TypedAccessors(t *testing.T) {
	t.Parallel()

	e := Extras{ExtraFareClass: "Y", ExtraRefundable: true, ExtraSeatsRemaining: 4}
	if e.String(ExtraFareClass) != "Y" {
		t.Fatalf("string accessor failed")
	}
	if !e.Bool(ExtraRefundable) {
		t.Fatalf("bool accessor failed")
	}
	if e.String(ExtraSeatsRemaining) != "" {
		t.Fatalf("string accessor should reject non-string values")
	}
	if e.Bool("absent") {
		t.Fatalf("absent key should be false")
	}
}
