// Package offer holds the canonical flight offer model shared by providers,
// dedup, scoring and the search services. Values are produced once by a
// provider adapter and treated as immutable afterwards; enrichment goes
// through WithExtras which returns a new value.
package offer

import (
	perr "farescout/internal/platform/errors"
)

// CabinClass is the normalized cabin for an offer or segment
type CabinClass string

// Cabin classes in ascending comfort order
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// Money is an amount in an ISO-4217 currency
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Validate rejects negative amounts and malformed currency codes
func (m Money) Validate() error {
	if m.Amount < 0 {
		return perr.InvalidArgf("money amount %v is negative", m.Amount)
	}
	if len(m.Currency) != 3 {
		return perr.InvalidArgf("currency %q is not a 3-letter code", m.Currency)
	}
	return nil
}

// BaggageAllowance describes included baggage, free-form per provider
type BaggageAllowance struct {
	CarryOn string `json:"carryOn,omitempty"` // e.g. "1 x 8kg"
	Checked string `json:"checked,omitempty"` // e.g. "1 x 23kg"
}

// Segment is one flown leg
type Segment struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	DepartureTimeUTC  string     `json:"departureTimeUtc"`
	ArrivalTimeUTC    string     `json:"arrivalTimeUtc"`
	DepartureTerminal string     `json:"departureTerminal,omitempty"`
	ArrivalTerminal   string     `json:"arrivalTerminal,omitempty"`
	MarketingCarrier  string     `json:"marketingCarrier"`
	OperatingCarrier  string     `json:"operatingCarrier,omitempty"`
	FlightNumber      string     `json:"flightNumber"`
	Aircraft          string     `json:"aircraft,omitempty"`
	DurationMinutes   int        `json:"durationMinutes"`
	Cabin             CabinClass `json:"cabin,omitempty"`
	FareClass         string     `json:"fareClass,omitempty"`
}

// Validate rejects segments with a negative duration
func (s Segment) Validate() error {
	if s.DurationMinutes < 0 {
		return perr.InvalidArgf("segment %s duration %d is negative", s.FlightNumber, s.DurationMinutes)
	}
	return nil
}

// Itinerary is the ordered non-empty segment sequence for one direction
type Itinerary struct {
	Segments        []Segment `json:"segments"`
	DurationMinutes int       `json:"durationMinutes"`
	Stops           int       `json:"stops"`
}

// NewItinerary derives duration and stop count from segments
// totalMinutes overrides the summed duration when the provider supplies one
func NewItinerary(segments []Segment, totalMinutes int) (Itinerary, error) {
	if len(segments) == 0 {
		return Itinerary{}, perr.InvalidArgf("itinerary requires at least one segment")
	}
	sum := 0
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return Itinerary{}, err
		}
		sum += s.DurationMinutes
	}
	if totalMinutes <= 0 {
		totalMinutes = sum
	}
	return Itinerary{
		Segments:        segments,
		DurationMinutes: totalMinutes,
		Stops:           len(segments) - 1,
	}, nil
}

// Extras is the open bag of provider-specific facts on an offer
// values are primitives; use the Key constants for the well-known names
type Extras map[string]any

// Well-known extras keys. Not every provider fills every key.
const (
	ExtraOfferRef               = "offerRef"
	ExtraID                     = "id"
	ExtraProvider               = "provider"
	ExtraFareBrand              = "fareBrand"
	ExtraFareBrandLabel         = "fareBrandLabel"
	ExtraFareClass              = "fareClass"
	ExtraRefundable             = "refundable"
	ExtraChangeable             = "changeable"
	ExtraMealIncluded           = "mealIncluded"
	ExtraMealChargeable         = "mealChargeable"
	ExtraSeatsRemaining         = "numberOfBookableSeats"
	ExtraValidatingAirlines     = "validatingAirlineCodes"
	ExtraIncludedCheckedOnly    = "includedCheckedBagsOnly"
	ExtraPriceBase              = "priceBase"
	ExtraTaxes                  = "taxes"
	ExtraOutboundLayoverMinutes = "outboundLayoverMinutes"
	ExtraInboundLayoverMinutes  = "inboundLayoverMinutes"
	ExtraDepartureTimeUTC       = "departureTimeUtc"
	ExtraArrivalTimeUTC         = "arrivalTimeUtc"
	ExtraBookingToken           = "bookingToken"
	ExtraDepartureToken         = "departureToken"
)

// String returns the string value for a key, "" when absent or not a string
func (e Extras) String(key string) string {
	if v, ok := e[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool value for a key, false when absent or not a bool
func (e Extras) Bool(key string) bool {
	if v, ok := e[key].(bool); ok {
		return v
	}
	return false
}

// Offer is one priced bookable flight itinerary from one provider
type Offer struct {
	ID         string            `json:"id"` // provider-qualified, e.g. "mock:mock-1"
	Provider   string            `json:"provider"`
	Outbound   Itinerary         `json:"outbound"`
	Inbound    *Itinerary        `json:"inbound,omitempty"`
	Price      Money             `json:"price"`
	Cabin      CabinClass        `json:"cabin"`
	FareBrand  string            `json:"fareBrand,omitempty"`
	Baggage    *BaggageAllowance `json:"baggage,omitempty"`
	BookingURL string            `json:"bookingUrl,omitempty"`
	Extras     Extras            `json:"extras,omitempty"`
}

// WithExtras returns a copy of the offer with the given keys merged into its
// extras. The receiver and its original extras map are left untouched.
func (o Offer) WithExtras(kv map[string]any) Offer {
	merged := make(Extras, len(o.Extras)+len(kv))
	for k, v := range o.Extras {
		merged[k] = v
	}
	for k, v := range kv {
		merged[k] = v
	}
	o.Extras = merged
	return o
}

// TotalDurationMinutes sums outbound and inbound durations
func (o Offer) TotalDurationMinutes() int {
	total := o.Outbound.DurationMinutes
	if o.Inbound != nil {
		total += o.Inbound.DurationMinutes
	}
	return total
}

// TotalStops sums outbound and inbound stop counts
func (o Offer) TotalStops() int {
	stops := o.Outbound.Stops
	if o.Inbound != nil {
		stops += o.Inbound.Stops
	}
	return stops
}

// HasCheckedBag reports whether a checked allowance is present
func (o Offer) HasCheckedBag() bool {
	return o.Baggage != nil && o.Baggage.Checked != ""
}

// ScoreBreakdown explains how a score was assembled
// five factors live on 0..100, confidence on 0..1
type ScoreBreakdown struct {
	PriceVsMedian   float64  `json:"priceVsMedian"`
	DurationPenalty float64  `json:"durationPenalty"`
	StopPenalty     float64  `json:"stopPenalty"`
	LayoverQuality  float64  `json:"layoverQuality"`
	BaggageValue    float64  `json:"baggageValue"`
	Confidence      float64  `json:"confidence"`
	AirlineQuality  float64  `json:"airlineQuality,omitempty"`
	AirportQuality  float64  `json:"airportQuality,omitempty"`
	Notes           []string `json:"notes,omitempty"`
}

// ScoredOffer is an Offer plus its desirability score and breakdown
type ScoredOffer struct {
	Offer
	Score     int            `json:"score"` // 0..100
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// BaselineStats describes the historical price distribution for a route/date
type BaselineStats struct {
	MedianPrice    float64 `json:"medianPrice"`
	Volatility     float64 `json:"volatility"`
	SampleSize     int     `json:"sampleSize"`
	LastUpdatedUTC string  `json:"lastUpdatedUtc"`
}

// PassengerCounts is the traveler mix for a search
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`
}

// SearchParams is the immutable request describing one search
// MaxStops is a pointer because 0 is a meaningful filter value
type SearchParams struct {
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination,omitempty"` // empty for anywhere searches
	DepartDate   string          `json:"departDate"`            // YYYY-MM-DD
	ReturnDate   string          `json:"returnDate,omitempty"`
	OneWay       bool            `json:"oneWay,omitempty"`
	Passengers   PassengerCounts `json:"passengers"`
	Cabin        CabinClass      `json:"cabin,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	IncludeScore bool            `json:"includeScore,omitempty"`
	MaxStops     *int            `json:"maxStops,omitempty"`
	SortBy       string          `json:"sortBy,omitempty"` // price, score, duration
}

// Validate enforces the fields every provider requires
func (p SearchParams) Validate() error {
	if p.Origin == "" {
		return perr.Newf(perr.ErrorCodeValidation, "origin is required")
	}
	if p.DepartDate == "" {
		return perr.Newf(perr.ErrorCodeValidation, "departDate is required")
	}
	return nil
}

// SearchResult is the envelope returned to callers
type SearchResult struct {
	Offers   any    `json:"offers"` // []Offer or []ScoredOffer
	Count    int    `json:"count"`
	Currency string `json:"currency"`
	Provider string `json:"provider"`
}
