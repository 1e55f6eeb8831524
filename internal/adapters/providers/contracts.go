package providers

import "farescout/internal/core/offer"

// AdvancedSearchRequest is the multi-leg search body, GDS-shaped
type AdvancedSearchRequest struct {
	CurrencyCode       string              `json:"currencyCode,omitempty" validate:"omitempty,len=3"`
	OriginDestinations []OriginDestination `json:"originDestinations" validate:"required,min=1,dive"`
	Travelers          []Traveler          `json:"travelers" validate:"required,min=1,dive"`
	Sources            []string            `json:"sources,omitempty"` // e.g. ["GDS"]
	SearchCriteria     *SearchCriteria     `json:"searchCriteria,omitempty"`
}

// OriginDestination is one requested leg
type OriginDestination struct {
	ID                     string         `json:"id" validate:"required"`
	OriginLocationCode     string         `json:"originLocationCode" validate:"required,len=3"`
	DestinationLocationCode string        `json:"destinationLocationCode" validate:"required,len=3"`
	DepartureDateTimeRange *DateTimeRange `json:"departureDateTimeRange,omitempty"`
}

// DateTimeRange narrows a leg to a date and optional time
type DateTimeRange struct {
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time string `json:"time,omitempty"`
}

// Traveler is one passenger in an advanced request
type Traveler struct {
	ID           string `json:"id" validate:"required"`
	TravelerType string `json:"travelerType" validate:"required"` // ADULT, CHILD, ...
}

// SearchCriteria tunes an advanced search
type SearchCriteria struct {
	MaxFlightOffers int            `json:"maxFlightOffers,omitempty" validate:"omitempty,min=1"`
	FlightFilters   *FlightFilters `json:"flightFilters,omitempty"`
}

// FlightFilters restricts cabins per leg
type FlightFilters struct {
	CabinRestrictions []CabinRestriction `json:"cabinRestrictions,omitempty"`
}

// CabinRestriction pins a cabin to a set of legs
type CabinRestriction struct {
	Cabin                string   `json:"cabin" validate:"required,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	Coverage             string   `json:"coverage,omitempty"`
	OriginDestinationIDs []string `json:"originDestinationIds,omitempty"`
}

// ReduceToSimple collapses an advanced request to simple params using its
// first leg; the adult count is the number of ADULT travelers, minimum 1.
// Returns false when the request has no legs.
func (r AdvancedSearchRequest) ReduceToSimple() (offer.SearchParams, bool) {
	if len(r.OriginDestinations) == 0 {
		return offer.SearchParams{}, false
	}
	od := r.OriginDestinations[0]
	adults := 0
	for _, t := range r.Travelers {
		if t.TravelerType == "ADULT" {
			adults++
		}
	}
	if adults == 0 {
		adults = 1
	}
	currency := r.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	date := ""
	if od.DepartureDateTimeRange != nil {
		date = od.DepartureDateTimeRange.Date
	}
	return offer.SearchParams{
		Origin:      od.OriginLocationCode,
		Destination: od.DestinationLocationCode,
		DepartDate:  date,
		Passengers:  offer.PassengerCounts{Adults: adults},
		Currency:    currency,
	}, true
}

// PriceOffersRequest re-prices resolved offers
type PriceOffersRequest struct {
	Offers     []offer.Offer `json:"offers"`
	Include    []string      `json:"include,omitempty"`
	ForceClass bool          `json:"forceClass,omitempty"`
}

// CheapestDatesQuery asks for the cheapest travel dates on a route
type CheapestDatesQuery struct {
	Origin        string `json:"origin" validate:"required,len=3"`
	Destination   string `json:"destination" validate:"required,len=3"`
	DepartureDate string `json:"departureDate,omitempty"`
	ReturnDate    string `json:"returnDate,omitempty"`
	OneWay        *bool  `json:"oneWay,omitempty"`
	Duration      string `json:"duration,omitempty"`
	NonStop       *bool  `json:"nonStop,omitempty"`
	ViewBy        string `json:"viewBy,omitempty"`
}

// DatePrice is one priced date pair in a cheapest-dates result
type DatePrice struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departureDate"`
	ReturnDate    string      `json:"returnDate,omitempty"`
	Price         offer.Money `json:"price"`
}

// CheapestDatesResult is the cheapest-dates payload
type CheapestDatesResult struct {
	Data []DatePrice `json:"data"`
}

// InspirationQuery asks where an origin can fly cheaply
type InspirationQuery struct {
	Origin        string   `json:"origin" validate:"required,len=3"`
	DepartureDate string   `json:"departureDate,omitempty"`
	OneWay        *bool    `json:"oneWay,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	NonStop       *bool    `json:"nonStop,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	ViewBy        string   `json:"viewBy,omitempty"`
}

// InspirationDestination is one destination suggestion
type InspirationDestination struct {
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departureDate,omitempty"`
	ReturnDate    string      `json:"returnDate,omitempty"`
	Price         offer.Money `json:"price"`
}

// InspirationResult is the inspiration payload
type InspirationResult struct {
	Data []InspirationDestination `json:"data"`
}

// PriceMetricsQuery asks for the quartile price distribution of a route/date
type PriceMetricsQuery struct {
	OriginIATACode      string `json:"originIataCode" validate:"required,len=3"`
	DestinationIATACode string `json:"destinationIataCode" validate:"required,len=3"`
	DepartureDate       string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	CurrencyCode        string `json:"currencyCode,omitempty" validate:"omitempty,len=3"`
	OneWay              bool   `json:"oneWay,omitempty"`
}

// QuartileMetric is one point of the price distribution
// Ranking is MINIMUM, FIRST, MEDIUM, THIRD or MAXIMUM
type QuartileMetric struct {
	Amount  float64 `json:"amount"`
	Ranking string  `json:"quartileRanking"`
}

// RoutePriceMetrics is the distribution for one route/date
type RoutePriceMetrics struct {
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	DepartureDate string           `json:"departureDate"`
	CurrencyCode  string           `json:"currencyCode"`
	OneWay        bool             `json:"oneWay"`
	Metrics       []QuartileMetric `json:"priceMetrics"`
}

// PriceMetricsResult is the price-metrics payload
type PriceMetricsResult struct {
	Data []RoutePriceMetrics `json:"data"`
}
