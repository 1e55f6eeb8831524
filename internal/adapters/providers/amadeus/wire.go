package amadeus

// Wire shapes for the flight-offers endpoints. Only the fields the mapper
// reads are declared; everything else in the payload is ignored.

type offersResponse struct {
	Data []wireOffer `json:"data"`
}

type pricingResponse struct {
	Data struct {
		FlightOffers []wireOffer `json:"flightOffers"`
	} `json:"data"`
}

type wireOffer struct {
	ID                     string               `json:"id"`
	Itineraries            []wireItinerary      `json:"itineraries"`
	Price                  wirePrice            `json:"price"`
	PricingOptions         wirePricingOptions   `json:"pricingOptions"`
	NumberOfBookableSeats  int                  `json:"numberOfBookableSeats"`
	ValidatingAirlineCodes []string             `json:"validatingAirlineCodes"`
	TravelerPricings       []wireTravelerPricing `json:"travelerPricings"`
}

type wireItinerary struct {
	Duration string        `json:"duration"`
	Segments []wireSegment `json:"segments"`
}

type wireSegment struct {
	Departure wireEndpoint `json:"departure"`
	Arrival   wireEndpoint `json:"arrival"`
	CarrierCode string     `json:"carrierCode"`
	Number      string     `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	Operating struct {
		CarrierCode string `json:"carrierCode"`
	} `json:"operating"`
	Duration string `json:"duration"`
}

type wireEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type wirePrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type wirePricingOptions struct {
	IncludedCheckedBagsOnly bool `json:"includedCheckedBagsOnly"`
}

type wireTravelerPricing struct {
	FareDetailsBySegment []wireFareDetail `json:"fareDetailsBySegment"`
}

type wireFareDetail struct {
	Cabin            string `json:"cabin"`
	Class            string `json:"class"`
	BrandedFare      string `json:"brandedFare"`
	BrandedFareLabel string `json:"brandedFareLabel"`
	IncludedCheckedBags wireBagAllowance `json:"includedCheckedBags"`
	IncludedCabinBags   wireBagAllowance `json:"includedCabinBags"`
	Amenities           []wireAmenity    `json:"amenities"`
}

type wireBagAllowance struct {
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

type wireAmenity struct {
	Description  string `json:"description"`
	IsChargeable bool   `json:"isChargeable"`
}

type datesResponse struct {
	Data []wireDatePrice `json:"data"`
}

type wireDatePrice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Price         struct {
		Total string `json:"total"`
	} `json:"price"`
}

type inspirationResponse struct {
	Data []wireDatePrice `json:"data"`
	Meta struct {
		Currency string `json:"currency"`
	} `json:"meta"`
}

type metricsResponse struct {
	Data []wireRouteMetrics `json:"data"`
}

type wireRouteMetrics struct {
	Origin struct {
		IATACode string `json:"iataCode"`
	} `json:"origin"`
	Destination struct {
		IATACode string `json:"iataCode"`
	} `json:"destination"`
	DepartureDate string `json:"departureDate"`
	CurrencyCode  string `json:"currencyCode"`
	OneWay        bool   `json:"oneWay"`
	PriceMetrics  []struct {
		Amount          string `json:"amount"`
		QuartileRanking string `json:"quartileRanking"`
	} `json:"priceMetrics"`
}
