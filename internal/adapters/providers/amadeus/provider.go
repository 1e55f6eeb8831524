package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
	perr "farescout/internal/platform/errors"
)

// Name is the provider identifier
const Name = "amadeus"

// Provider adapts the Amadeus self-service API to the canonical model.
// It implements every optional capability the services probe for.
type Provider struct {
	client *Client
}

// New builds the provider from client options
func New(o Options) (*Provider, error) {
	c, err := NewClient(o)
	if err != nil {
		return nil, err
	}
	return &Provider{client: c}, nil
}

// Name identifies the provider
func (*Provider) Name() string { return Name }

func mapCabin(c offer.CabinClass) string {
	switch c {
	case offer.CabinPremiumEconomy:
		return "PREMIUM_ECONOMY"
	case offer.CabinBusiness:
		return "BUSINESS"
	case offer.CabinFirst:
		return "FIRST"
	default:
		return "ECONOMY"
	}
}

// Search runs a simple one-route offer search
func (p *Provider) Search(ctx context.Context, params offer.SearchParams) ([]offer.Offer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Destination == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "destination is required")
	}

	adults := params.Passengers.Adults
	if adults <= 0 {
		adults = 1
	}
	q := url.Values{}
	q.Set("originLocationCode", params.Origin)
	q.Set("destinationLocationCode", params.Destination)
	q.Set("departureDate", params.DepartDate)
	q.Set("adults", strconv.Itoa(adults))
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	if params.Cabin != "" {
		q.Set("travelClass", mapCabin(params.Cabin))
	}
	if params.Currency != "" {
		q.Set("currencyCode", params.Currency)
	}

	var res offersResponse
	if err := p.client.getJSON(ctx, "/v2/shopping/flight-offers", q, &res); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus search failed")
	}
	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}
	return mapOffers(res.Data, currency), nil
}

// SearchAdvanced posts the multi-leg request body as-is
func (p *Provider) SearchAdvanced(ctx context.Context, req providers.AdvancedSearchRequest) ([]offer.Offer, error) {
	var res offersResponse
	if err := p.client.postJSON(ctx, "/v2/shopping/flight-offers", req, &res); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus advanced search failed")
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	return mapOffers(res.Data, currency), nil
}

// PriceOffers confirms pricing for previously returned offers
func (p *Provider) PriceOffers(ctx context.Context, req providers.PriceOffersRequest) ([]offer.Offer, error) {
	if len(req.Offers) == 0 {
		return nil, perr.Newf(perr.ErrorCodeValidation, "at least one offer is required")
	}

	path := "/v1/shopping/flight-offers/pricing"
	q := url.Values{}
	if len(req.Include) > 0 {
		q.Set("include", strings.Join(req.Include, ","))
	}
	if req.ForceClass {
		q.Set("forceClass", "true")
	}
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	body := map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": req.Offers,
		},
	}
	var res pricingResponse
	if err := p.client.postJSON(ctx, path, body, &res); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus pricing failed")
	}
	currency := req.Offers[0].Price.Currency
	if currency == "" {
		currency = "USD"
	}
	return mapOffers(res.Data.FlightOffers, currency), nil
}

// SearchCheapestDates finds the cheapest travel dates on a route
func (p *Provider) SearchCheapestDates(ctx context.Context, query providers.CheapestDatesQuery) (providers.CheapestDatesResult, error) {
	q := url.Values{}
	q.Set("origin", query.Origin)
	q.Set("destination", query.Destination)
	if query.DepartureDate != "" {
		q.Set("departureDate", query.DepartureDate)
	}
	if query.OneWay != nil {
		q.Set("oneWay", strconv.FormatBool(*query.OneWay))
	}
	if query.Duration != "" {
		q.Set("duration", query.Duration)
	}
	if query.NonStop != nil {
		q.Set("nonStop", strconv.FormatBool(*query.NonStop))
	}
	if query.ViewBy != "" {
		q.Set("viewBy", query.ViewBy)
	}

	var res datesResponse
	if err := p.client.getJSON(ctx, "/v1/shopping/flight-dates", q, &res); err != nil {
		return providers.CheapestDatesResult{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus cheapest dates failed")
	}
	out := providers.CheapestDatesResult{Data: make([]providers.DatePrice, 0, len(res.Data))}
	for _, d := range res.Data {
		out.Data = append(out.Data, providers.DatePrice{
			Origin:        d.Origin,
			Destination:   d.Destination,
			DepartureDate: d.DepartureDate,
			ReturnDate:    d.ReturnDate,
			Price:         offer.Money{Amount: parseAmount(d.Price.Total), Currency: "EUR"},
		})
	}
	return out, nil
}

// SearchInspiration runs an open-destination search from an origin
func (p *Provider) SearchInspiration(ctx context.Context, query providers.InspirationQuery) (providers.InspirationResult, error) {
	q := url.Values{}
	q.Set("origin", query.Origin)
	if query.DepartureDate != "" {
		q.Set("departureDate", query.DepartureDate)
	}
	if query.OneWay != nil {
		q.Set("oneWay", strconv.FormatBool(*query.OneWay))
	}
	if query.Duration != "" {
		q.Set("duration", query.Duration)
	}
	if query.NonStop != nil {
		q.Set("nonStop", strconv.FormatBool(*query.NonStop))
	}
	if query.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*query.MaxPrice, 'f', -1, 64))
	}
	if query.ViewBy != "" {
		q.Set("viewBy", query.ViewBy)
	}

	var res inspirationResponse
	if err := p.client.getJSON(ctx, "/v1/shopping/flight-destinations", q, &res); err != nil {
		return providers.InspirationResult{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus inspiration failed")
	}
	currency := res.Meta.Currency
	if currency == "" {
		currency = "EUR"
	}
	out := providers.InspirationResult{Data: make([]providers.InspirationDestination, 0, len(res.Data))}
	for _, d := range res.Data {
		out.Data = append(out.Data, providers.InspirationDestination{
			Destination:   d.Destination,
			DepartureDate: d.DepartureDate,
			ReturnDate:    d.ReturnDate,
			Price:         offer.Money{Amount: parseAmount(d.Price.Total), Currency: currency},
		})
	}
	return out, nil
}

// ItineraryPriceMetrics looks up the historical price quartiles for a route/date
func (p *Provider) ItineraryPriceMetrics(ctx context.Context, query providers.PriceMetricsQuery) (providers.PriceMetricsResult, error) {
	q := url.Values{}
	q.Set("originIataCode", query.OriginIATACode)
	q.Set("destinationIataCode", query.DestinationIATACode)
	q.Set("departureDate", query.DepartureDate)
	if query.CurrencyCode != "" {
		q.Set("currencyCode", query.CurrencyCode)
	}
	if query.OneWay {
		q.Set("oneWay", "true")
	}

	var res metricsResponse
	if err := p.client.getJSON(ctx, "/v1/analytics/itinerary-price-metrics", q, &res); err != nil {
		return providers.PriceMetricsResult{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "amadeus price metrics failed")
	}
	out := providers.PriceMetricsResult{Data: make([]providers.RoutePriceMetrics, 0, len(res.Data))}
	for _, d := range res.Data {
		metrics := make([]providers.QuartileMetric, 0, len(d.PriceMetrics))
		for _, m := range d.PriceMetrics {
			metrics = append(metrics, providers.QuartileMetric{
				Amount:  parseAmount(m.Amount),
				Ranking: m.QuartileRanking,
			})
		}
		out.Data = append(out.Data, providers.RoutePriceMetrics{
			Origin:        d.Origin.IATACode,
			Destination:   d.Destination.IATACode,
			DepartureDate: d.DepartureDate,
			CurrencyCode:  d.CurrencyCode,
			OneWay:        d.OneWay,
			Metrics:       metrics,
		})
	}
	return out, nil
}
