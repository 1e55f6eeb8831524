// Package serpapi adapts the SerpApi Google Flights engine. It is a
// search-only source: repricing and insights stay with the GDS adapter.
package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"farescout/internal/core/offer"
	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/logger"
)

// Name is the provider identifier
const Name = "serpapi"

const (
	baseURLDefault = "https://serpapi.com"
	defaultTimeout = 20 * time.Second
)

// Options configures the Provider
// DeepSearch defaults on so responses carry booking tokens
type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	DeepSearch *bool
}

// Provider queries the google_flights engine over plain HTTPS
type Provider struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New builds the provider, failing fast on a missing API key
func New(o Options) (*Provider, error) {
	if o.APIKey == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "missing serpapi api key")
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Provider{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("serpapi"),
	}, nil
}

// Name identifies the provider
func (*Provider) Name() string { return Name }

// travel_class values are positional: 1 economy through 4 first
func mapCabin(c offer.CabinClass) string {
	switch c {
	case offer.CabinPremiumEconomy:
		return "2"
	case offer.CabinBusiness:
		return "3"
	case offer.CabinFirst:
		return "4"
	default:
		return "1"
	}
}

// stops is also positional: 1 nonstop, 2 one stop, 3 two stops, 0 any
func mapStops(maxStops int) string {
	switch {
	case maxStops <= 0:
		return "1"
	case maxStops == 1:
		return "2"
	case maxStops == 2:
		return "3"
	default:
		return "0"
	}
}

// Search runs one google_flights query and maps the combined result set
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
	q.Set("engine", "google_flights")
	q.Set("departure_id", params.Origin)
	q.Set("arrival_id", params.Destination)
	q.Set("outbound_date", params.DepartDate)
	if params.ReturnDate != "" {
		q.Set("return_date", params.ReturnDate)
	}
	if params.OneWay || params.ReturnDate == "" {
		q.Set("type", "2")
	} else {
		q.Set("type", "1")
	}
	if params.Cabin != "" {
		q.Set("travel_class", mapCabin(params.Cabin))
	}
	if params.Currency != "" {
		q.Set("currency", params.Currency)
	}
	q.Set("hl", "en")
	q.Set("adults", strconv.Itoa(adults))
	if p.opts.DeepSearch == nil || *p.opts.DeepSearch {
		q.Set("deep_search", "true")
	}
	if params.MaxStops != nil {
		q.Set("stops", mapStops(*params.MaxStops))
	}
	q.Set("api_key", p.opts.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.BaseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "serpapi request build failed")
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "serpapi request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Newf(perr.ErrorCodeUpstream, "serpapi status %d: %s", resp.StatusCode, string(snippet))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "serpapi response decode failed")
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}
	offers := mapResponse(body, currency)
	p.log.Debug().Int("offers", len(offers)).Str("route", params.Origin+"-"+params.Destination).Msg("serpapi search mapped")
	return offers, nil
}
