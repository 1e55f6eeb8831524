// Package domain holds DTOs for search http and service contracts
package domain

import (
	"net/http"
	"strconv"
	"strings"

	"farescout/internal/adapters/providers"
	"farescout/internal/core/offer"
	perr "farescout/internal/platform/errors"
)

// AdvancedInput is the advanced search body plus the score switch
type AdvancedInput struct {
	providers.AdvancedSearchRequest
	IncludeScore bool `json:"includeScore,omitempty"`
}

// sortKeys are the accepted sortBy values
var sortKeys = map[string]bool{"price": true, "score": true, "duration": true}

// QueryFromRequest parses the GET /search query string into SearchParams
// every malformed field fails with a Validation error naming the field
func QueryFromRequest(r *http.Request) (offer.SearchParams, error) {
	q := r.URL.Query()

	params := offer.SearchParams{
		Origin:      strings.ToUpper(strings.TrimSpace(q.Get("origin"))),
		Destination: strings.ToUpper(strings.TrimSpace(q.Get("destination"))),
		DepartDate:  strings.TrimSpace(q.Get("departDate")),
		ReturnDate:  strings.TrimSpace(q.Get("returnDate")),
		Currency:    strings.ToUpper(strings.TrimSpace(q.Get("currency"))),
		SortBy:      strings.TrimSpace(q.Get("sortBy")),
	}

	if err := params.Validate(); err != nil {
		return offer.SearchParams{}, err
	}
	if len(params.Origin) != 3 {
		return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "origin must be a 3-letter IATA code")
	}
	if params.Destination != "" && len(params.Destination) != 3 {
		return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "destination must be a 3-letter IATA code")
	}
	if params.Currency != "" && len(params.Currency) != 3 {
		return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "currency must be a 3-letter code")
	}
	if params.SortBy != "" && !sortKeys[params.SortBy] {
		return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "sortBy must be price, score or duration")
	}

	adults := 1
	if v := q.Get("adults"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "adults must be a positive integer")
		}
		adults = n
	}
	params.Passengers = offer.PassengerCounts{Adults: adults}
	if v := q.Get("children"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "children must be a non-negative integer")
		}
		params.Passengers.Children = n
	}
	if v := q.Get("infants"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "infants must be a non-negative integer")
		}
		params.Passengers.Infants = n
	}

	if v := q.Get("cabin"); v != "" {
		switch offer.CabinClass(v) {
		case offer.CabinEconomy, offer.CabinPremiumEconomy, offer.CabinBusiness, offer.CabinFirst:
			params.Cabin = offer.CabinClass(v)
		default:
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "cabin must be economy, premium_economy, business or first")
		}
	}

	if v := q.Get("oneWay"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "oneWay must be a boolean")
		}
		params.OneWay = b
	}
	if v := q.Get("includeScore"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "includeScore must be a boolean")
		}
		params.IncludeScore = b
	}
	if v := q.Get("maxStops"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return offer.SearchParams{}, perr.Newf(perr.ErrorCodeValidation, "maxStops must be a non-negative integer")
		}
		params.MaxStops = &n
	}

	return params, nil
}
