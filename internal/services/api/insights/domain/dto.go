// Package domain holds DTOs and query parsing for insights endpoints
package domain

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"farescout/internal/adapters/providers"
	perr "farescout/internal/platform/errors"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	CheapestDates(ctx context.Context, q providers.CheapestDatesQuery) (providers.CheapestDatesResult, error)
	Inspiration(ctx context.Context, q providers.InspirationQuery) (providers.InspirationResult, error)
	PriceMetrics(ctx context.Context, q providers.PriceMetricsQuery) (providers.PriceMetricsResult, error)
}

func iataParam(q map[string][]string, name string, required bool) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(first(q, name)))
	if v == "" {
		if required {
			return "", perr.Newf(perr.ErrorCodeValidation, "%s is required", name)
		}
		return "", nil
	}
	if len(v) != 3 {
		return "", perr.Newf(perr.ErrorCodeValidation, "%s must be a 3-letter IATA code", name)
	}
	for _, c := range v {
		if c < 'A' || c > 'Z' {
			return "", perr.Newf(perr.ErrorCodeValidation, "%s must be a 3-letter IATA code", name)
		}
	}
	return v, nil
}

func boolParam(q map[string][]string, name string) (*bool, error) {
	raw := first(q, name)
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, perr.Newf(perr.ErrorCodeValidation, "%s must be a boolean", name)
}

func first(q map[string][]string, name string) string {
	if vs, ok := q[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// DatesQueryFromRequest parses a cheapest-dates query string
func DatesQueryFromRequest(r *http.Request) (providers.CheapestDatesQuery, error) {
	q := r.URL.Query()
	var out providers.CheapestDatesQuery
	var err error

	if out.Origin, err = iataParam(q, "origin", true); err != nil {
		return out, err
	}
	if out.Destination, err = iataParam(q, "destination", true); err != nil {
		return out, err
	}
	out.DepartureDate = strings.TrimSpace(first(q, "departureDate"))
	if out.DepartureDate == "" {
		return out, perr.Newf(perr.ErrorCodeValidation, "departureDate is required")
	}
	out.ReturnDate = strings.TrimSpace(first(q, "returnDate"))
	if out.OneWay, err = boolParam(q, "oneWay"); err != nil {
		return out, err
	}
	out.Duration = strings.TrimSpace(first(q, "duration"))
	if out.NonStop, err = boolParam(q, "nonStop"); err != nil {
		return out, err
	}
	out.ViewBy = strings.TrimSpace(first(q, "viewBy"))
	return out, nil
}

// InspirationQueryFromRequest parses an inspiration query string
func InspirationQueryFromRequest(r *http.Request) (providers.InspirationQuery, error) {
	q := r.URL.Query()
	var out providers.InspirationQuery
	var err error

	if out.Origin, err = iataParam(q, "origin", true); err != nil {
		return out, err
	}
	out.DepartureDate = strings.TrimSpace(first(q, "departureDate"))
	if out.OneWay, err = boolParam(q, "oneWay"); err != nil {
		return out, err
	}
	out.Duration = strings.TrimSpace(first(q, "duration"))
	if out.NonStop, err = boolParam(q, "nonStop"); err != nil {
		return out, err
	}
	if raw := first(q, "maxPrice"); raw != "" {
		f, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil || f < 0 {
			return out, perr.Newf(perr.ErrorCodeValidation, "maxPrice must be a non-negative number")
		}
		out.MaxPrice = &f
	}
	out.ViewBy = strings.TrimSpace(first(q, "viewBy"))
	return out, nil
}

// MetricsQueryFromRequest parses a price-metrics query string
func MetricsQueryFromRequest(r *http.Request) (providers.PriceMetricsQuery, error) {
	q := r.URL.Query()
	var out providers.PriceMetricsQuery
	var err error

	if out.OriginIATACode, err = iataParam(q, "originIataCode", true); err != nil {
		return out, err
	}
	if out.DestinationIATACode, err = iataParam(q, "destinationIataCode", true); err != nil {
		return out, err
	}
	out.DepartureDate = strings.TrimSpace(first(q, "departureDate"))
	if out.DepartureDate == "" {
		return out, perr.Newf(perr.ErrorCodeValidation, "departureDate is required")
	}
	if cur := strings.ToUpper(strings.TrimSpace(first(q, "currencyCode"))); cur != "" {
		if len(cur) != 3 {
			return out, perr.Newf(perr.ErrorCodeValidation, "currencyCode must be a 3-letter code")
		}
		out.CurrencyCode = cur
	}
	ow, err := boolParam(q, "oneWay")
	if err != nil {
		return out, err
	}
	if ow != nil {
		out.OneWay = *ow
	}
	return out, nil
}
