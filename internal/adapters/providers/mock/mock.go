// Package mock is the deterministic in-memory provider used for offline
// tests and as a golden fixture. No network, no state.
package mock

import (
	"context"

	"farescout/internal/core/offer"
)

// Name is the provider identifier
const Name = "mock"

// Provider returns two fixed offers for any valid search
type Provider struct{}

// New constructs the fixture provider
func New() *Provider { return &Provider{} }

// Name identifies the provider
func (*Provider) Name() string { return Name }

func minutes(h, m int) int { return h*60 + m }

// Search returns the fixture set: one direct BA flight and one one-stop AF
// connection. maxStops=0 filters the set down to direct offers only.
func (*Provider) Search(_ context.Context, params offer.SearchParams) ([]offer.Offer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}
	cabin := params.Cabin
	if cabin == "" {
		cabin = offer.CabinEconomy
	}
	dest := func(def string) string {
		if params.Destination != "" {
			return params.Destination
		}
		return def
	}

	base := []offer.Offer{
		{
			ID:       "mock-1",
			Provider: Name,
			Outbound: offer.Itinerary{
				Segments: []offer.Segment{{
					Origin:           params.Origin,
					Destination:      dest("LHR"),
					DepartureTimeUTC: params.DepartDate + "T08:00:00.000Z",
					ArrivalTimeUTC:   params.DepartDate + "T16:30:00.000Z",
					MarketingCarrier: "BA",
					FlightNumber:     "BA280",
					DurationMinutes:  minutes(8, 30),
				}},
				DurationMinutes: minutes(8, 30),
				Stops:           0,
			},
			Price:      offer.Money{Amount: 680, Currency: currency},
			Cabin:      cabin,
			FareBrand:  "Standard",
			Baggage:    &offer.BaggageAllowance{CarryOn: "1 x 8kg", Checked: "1 x 23kg"},
			BookingURL: "https://example.com/ba280",
		},
		{
			ID:       "mock-2",
			Provider: Name,
			Outbound: offer.Itinerary{
				Segments: []offer.Segment{
					{
						Origin:           params.Origin,
						Destination:      dest("CDG"),
						DepartureTimeUTC: params.DepartDate + "T07:30:00.000Z",
						ArrivalTimeUTC:   params.DepartDate + "T13:15:00.000Z",
						MarketingCarrier: "AF",
						FlightNumber:     "AF65",
						DurationMinutes:  minutes(10, 45),
					},
					{
						Origin:           dest("CDG"),
						Destination:      dest("FCO"),
						DepartureTimeUTC: params.DepartDate + "T15:00:00.000Z",
						ArrivalTimeUTC:   params.DepartDate + "T16:55:00.000Z",
						MarketingCarrier: "AF",
						FlightNumber:     "AF1300",
						DurationMinutes:  minutes(1, 55),
					},
				},
				DurationMinutes: minutes(12, 40),
				Stops:           1,
			},
			Price:      offer.Money{Amount: 520, Currency: currency},
			Cabin:      cabin,
			FareBrand:  "Light",
			Baggage:    &offer.BaggageAllowance{CarryOn: "1 x 8kg"},
			BookingURL: "https://example.com/af65",
		},
	}

	if params.MaxStops != nil && *params.MaxStops == 0 {
		direct := base[:0:0]
		for _, o := range base {
			if o.Outbound.Stops == 0 {
				direct = append(direct, o)
			}
		}
		return direct, nil
	}
	return base, nil
}
