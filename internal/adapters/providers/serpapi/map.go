package serpapi

import (
	"regexp"
	"strconv"
	"strings"

	"farescout/internal/core/offer"
)

// Wire shapes for the google_flights engine response

type searchResponse struct {
	SearchParameters struct {
		Currency string `json:"currency"`
	} `json:"search_parameters"`
	BestFlights  []wireFlight `json:"best_flights"`
	OtherFlights []wireFlight `json:"other_flights"`
}

type wireFlight struct {
	Flights        []wireLeg     `json:"flights"`
	Layovers       []wireLayover `json:"layovers"`
	TotalDuration  int           `json:"total_duration"`
	Price          float64       `json:"price"`
	BookingToken   string        `json:"booking_token"`
	DepartureToken string        `json:"departure_token"`
}

type wireLeg struct {
	DepartureAirport wireAirport `json:"departure_airport"`
	ArrivalAirport   wireAirport `json:"arrival_airport"`
	FlightNumber     string      `json:"flight_number"`
	Airplane         string      `json:"airplane"`
	Duration         int         `json:"duration"`
}

type wireAirport struct {
	ID   string `json:"id"`
	Time string `json:"time"` // "2025-11-10 08:00", local
}

type wireLayover struct {
	Duration int `json:"duration"`
}

var carrierRE = regexp.MustCompile(`^([A-Za-z0-9]{2})`)

func carrierFromFlightNumber(fn string) string {
	m := carrierRE.FindStringSubmatch(strings.TrimSpace(fn))
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

var spacesRE = regexp.MustCompile(`\s+`)

func normalizeFlightNumber(fn string) string {
	return spacesRE.ReplaceAllString(strings.TrimSpace(fn), " ")
}

// toISOUTC turns "2025-11-10 08:00" into "2025-11-10T08:00:00Z"
// the engine reports local times; they are carried as-is with seconds added
func toISOUTC(s string) string {
	if s == "" {
		return ""
	}
	return strings.Replace(s, " ", "T", 1) + ":00Z"
}

// offerID derives a stable id from the first leg and the price so repeat
// queries map the same flight to the same key
func offerID(segs []offer.Segment, amount float64, currency string) string {
	var first offer.Segment
	if len(segs) > 0 {
		first = segs[0]
	}
	key := strings.Join([]string{
		first.FlightNumber,
		first.DepartureTimeUTC,
		strconv.FormatFloat(amount, 'f', -1, 64),
		currency,
	}, "|")
	var hash uint32
	for _, b := range []byte(key) {
		hash = hash*31 + uint32(b)
	}
	return Name + ":" + strconv.FormatUint(uint64(hash), 16)
}

func mapLegs(legs []wireLeg) []offer.Segment {
	out := make([]offer.Segment, 0, len(legs))
	for _, l := range legs {
		dur := l.Duration
		if dur < 0 {
			dur = 0
		}
		out = append(out, offer.Segment{
			Origin:           l.DepartureAirport.ID,
			Destination:      l.ArrivalAirport.ID,
			DepartureTimeUTC: toISOUTC(l.DepartureAirport.Time),
			ArrivalTimeUTC:   toISOUTC(l.ArrivalAirport.Time),
			MarketingCarrier: carrierFromFlightNumber(l.FlightNumber),
			FlightNumber:     normalizeFlightNumber(l.FlightNumber),
			Aircraft:         l.Airplane,
			DurationMinutes:  dur,
		})
	}
	return out
}

// mapResponse flattens best_flights then other_flights into offers,
// skipping entries with no legs
func mapResponse(body searchResponse, defaultCurrency string) []offer.Offer {
	currency := body.SearchParameters.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	if currency == "" {
		currency = "USD"
	}

	flights := make([]wireFlight, 0, len(body.BestFlights)+len(body.OtherFlights))
	flights = append(flights, body.BestFlights...)
	flights = append(flights, body.OtherFlights...)

	offers := make([]offer.Offer, 0, len(flights))
	for _, f := range flights {
		segs := mapLegs(f.Flights)
		if len(segs) == 0 {
			continue
		}
		duration := f.TotalDuration
		if duration <= 0 {
			for _, s := range segs {
				duration += s.DurationMinutes
			}
		}
		layover := 0
		for _, l := range f.Layovers {
			if l.Duration > 0 {
				layover += l.Duration
			}
		}

		id := offerID(segs, f.Price, currency)
		extras := offer.Extras{
			offer.ExtraOutboundLayoverMinutes: layover,
			offer.ExtraDepartureTimeUTC:       segs[0].DepartureTimeUTC,
			offer.ExtraArrivalTimeUTC:         segs[len(segs)-1].ArrivalTimeUTC,
			offer.ExtraID:                     id,
			offer.ExtraProvider:               Name,
		}
		if f.BookingToken != "" {
			extras[offer.ExtraBookingToken] = f.BookingToken
		}
		if f.DepartureToken != "" {
			extras[offer.ExtraDepartureToken] = f.DepartureToken
		}

		offers = append(offers, offer.Offer{
			ID:       id,
			Provider: Name,
			Outbound: offer.Itinerary{
				Segments:        segs,
				DurationMinutes: duration,
				Stops:           len(segs) - 1,
			},
			Price:  offer.Money{Amount: f.Price, Currency: currency},
			Cabin:  offer.CabinEconomy,
			Extras: extras,
		})
	}
	return offers
}
