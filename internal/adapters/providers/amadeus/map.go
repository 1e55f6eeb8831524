package amadeus

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"farescout/internal/core/offer"
)

// isoDurationRE matches the subset of ISO-8601 durations the API emits,
// e.g. PT8H30M, PT45M, P1DT2H
var isoDurationRE = regexp.MustCompile(`P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?`)

// minutesFromISODuration parses PnDTnHnM into total minutes
// returns 0, false on empty or unparsable input
func minutesFromISODuration(iso string) (int, bool) {
	if iso == "" {
		return 0, false
	}
	m := isoDurationRE.FindStringSubmatch(iso)
	if m == nil {
		return 0, false
	}
	days, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	hours, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	mins, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return days*24*60 + hours*60 + mins, true
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func mapSegments(segs []wireSegment) []offer.Segment {
	out := make([]offer.Segment, 0, len(segs))
	for _, s := range segs {
		dur, _ := minutesFromISODuration(s.Duration)
		out = append(out, offer.Segment{
			Origin:            s.Departure.IATACode,
			Destination:       s.Arrival.IATACode,
			DepartureTimeUTC:  s.Departure.At,
			ArrivalTimeUTC:    s.Arrival.At,
			DepartureTerminal: s.Departure.Terminal,
			ArrivalTerminal:   s.Arrival.Terminal,
			MarketingCarrier:  s.CarrierCode,
			OperatingCarrier:  s.Operating.CarrierCode,
			FlightNumber:      s.CarrierCode + s.Number,
			Aircraft:          s.Aircraft.Code,
			DurationMinutes:   dur,
		})
	}
	return out
}

func itineraryDuration(it wireItinerary, segs []offer.Segment) int {
	if d, ok := minutesFromISODuration(it.Duration); ok && d > 0 {
		return d
	}
	total := 0
	for _, s := range segs {
		total += s.DurationMinutes
	}
	return total
}

// parseFlightTime accepts RFC3339 and the zone-less local form the API emits
func parseFlightTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// calcLayoverMinutes sums the ground time between consecutive segments
// returns 0 for direct itineraries or unparsable timestamps
func calcLayoverMinutes(segs []offer.Segment) int {
	if len(segs) < 2 {
		return 0
	}
	total := 0
	for i := 0; i < len(segs)-1; i++ {
		arr, errA := parseFlightTime(segs[i].ArrivalTimeUTC)
		dep, errB := parseFlightTime(segs[i+1].DepartureTimeUTC)
		if errA == nil && errB == nil && dep.After(arr) {
			total += int(dep.Sub(arr) / time.Minute)
		}
	}
	return total
}

func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// fareMeta is the fare metadata distilled from travelerPricings
type fareMeta struct {
	fareBrand      string
	fareBrandLabel string
	fareClass      string
	mealIncluded   bool
	mealChargeable bool
	refundable     *bool
	changeable     *bool
}

// aggregateFareMeta walks every fare detail and keeps the first branded fare
// and class seen. Amenity flags fold across segments: a free MEAL amenity
// marks the meal included, a chargeable one marks it payable, and the first
// REFUNDABLE/CHANGEABLE amenity decides those flags by whether it is free.
func aggregateFareMeta(o wireOffer) fareMeta {
	var meta fareMeta
	for _, tp := range o.TravelerPricings {
		for _, fd := range tp.FareDetailsBySegment {
			if meta.fareBrand == "" && fd.BrandedFare != "" {
				meta.fareBrand = fd.BrandedFare
			}
			if meta.fareBrandLabel == "" && fd.BrandedFareLabel != "" {
				meta.fareBrandLabel = fd.BrandedFareLabel
			}
			if meta.fareClass == "" && fd.Class != "" {
				meta.fareClass = fd.Class
			}
			for _, am := range fd.Amenities {
				desc := strings.ToUpper(am.Description)
				if strings.Contains(desc, "MEAL") {
					if am.IsChargeable {
						meta.mealChargeable = true
					} else {
						meta.mealIncluded = true
					}
				}
				if strings.Contains(desc, "REFUNDABLE") && meta.refundable == nil {
					v := !am.IsChargeable
					meta.refundable = &v
				}
				if strings.Contains(desc, "CHANGEABLE") && meta.changeable == nil {
					v := !am.IsChargeable
					meta.changeable = &v
				}
			}
		}
	}
	return meta
}

// aggregateBaggage folds per-segment allowances into one "1 x Nkg" pair,
// keeping the heaviest weight seen for each bag kind
func aggregateBaggage(o wireOffer) *offer.BaggageAllowance {
	var checked, cabin float64
	for _, tp := range o.TravelerPricings {
		for _, fd := range tp.FareDetailsBySegment {
			if fd.IncludedCheckedBags.Weight > checked {
				checked = fd.IncludedCheckedBags.Weight
			}
			if fd.IncludedCabinBags.Weight > cabin {
				cabin = fd.IncludedCabinBags.Weight
			}
		}
	}
	if checked == 0 && cabin == 0 {
		return nil
	}
	bag := &offer.BaggageAllowance{}
	if cabin > 0 {
		bag.CarryOn = "1 x " + strconv.FormatFloat(cabin, 'f', -1, 64) + "kg"
	}
	if checked > 0 {
		bag.Checked = "1 x " + strconv.FormatFloat(checked, 'f', -1, 64) + "kg"
	}
	return bag
}

// mapOffer normalizes one wire offer. The grand total wins over the plain
// total, taxes are derived from the base fare when present, and layover and
// endpoint times are precomputed into extras for the scorer and dedupe pass.
func mapOffer(o wireOffer, defaultCurrency string) offer.Offer {
	var outSegs, inSegs []offer.Segment
	var outDur, inDur int
	if len(o.Itineraries) > 0 {
		outSegs = mapSegments(o.Itineraries[0].Segments)
		outDur = itineraryDuration(o.Itineraries[0], outSegs)
	}
	if len(o.Itineraries) > 1 {
		inSegs = mapSegments(o.Itineraries[1].Segments)
		inDur = itineraryDuration(o.Itineraries[1], inSegs)
	}

	amount := parseAmount(o.Price.GrandTotal)
	if amount == 0 {
		amount = parseAmount(o.Price.Total)
	}
	currency := o.Price.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	meta := aggregateFareMeta(o)

	extras := offer.Extras{
		offer.ExtraIncludedCheckedOnly: o.PricingOptions.IncludedCheckedBagsOnly,
	}
	if o.NumberOfBookableSeats > 0 {
		extras[offer.ExtraSeatsRemaining] = o.NumberOfBookableSeats
	}
	if len(o.ValidatingAirlineCodes) > 0 {
		extras[offer.ExtraValidatingAirlines] = o.ValidatingAirlineCodes
	}
	if base := parseAmount(o.Price.Base); base > 0 {
		extras[offer.ExtraPriceBase] = base
		taxes := amount - base
		if taxes < 0 {
			taxes = 0
		}
		extras[offer.ExtraTaxes] = taxes
	}
	if lay := calcLayoverMinutes(outSegs); lay > 0 {
		extras[offer.ExtraOutboundLayoverMinutes] = lay
	}
	if lay := calcLayoverMinutes(inSegs); lay > 0 {
		extras[offer.ExtraInboundLayoverMinutes] = lay
	}
	if len(outSegs) > 0 {
		extras[offer.ExtraDepartureTimeUTC] = outSegs[0].DepartureTimeUTC
		extras[offer.ExtraArrivalTimeUTC] = outSegs[len(outSegs)-1].ArrivalTimeUTC
	}
	if meta.fareBrand != "" {
		extras[offer.ExtraFareBrand] = meta.fareBrand
	}
	if meta.fareBrandLabel != "" {
		extras[offer.ExtraFareBrandLabel] = meta.fareBrandLabel
	}
	if meta.fareClass != "" {
		extras[offer.ExtraFareClass] = meta.fareClass
	}
	if meta.mealIncluded {
		extras[offer.ExtraMealIncluded] = true
	}
	if meta.mealChargeable {
		extras[offer.ExtraMealChargeable] = true
	}
	if meta.refundable != nil {
		extras[offer.ExtraRefundable] = *meta.refundable
	}
	if meta.changeable != nil {
		extras[offer.ExtraChangeable] = *meta.changeable
	}

	mapped := offer.Offer{
		ID:       o.ID,
		Provider: Name,
		Outbound: offer.Itinerary{
			Segments:        outSegs,
			DurationMinutes: outDur,
			Stops:           maxInt(0, len(outSegs)-1),
		},
		Price:   offer.Money{Amount: amount, Currency: currency},
		Cabin:   offer.CabinEconomy,
		Baggage: aggregateBaggage(o),
		Extras:  extras,
	}
	if len(inSegs) > 0 {
		mapped.Inbound = &offer.Itinerary{
			Segments:        inSegs,
			DurationMinutes: inDur,
			Stops:           maxInt(0, len(inSegs)-1),
		}
	}
	return mapped
}

func mapOffers(raw []wireOffer, defaultCurrency string) []offer.Offer {
	out := make([]offer.Offer, 0, len(raw))
	for _, o := range raw {
		out = append(out, mapOffer(o, defaultCurrency))
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
