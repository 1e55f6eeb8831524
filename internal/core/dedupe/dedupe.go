// Package dedupe collapses offers that represent the same bookable product.
// Pure functions, no side effects.
package dedupe

import (
	"strconv"
	"strings"

	"farescout/internal/core/offer"
)

// Signature derives the dedup key for an offer: ordered concatenation of the
// first outbound segment's flight number and departure, the first inbound
// departure (empty when one-way), price amount, fare brand, fare class, a
// single-character refundability flag and the cabin class.
func Signature(o offer.Offer) string {
	var out offer.Segment
	if len(o.Outbound.Segments) > 0 {
		out = o.Outbound.Segments[0]
	}
	inboundDep := ""
	if o.Inbound != nil && len(o.Inbound.Segments) > 0 {
		inboundDep = o.Inbound.Segments[0].DepartureTimeUTC
	}
	refundable := ""
	if o.Extras.Bool(offer.ExtraRefundable) {
		refundable = "R"
	}
	parts := []string{
		out.FlightNumber,
		out.DepartureTimeUTC,
		inboundDep,
		strconv.FormatFloat(o.Price.Amount, 'f', -1, 64),
		o.Extras.String(offer.ExtraFareBrand),
		o.Extras.String(offer.ExtraFareClass),
		refundable,
		string(o.Cabin),
	}
	return strings.Join(parts, "|")
}

// Dedupe keeps the first-encountered offer per signature and preserves the
// relative order of first occurrences. O(n) with a seen-signature map.
func Dedupe(offers []offer.Offer) []offer.Offer {
	seen := make(map[string]struct{}, len(offers))
	out := make([]offer.Offer, 0, len(offers))
	for _, o := range offers {
		sig := Signature(o)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, o)
	}
	return out
}
