// Package scoring computes the 0..100 desirability score for an offer.
// Deterministic and pure; the rating-enriched variant takes its ratings as
// plain inputs so all I/O stays with the caller.
package scoring

import (
	"math"

	"farescout/internal/core/offer"
)

// Weights holds the relative importance of each factor
// they are re-normalized to sum to 1 before use
type Weights struct {
	PriceVsMedian   float64 `json:"priceVsMedian"`
	DurationPenalty float64 `json:"durationPenalty"`
	StopPenalty     float64 `json:"stopPenalty"`
	LayoverQuality  float64 `json:"layoverQuality"`
	BaggageValue    float64 `json:"baggageValue"`
	Confidence      float64 `json:"confidence"`
}

// DefaultWeights is the shipped factor weighting
var DefaultWeights = Weights{
	PriceVsMedian:   0.45,
	DurationPenalty: 0.15,
	StopPenalty:     0.15,
	LayoverQuality:  0.10,
	BaggageValue:    0.05,
	Confidence:      0.10,
}

// Normalize scales weights to sum to 1
// a zero or negative sum silently falls back to the defaults
func (w Weights) Normalize() Weights {
	sum := w.PriceVsMedian + w.DurationPenalty + w.StopPenalty + w.LayoverQuality + w.BaggageValue + w.Confidence
	if sum <= 0 {
		return DefaultWeights
	}
	return Weights{
		PriceVsMedian:   w.PriceVsMedian / sum,
		DurationPenalty: w.DurationPenalty / sum,
		StopPenalty:     w.StopPenalty / sum,
		LayoverQuality:  w.LayoverQuality / sum,
		BaggageValue:    w.BaggageValue / sum,
		Confidence:      w.Confidence / sum,
	}
}

func clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// PriceVsMedian compares the offer price to the baseline median
// 50 is neutral: no baseline, or priced exactly at the median
func PriceVsMedian(price float64, baseline *offer.BaselineStats) float64 {
	if baseline == nil {
		return 50
	}
	diff := baseline.MedianPrice - price
	pct := diff / math.Max(1, baseline.MedianPrice)
	return clamp(50+pct*100, 0, 100)
}

// DurationPenalty loses roughly one point per 6 minutes beyond a 6h ideal
func DurationPenalty(totalMinutes int) float64 {
	const ideal = 360
	over := math.Max(0, float64(totalMinutes-ideal))
	penalty := math.Min(100, over/6)
	return 100 - penalty
}

// StopPenalty rewards direct flights
func StopPenalty(stops int) float64 {
	switch {
	case stops <= 0:
		return 100
	case stops == 1:
		return 80
	default:
		return 60
	}
}

// LayoverQuality is a coarser companion to StopPenalty
func LayoverQuality(stops int) float64 {
	switch {
	case stops <= 0:
		return 100
	case stops == 1:
		return 85
	default:
		return 70
	}
}

// BaggageValue rewards an included checked bag
func BaggageValue(hasChecked bool) float64 {
	if hasChecked {
		return 100
	}
	return 80
}

// Confidence grows with baseline sample size, 0.5 when no baseline exists
func Confidence(baseline *offer.BaselineStats) float64 {
	if baseline == nil {
		return 0.5
	}
	sizeFactor := math.Min(1, float64(baseline.SampleSize)/50)
	return clamp(0.3+0.7*sizeFactor, 0, 1)
}

// Score turns an offer and optional baseline into a ScoredOffer
// nil weights means DefaultWeights; the input offer is not modified
func Score(o offer.Offer, baseline *offer.BaselineStats, w *Weights) offer.ScoredOffer {
	weights := DefaultWeights
	if w != nil {
		weights = *w
	}
	weights = weights.Normalize()

	breakdown := offer.ScoreBreakdown{
		PriceVsMedian:   PriceVsMedian(o.Price.Amount, baseline),
		DurationPenalty: DurationPenalty(o.TotalDurationMinutes()),
		StopPenalty:     StopPenalty(o.TotalStops()),
		LayoverQuality:  LayoverQuality(o.TotalStops()),
		BaggageValue:    BaggageValue(o.HasCheckedBag()),
		Confidence:      Confidence(baseline),
		Notes:           []string{},
	}

	// confidence lives on 0..1 so it is scaled to the 0..100 range here
	total := breakdown.PriceVsMedian*weights.PriceVsMedian +
		breakdown.DurationPenalty*weights.DurationPenalty +
		breakdown.StopPenalty*weights.StopPenalty +
		breakdown.LayoverQuality*weights.LayoverQuality +
		breakdown.BaggageValue*weights.BaggageValue +
		breakdown.Confidence*100*weights.Confidence

	return offer.ScoredOffer{
		Offer:     o,
		Score:     int(clamp(math.Round(total), 0, 100)),
		Breakdown: breakdown,
	}
}

// QualityWeights extends Weights with the two rating slots used by the
// enriched scorer
type QualityWeights struct {
	Weights
	AirlineQuality float64 `json:"airlineQuality"`
	AirportQuality float64 `json:"airportQuality"`
}

// DefaultQualityWeights reserves a share for the two rating factors
var DefaultQualityWeights = QualityWeights{
	Weights: Weights{
		PriceVsMedian:   0.35,
		DurationPenalty: 0.12,
		StopPenalty:     0.13,
		LayoverQuality:  0.08,
		BaggageValue:    0.05,
		Confidence:      0.07,
	},
	AirlineQuality: 0.12,
	AirportQuality: 0.08,
}

// Normalize scales all eight weights to sum to 1, falling back to the
// quality defaults on a non-positive sum
func (w QualityWeights) Normalize() QualityWeights {
	sum := w.PriceVsMedian + w.DurationPenalty + w.StopPenalty + w.LayoverQuality +
		w.BaggageValue + w.Confidence + w.AirlineQuality + w.AirportQuality
	if sum <= 0 {
		return DefaultQualityWeights
	}
	return QualityWeights{
		Weights: Weights{
			PriceVsMedian:   w.PriceVsMedian / sum,
			DurationPenalty: w.DurationPenalty / sum,
			StopPenalty:     w.StopPenalty / sum,
			LayoverQuality:  w.LayoverQuality / sum,
			BaggageValue:    w.BaggageValue / sum,
			Confidence:      w.Confidence / sum,
		},
		AirlineQuality: w.AirlineQuality / sum,
		AirportQuality: w.AirportQuality / sum,
	}
}

// ScoreWithQuality blends externally sourced ratings into the weighted sum.
// airlineRating and the two airport ratings are on the 1..5 scale; callers
// pass 3 (neutral) when a rating is unknown.
func ScoreWithQuality(
	o offer.Offer,
	baseline *offer.BaselineStats,
	w *QualityWeights,
	airlineRating, originRating, destRating float64,
) offer.ScoredOffer {
	weights := DefaultQualityWeights
	if w != nil {
		weights = *w
	}
	weights = weights.Normalize()

	breakdown := offer.ScoreBreakdown{
		PriceVsMedian:   PriceVsMedian(o.Price.Amount, baseline),
		DurationPenalty: DurationPenalty(o.TotalDurationMinutes()),
		StopPenalty:     StopPenalty(o.TotalStops()),
		LayoverQuality:  LayoverQuality(o.TotalStops()),
		BaggageValue:    BaggageValue(o.HasCheckedBag()),
		Confidence:      Confidence(baseline),
		AirlineQuality:  clamp(airlineRating, 1, 5) * 20,
		AirportQuality:  clamp(math.Min(originRating, destRating), 1, 5) * 20,
		Notes:           []string{},
	}

	total := breakdown.PriceVsMedian*weights.PriceVsMedian +
		breakdown.DurationPenalty*weights.DurationPenalty +
		breakdown.StopPenalty*weights.StopPenalty +
		breakdown.LayoverQuality*weights.LayoverQuality +
		breakdown.BaggageValue*weights.BaggageValue +
		breakdown.Confidence*100*weights.Confidence +
		breakdown.AirlineQuality*weights.AirlineQuality +
		breakdown.AirportQuality*weights.AirportQuality

	return offer.ScoredOffer{
		Offer:     o,
		Score:     int(clamp(math.Round(total), 0, 100)),
		Breakdown: breakdown,
	}
}
