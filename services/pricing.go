// services/pricing.go
package services

import (
	"math"
	"math/rand"
	"time"
)

// Pricing constants for the simulated market model. Prices are in AUD.
const (
	baseFare = 50.0
	kmRate   = 0.15

	// Jitter added to distance-based prices: uniform integer in [-30, 100).
	jitterMin = -30
	jitterMax = 100

	// Fallback price range for routes whose distance cannot be resolved:
	// uniform integer in [100, 500).
	fallbackPriceMin = 100
	fallbackPriceMax = 500

	// ReferenceAvgPrice is the industry-average threshold the pricing
	// insight compares against.
	ReferenceAvgPrice = 350.0
)

// Demand multipliers by time of day. Buckets are half-open on the upper
// bound: hour 10 is midday, hour 16 evening, hour 20 night.
const (
	morningPeakFactor = 1.4
	eveningPeakFactor = 1.6
	middayFactor      = 1.2
	offPeakFactor     = 0.8
)

// PricingModel generates simulated ticket prices. The random source is
// injected so tests can seed it; base prices are intentionally stochastic
// and re-evaluating the same distance yields a different price each call.
type PricingModel struct {
	rng *rand.Rand
}

// NewPricingModel builds a model from the given source. A nil source seeds
// from the wall clock.
func NewPricingModel(src rand.Source) *PricingModel {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &PricingModel{rng: rand.New(src)}
}

// BasePrice derives a ticket price from route distance. A nil distance
// (unresolvable route) falls back to a random price in the fallback range.
func (p *PricingModel) BasePrice(distanceKM *float64) float64 {
	if distanceKM == nil {
		return float64(fallbackPriceMin + p.rng.Intn(fallbackPriceMax-fallbackPriceMin))
	}
	jitter := float64(jitterMin + p.rng.Intn(jitterMax-jitterMin))
	return round2(baseFare + *distanceKM*kmRate + jitter)
}

// DemandFactor returns the time-of-day multiplier for an hour in [0, 23].
func DemandFactor(hour int) float64 {
	switch {
	case hour >= 6 && hour < 10:
		return morningPeakFactor
	case hour >= 16 && hour < 20:
		return eveningPeakFactor
	case hour >= 10 && hour < 16:
		return middayFactor
	default:
		return offPeakFactor
	}
}

// FinalPrice is the base price scaled by the hour's demand factor.
func (p *PricingModel) FinalPrice(distanceKM *float64, hour int) float64 {
	return p.BasePrice(distanceKM) * DemandFactor(hour)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
