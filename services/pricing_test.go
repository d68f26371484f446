// services/pricing_test.go
package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemandFactor(t *testing.T) {
	tests := []struct {
		hour   int
		factor float64
	}{
		{0, 0.8},
		{5, 0.8},
		{6, 1.4},  // morning peak starts
		{9, 1.4},  // last morning-peak hour
		{10, 1.2}, // boundary belongs to midday
		{15, 1.2},
		{16, 1.6}, // boundary belongs to evening peak
		{19, 1.6},
		{20, 0.8}, // boundary belongs to night
		{23, 0.8},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.factor, DemandFactor(tc.hour), "hour %d", tc.hour)
	}
}

func TestBasePriceWithDistance(t *testing.T) {
	p := NewPricingModel(rand.NewSource(1))
	d := 706.0

	for i := 0; i < 200; i++ {
		price := p.BasePrice(&d)
		// 50 + d*0.15 + U, U uniform integer in [-30, 100)
		assert.GreaterOrEqual(t, price, 50+d*0.15-30)
		assert.Less(t, price, 50+d*0.15+100)
	}
}

func TestBasePriceFallbackRange(t *testing.T) {
	p := NewPricingModel(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		price := p.BasePrice(nil)
		assert.GreaterOrEqual(t, price, 100.0)
		assert.Less(t, price, 500.0)
		assert.Equal(t, float64(int(price)), price, "fallback price is a whole number")
	}
}

func TestBasePriceIsStochastic(t *testing.T) {
	p := NewPricingModel(rand.NewSource(42))
	d := 500.0

	seen := map[float64]bool{}
	for i := 0; i < 20; i++ {
		seen[p.BasePrice(&d)] = true
	}
	assert.Greater(t, len(seen), 1, "repeated evaluation should vary")
}

func TestSeededModelsAgree(t *testing.T) {
	a := NewPricingModel(rand.NewSource(99))
	b := NewPricingModel(rand.NewSource(99))
	d := 1234.56

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.BasePrice(&d), b.BasePrice(&d))
	}
}

func TestFinalPriceAppliesDemandFactor(t *testing.T) {
	d := 706.0
	for _, hour := range []int{0, 6, 10, 16, 20} {
		p := NewPricingModel(rand.NewSource(3))
		base := NewPricingModel(rand.NewSource(3))
		assert.Equal(t, base.BasePrice(&d)*DemandFactor(hour), p.FinalPrice(&d, hour), "hour %d", hour)
	}
}
