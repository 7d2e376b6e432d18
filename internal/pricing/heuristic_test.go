package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniquenessModifier(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"abc", 0.94},
		{"Apple iPhone 15 (128 GB) - Black", 0.96},
		{"Sony WH-1000XM5", 0.90},
		{"", 0.90},
		// hash wraps negative
		{"Widget", 0.94},
		// surrogate pair counts as two code units
		{"₹ Deal 🎧", 0.94},
	}

	for _, tt := range tests {
		got := UniquenessModifier(tt.name)
		assert.InDelta(t, tt.want, got, 1e-9, tt.name)
		assert.Equal(t, got, UniquenessModifier(tt.name), "deterministic for %q", tt.name)
	}
}

func TestUniquenessModifierRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		b := make([]rune, r.Intn(40))
		for j := range b {
			b[j] = rune(32 + r.Intn(0x2FFF))
		}
		m := UniquenessModifier(string(b))
		assert.GreaterOrEqual(t, m, 0.90-1e-9)
		assert.LessOrEqual(t, m, 0.99+1e-9)
	}
}

func TestTierMultiplierBoundaries(t *testing.T) {
	assert.Equal(t, 0.92, TierMultiplier(0.31))
	assert.Equal(t, 0.95, TierMultiplier(0.30))
	assert.Equal(t, 0.95, TierMultiplier(0.16))
	assert.Equal(t, 0.98, TierMultiplier(0.15))
	assert.Equal(t, 0.98, TierMultiplier(0))
}

func TestRecommendNoValidPrices(t *testing.T) {
	_, ok := Recommend(nil, "x")
	assert.False(t, ok)

	_, ok = Recommend([]*float64{nil, nil}, "x")
	assert.False(t, ok)

	_, ok = Recommend([]*float64{ptr(math.NaN())}, "x")
	assert.False(t, ok)
}

func TestRecommendSinglePrice(t *testing.T) {
	rec, ok := Recommend([]*float64{ptr(1000), nil}, "abc")
	require.True(t, ok)

	assert.InDelta(t, 1000*0.95*0.94, rec.Price, 1e-9)
	assert.Equal(t, 1000.0, rec.Intelligence.MaxCompetitorPrice)
	assert.Equal(t, 1000.0, rec.Intelligence.MinCompetitorPrice)
	assert.Equal(t, 0.0, rec.Intelligence.CompetitivenessScore)
	assert.InDelta(t, 0.94, rec.Intelligence.UniqueModifier, 1e-9)
	assert.Equal(t, rec.Price, rec.Intelligence.RecommendedPriceStrategy)
}

func TestRecommendAggressiveTier(t *testing.T) {
	// mean 150, score 0.667, modifier 0.90
	rec, ok := Recommend([]*float64{ptr(100), ptr(200)}, "Sony WH-1000XM5")
	require.True(t, ok)

	assert.InDelta(t, 150*0.92*0.90, rec.Price, 1e-9)
	assert.InDelta(t, 150.0, rec.Intelligence.AverageCompetitorPrice, 1e-9)
	assert.InDelta(t, 100.0/150.0, rec.Intelligence.CompetitivenessScore, 1e-9)
}

func TestRecommendProfitabilityFloor(t *testing.T) {
	// premium tier gives 92.61, below 1.2 * 100
	rec, ok := Recommend([]*float64{ptr(100), ptr(110)}, "Sony WH-1000XM5")
	require.True(t, ok)

	assert.InDelta(t, 120.0, rec.Price, 1e-9)
}

func TestRecommendAllZeroPrices(t *testing.T) {
	rec, ok := Recommend([]*float64{ptr(0), ptr(0)}, "free sample")
	require.True(t, ok)

	assert.Equal(t, 0.0, rec.Price)
	assert.False(t, math.IsNaN(rec.Intelligence.CompetitivenessScore))
}

func TestRecommendNeverBelowFloor(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		n := 2 + r.Intn(8)
		prices := make([]*float64, 0, n)
		lowest := math.Inf(1)
		for j := 0; j < n; j++ {
			v := 1 + r.Float64()*5000
			lowest = math.Min(lowest, v)
			prices = append(prices, ptr(v))
		}

		rec, ok := Recommend(prices, "product")
		require.True(t, ok)
		assert.GreaterOrEqual(t, rec.Price, lowest*1.20)
	}
}
