package pricing

import (
	"math"
	"unicode/utf16"
)

const (
	aggressiveThreshold = 0.30
	balancedThreshold   = 0.15

	aggressiveMultiplier  = 0.92
	balancedMultiplier    = 0.95
	premiumMultiplier     = 0.98
	singlePriceMultiplier = 0.95

	// never suggest below 120% of the cheapest competitor
	minimumProfitMargin = 1.20

	modifierBase = 0.90
)

// Recommendation is the heuristic's output for one product.
type Recommendation struct {
	Price        float64
	Intelligence PriceIntelligence
}

// UniquenessModifier maps a product name onto [0.90, 0.99] using the
// 31-multiplier string hash over UTF-16 code units with int32 wrap-around.
// Identical names always get the same modifier.
func UniquenessModifier(name string) float64 {
	var h int32
	for _, c := range utf16.Encode([]rune(name)) {
		h = h*31 + int32(c)
	}
	r := h % 10
	if r < 0 {
		r = -r
	}
	return float64(r)/100 + modifierBase
}

// TierMultiplier picks the markdown for a competitiveness score. Boundary
// values fall into the less aggressive tier.
func TierMultiplier(score float64) float64 {
	switch {
	case score > aggressiveThreshold:
		return aggressiveMultiplier
	case score > balancedThreshold:
		return balancedMultiplier
	default:
		return premiumMultiplier
	}
}

// ValidPrices drops nil and NaN observations.
func ValidPrices(prices []*float64) []float64 {
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p == nil || math.IsNaN(*p) {
			continue
		}
		valid = append(valid, *p)
	}
	return valid
}

// Recommend runs the pricing heuristic over the competitor prices seen for
// one product. ok is false when no valid price was observed.
func Recommend(prices []*float64, name string) (rec Recommendation, ok bool) {
	valid := ValidPrices(prices)
	if len(valid) == 0 {
		return Recommendation{}, false
	}

	maxPrice, minPrice, sum := valid[0], valid[0], 0.0
	for _, p := range valid {
		maxPrice = math.Max(maxPrice, p)
		minPrice = math.Min(minPrice, p)
		sum += p
	}
	avg := sum / float64(len(valid))

	modifier := UniquenessModifier(name)
	score := 0.0
	if avg != 0 {
		score = (maxPrice - minPrice) / avg
	}

	var price float64
	if len(valid) > 1 {
		price = avg * TierMultiplier(score) * modifier
		price = math.Max(price, minPrice*minimumProfitMargin)
	} else {
		price = avg * singlePriceMultiplier * modifier
	}

	return Recommendation{
		Price: price,
		Intelligence: PriceIntelligence{
			MaxCompetitorPrice:       maxPrice,
			MinCompetitorPrice:       minPrice,
			AverageCompetitorPrice:   avg,
			CompetitivenessScore:     score,
			UniqueModifier:           modifier,
			RecommendedPriceStrategy: price,
		},
	}, true
}
