// Package pricing turns competitor listings into suggested prices.
package pricing

// PriceNotAvailable is shown wherever a price could not be derived.
const PriceNotAvailable = "Price not available"

// ProductListing is one competitor search result, built per request.
type ProductListing struct {
	Name                   string             `json:"name"`
	CompetitorPrice        *float64           `json:"competitorPrice"`
	CompetitorPriceDisplay string             `json:"competitorPriceDisplay"`
	AISuggestedPrice       *string            `json:"aiSuggestedPrice"`
	ImageURL               *string            `json:"imageUrl"`
	Category               string             `json:"category"`
	Link                   string             `json:"link"`
	Source                 string             `json:"source"`
	Stock                  string             `json:"stock"`
	PriceIntelligence      *PriceIntelligence `json:"priceIntelligence,omitempty"`
}

// PriceIntelligence is the diagnostic block attached to a heuristic suggestion.
type PriceIntelligence struct {
	MaxCompetitorPrice       float64 `json:"maxCompetitorPrice"`
	MinCompetitorPrice       float64 `json:"minCompetitorPrice"`
	AverageCompetitorPrice   float64 `json:"averageCompetitorPrice"`
	CompetitivenessScore     float64 `json:"competitivenessScore"`
	UniqueModifier           float64 `json:"uniqueModifier"`
	RecommendedPriceStrategy float64 `json:"recommendedPriceStrategy"`
}

// Suggestion is a recommender's answer for one listing. A nil Price means
// no recommendation could be made.
type Suggestion struct {
	Price        *float64
	Display      string
	Intelligence *PriceIntelligence
}

// Apply copies the suggestion onto the listing, substituting the
// placeholder when there is no price.
func (s Suggestion) Apply(l *ProductListing) {
	display := s.Display
	if s.Price == nil || display == "" {
		display = PriceNotAvailable
	}
	l.AISuggestedPrice = &display
	l.PriceIntelligence = s.Intelligence
}
