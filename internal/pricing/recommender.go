package pricing

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	StrategyHeuristic = "heuristic"
	StrategyAI        = "ai"
)

// Recommender suggests a price for each listing, in order. Implementations
// never fail: a listing they cannot price gets a Suggestion with nil Price.
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, listings []ProductListing) []Suggestion
}

// TextGenerator is a generative-text completion backend.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NewRecommender selects a strategy by name. Unknown names fall back to the
// heuristic.
func NewRecommender(strategy string, gen TextGenerator, currency string, logger *logrus.Entry) Recommender {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case StrategyAI:
		return NewAIRecommender(gen, currency, logger)
	case StrategyHeuristic, "":
		return NewHeuristicRecommender(currency, logger)
	default:
		logger.WithField("strategy", strategy).Warn("unknown pricing strategy, using heuristic")
		return NewHeuristicRecommender(currency, logger)
	}
}

type HeuristicRecommender struct {
	symbol string
	logger *logrus.Entry
}

func NewHeuristicRecommender(currency string, logger *logrus.Entry) *HeuristicRecommender {
	return &HeuristicRecommender{
		symbol: CurrencySymbol(currency),
		logger: logger.WithField("strategy", StrategyHeuristic),
	}
}

func (h *HeuristicRecommender) Name() string { return StrategyHeuristic }

func (h *HeuristicRecommender) Recommend(_ context.Context, listings []ProductListing) []Suggestion {
	obs := GroupByName(listings)
	byName := make(map[string]Suggestion, len(obs))

	out := make([]Suggestion, len(listings))
	for i, l := range listings {
		if s, ok := byName[l.Name]; ok {
			out[i] = s
			continue
		}

		var s Suggestion
		rec, ok := Recommend(obs[l.Name], l.Name)
		if ok {
			price := rec.Price
			intel := rec.Intelligence
			s = Suggestion{
				Price:        &price,
				Display:      FormatPrice(h.symbol, price),
				Intelligence: &intel,
			}
			h.logger.WithFields(logrus.Fields{
				"product":      l.Name,
				"observations": len(obs[l.Name]),
				"intelligence": intel,
			}).Debug("price intelligence")
		} else {
			h.logger.WithField("product", l.Name).Debug("no valid competitor price")
		}
		byName[l.Name] = s
		out[i] = s
	}
	return out
}

// AIRecommender asks a generative-text model for prices of the whole batch
// in one prompt. Any failure yields nil prices for every listing.
type AIRecommender struct {
	gen      TextGenerator
	currency string
	symbol   string
	logger   *logrus.Entry
}

func NewAIRecommender(gen TextGenerator, currency string, logger *logrus.Entry) *AIRecommender {
	return &AIRecommender{
		gen:      gen,
		currency: strings.ToUpper(currency),
		symbol:   CurrencySymbol(currency),
		logger:   logger.WithField("strategy", StrategyAI),
	}
}

func (a *AIRecommender) Name() string { return StrategyAI }

func (a *AIRecommender) Recommend(ctx context.Context, listings []ProductListing) []Suggestion {
	out := make([]Suggestion, len(listings))
	if len(listings) == 0 {
		return out
	}
	if a.gen == nil {
		a.logger.Warn("no text generator configured")
		return out
	}

	text, err := a.gen.GenerateText(ctx, BuildPricingPrompt(listings, a.currency))
	if err != nil {
		a.logger.WithError(err).Error("ai price request failed")
		return out
	}
	if strings.TrimSpace(text) == "" {
		a.logger.Error("ai price response had no text")
		return out
	}

	prices := ParseSuggestedPrices(text, len(listings))
	for i, p := range prices {
		if p == nil {
			continue
		}
		out[i] = Suggestion{Price: p, Display: FormatPrice(a.symbol, *p)}
	}
	return out
}

// BuildPricingPrompt lists every product in one message and asks for a
// comma separated list of prices.
func BuildPricingPrompt(listings []ProductListing, currency string) string {
	blocks := make([]string, 0, len(listings))
	for i, l := range listings {
		competitor := "Unknown"
		if l.CompetitorPrice != nil && *l.CompetitorPrice != 0 {
			competitor = strconv.FormatFloat(*l.CompetitorPrice, 'f', -1, 64)
		}
		blocks = append(blocks, fmt.Sprintf(
			"Product %d:\nName: %s\nCompetitor Price: %s\nCategory: %s\nStock Status: %s",
			i+1, l.Name, competitor, l.Category, l.Stock,
		))
	}
	return fmt.Sprintf(
		"Suggest ideal selling prices in %s for the following products.\n"+
			"Provide only numeric values separated by commas:\n\n%s",
		currency, strings.Join(blocks, "\n\n"),
	)
}

var leadingNumberRegexp = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseSuggestedPrices reads comma separated numbers in order, skipping
// entries that do not start with a number, and pads the result with nil up
// to n entries.
func ParseSuggestedPrices(text string, n int) []*float64 {
	out := make([]*float64, 0, n)
	for _, part := range strings.Split(text, ",") {
		if len(out) == n {
			break
		}
		num := leadingNumberRegexp.FindString(strings.TrimSpace(part))
		if num == "" {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		out = append(out, &v)
	}
	for len(out) < n {
		out = append(out, nil)
	}
	return out
}
