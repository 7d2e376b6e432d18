// Package dashboard serves the pricing dashboard: the fetch-products flow,
// stored products, their XLSX export and the price change log.
package dashboard

import (
	"context"
	"fmt"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/clients"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/metrics"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/pricing"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	unknownProductName = "Unknown Product"
	unknownStock       = "Unknown"
)

type CategoryLookup interface {
	BusinessCategory(ctx context.Context, id uuid.UUID) (string, error)
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]clients.ShoppingResult, error)
}

type RateSource interface {
	Rate(ctx context.Context) (float64, error)
}

type ProductWriter interface {
	UpsertAll(ctx context.Context, listings []pricing.ProductListing, userID uuid.UUID) store.Summary
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
}

type PriceChangeReader interface {
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PriceChangeLog, error)
}

type FetchResult struct {
	Category string                   `json:"category"`
	Products []pricing.ProductListing `json:"products"`
}

type Service struct {
	users       CategoryLookup
	search      Searcher
	rates       RateSource
	recommender pricing.Recommender
	products    ProductWriter
	changes     PriceChangeReader
	currency    string
	logger      *logrus.Entry
}

type Options struct {
	Users          CategoryLookup
	Search         Searcher
	Rates          RateSource
	Recommender    pricing.Recommender
	Products       ProductWriter
	Changes        PriceChangeReader
	TargetCurrency string
	Logger         *logrus.Entry
}

func NewService(opts Options) *Service {
	return &Service{
		users:       opts.Users,
		search:      opts.Search,
		rates:       opts.Rates,
		recommender: opts.Recommender,
		products:    opts.Products,
		changes:     opts.Changes,
		currency:    opts.TargetCurrency,
		logger:      opts.Logger,
	}
}

// FetchProducts searches competitor listings for the user's business
// category, prices them and stores the result. Errors from the user lookup
// and the search keep their sentinel so the handler can map them; a failed
// product write never fails the request.
func (s *Service) FetchProducts(ctx context.Context, userID uuid.UUID) (*FetchResult, error) {
	category, err := s.users.BusinessCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user category: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{"user_id": userID, "category": category})
	log.Info("fetching products")

	results, err := s.search.Search(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", category, err)
	}

	rate, err := s.rates.Rate(ctx)
	if err != nil {
		return nil, fmt.Errorf("exchange rate: %w", err)
	}

	listings := BuildListings(results, category, pricing.NewNormalizer(rate, s.currency))

	suggestions := s.recommender.Recommend(ctx, listings)
	for i := range listings {
		var sg pricing.Suggestion
		if i < len(suggestions) {
			sg = suggestions[i]
		}
		sg.Apply(&listings[i])

		result := "none"
		if sg.Price != nil {
			result = "priced"
		}
		metrics.Recommendations.WithLabelValues(s.recommender.Name(), result).Inc()
	}

	sum := s.products.UpsertAll(ctx, listings, userID)
	log.WithFields(logrus.Fields{
		"products":  len(listings),
		"rate":      rate,
		"strategy":  s.recommender.Name(),
		"created":   sum.Created,
		"updated":   sum.Updated,
		"unchanged": sum.Unchanged,
		"skipped":   sum.Skipped,
	}).Info("products stored")

	return &FetchResult{Category: category, Products: listings}, nil
}

// BuildListings maps raw search results to listings in search order, with
// prices converted by n.
func BuildListings(results []clients.ShoppingResult, category string, n pricing.Normalizer) []pricing.ProductListing {
	listings := make([]pricing.ProductListing, 0, len(results))
	for _, r := range results {
		name := r.Title
		if name == "" {
			name = unknownProductName
		}
		stock := r.Stock
		if stock == "" {
			stock = unknownStock
		}
		var image *string
		if r.Thumbnail != "" {
			thumb := r.Thumbnail
			image = &thumb
		}

		price, display := n.Normalize(r.Price)
		listings = append(listings, pricing.ProductListing{
			Name:                   name,
			CompetitorPrice:        price,
			CompetitorPriceDisplay: display,
			ImageURL:               image,
			Category:               category,
			Link:                   r.Link,
			Source:                 r.Source,
			Stock:                  stock,
		})
	}
	return listings
}

func (s *Service) StoredProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return s.products.ListByUser(ctx, userID)
}

func (s *Service) PriceChanges(ctx context.Context, userID uuid.UUID, limit int) ([]models.PriceChangeLog, error) {
	return s.changes.ListForUser(ctx, userID, limit)
}
