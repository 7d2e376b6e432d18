package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var ErrNoResults = errors.New("no shopping results")

// ShoppingResult is one listing of a shopping search.
type ShoppingResult struct {
	Title     string
	Price     string
	Thumbnail string
	Link      string
	Source    string
	Stock     string
}

type shoppingResultJSON struct {
	Title     flexString `json:"title"`
	Price     flexString `json:"price"`
	Thumbnail flexString `json:"thumbnail"`
	Link      flexString `json:"link"`
	Source    flexString `json:"source"`
	Stock     flexString `json:"stock"`
}

type searchResponse struct {
	ShoppingResults []shoppingResultJSON `json:"shopping_results"`
	Error           string               `json:"error"`
}

// SearchClient queries SerpAPI's google_shopping engine.
type SearchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSearchClient builds a client allowing ratePerSec searches per second;
// a non-positive rate disables the limit.
func NewSearchClient(baseURL, apiKey string, ratePerSec float64, timeout time.Duration) *SearchClient {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	return &SearchClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: newHTTPClient(timeout),
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Search returns the shopping listings for query. ErrNoResults is returned
// when the API has no listing for it.
func (c *SearchClient) Search(ctx context.Context, query string) ([]ShoppingResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("serpapi: rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("engine", "google_shopping")
	q.Set("q", query)
	q.Set("api_key", c.apiKey)

	var resp searchResponse
	if err := doJSON(ctx, c.httpClient, "serpapi", http.MethodGet, c.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	if len(resp.ShoppingResults) == 0 {
		if resp.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoResults, resp.Error)
		}
		return nil, ErrNoResults
	}

	results := make([]ShoppingResult, 0, len(resp.ShoppingResults))
	for _, r := range resp.ShoppingResults {
		results = append(results, ShoppingResult{
			Title:     string(r.Title),
			Price:     string(r.Price),
			Thumbnail: string(r.Thumbnail),
			Link:      string(r.Link),
			Source:    string(r.Source),
			Stock:     string(r.Stock),
		})
	}
	return results, nil
}
