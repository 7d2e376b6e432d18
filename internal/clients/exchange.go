package clients

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// RateClient reads conversion rates from an exchangerate-api style
// endpoint: GET {baseURL}/{BASE} -> {"rates": {"INR": 83.1, ...}}.
type RateClient struct {
	baseURL    string
	from       string
	to         string
	httpClient *http.Client
}

func NewRateClient(baseURL, from, to string, timeout time.Duration) *RateClient {
	return &RateClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		from:       strings.ToUpper(from),
		to:         strings.ToUpper(to),
		httpClient: newHTTPClient(timeout),
	}
}

// Rate returns how many target-currency units one source unit buys.
func (c *RateClient) Rate(ctx context.Context) (float64, error) {
	var resp ratesResponse
	if err := doJSON(ctx, c.httpClient, "exchange_rate", http.MethodGet, c.baseURL+"/"+c.from, nil, &resp); err != nil {
		return 0, err
	}

	r, ok := resp.Rates[c.to]
	if !ok {
		return 0, fmt.Errorf("exchange_rate: no %s rate for base %s", c.to, c.from)
	}
	if r <= 0 {
		return 0, fmt.Errorf("exchange_rate: invalid %s rate %v", c.to, r)
	}
	return r, nil
}
