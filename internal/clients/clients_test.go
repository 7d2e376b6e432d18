package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchClientDecodesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "home appliances", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"shopping_results":[
			{"title":"Kettle","price":"$24.99","thumbnail":"https://img/1","link":"https://shop/1","source":"Store A","stock":"In stock"},
			{"title":"Toaster","price":19,"source":"Store B","stock":{"qty":3}}
		]}`))
	}))
	defer srv.Close()

	c := NewSearchClient(srv.URL, "secret", 0, time.Second)
	results, err := c.Search(context.Background(), "home appliances")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, ShoppingResult{
		Title: "Kettle", Price: "$24.99", Thumbnail: "https://img/1",
		Link: "https://shop/1", Source: "Store A", Stock: "In stock",
	}, results[0])
	assert.Equal(t, "19", results[1].Price)
	assert.Equal(t, "", results[1].Stock)
}

func TestSearchClientNoResults(t *testing.T) {
	for _, body := range []string{`{}`, `{"shopping_results":[]}`, `{"error":"Google hasn't returned any results"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := NewSearchClient(srv.URL, "k", 0, time.Second).Search(context.Background(), "x")
		assert.ErrorIs(t, err, ErrNoResults, body)
		srv.Close()
	}
}

func TestSearchClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewSearchClient(srv.URL, "bad", 0, time.Second).Search(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoResults))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestSearchClientRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"shopping_results":[{"title":"a"}]}`))
	}))
	defer srv.Close()

	c := NewSearchClient(srv.URL, "k", 0.01, time.Second)
	_, err := c.Search(context.Background(), "x")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, "x")
	assert.Error(t, err)
}

func TestRateClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base":  "USD",
			"rates": map[string]float64{"INR": 83.25, "EUR": 0.92},
		})
	}))
	defer srv.Close()

	r, err := NewRateClient(srv.URL, "usd", "inr", time.Second).Rate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 83.25, r)

	_, err = NewRateClient(srv.URL, "USD", "JPY", time.Second).Rate(context.Background())
	assert.Error(t, err)
}

func TestGeminiClient(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-1.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"100, 200"}]}}]}`))
	}))
	defer srv.Close()

	text, err := NewGeminiClient(srv.URL, "gemini-1.5-pro", "key123", time.Second).GenerateText(context.Background(), "price these")
	require.NoError(t, err)
	assert.Equal(t, "100, 200", text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "price these", got.Contents[0].Parts[0].Text)
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(srv.URL, "m", "k", time.Second).GenerateText(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
