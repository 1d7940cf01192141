package services

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Diversity_Api.git/internal/models"
)

// fakeFinnhub simula los tres endpoints de Finnhub que usa el cliente
type fakeFinnhub struct {
	symbols  []string
	prices   map[string]float64
	sectors  map[string]string
	failPath string
	status   int
	calls    atomic.Int32
	mutex    sync.Mutex
	tokens   []string
}

func (f *fakeFinnhub) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.mutex.Lock()
		f.tokens = append(f.tokens, r.URL.Query().Get("token"))
		f.mutex.Unlock()

		if r.URL.Path == f.failPath {
			w.WriteHeader(f.status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/stock/symbol":
			assert.Equal(t, "US", r.URL.Query().Get("exchange"))
			listing := []map[string]string{}
			for _, s := range f.symbols {
				listing = append(listing, map[string]string{"symbol": s, "description": s + " INC", "type": "Common Stock"})
			}
			json.NewEncoder(w).Encode(listing)
		case "/quote":
			symbol := r.URL.Query().Get("symbol")
			json.NewEncoder(w).Encode(map[string]float64{"c": f.prices[symbol], "pc": 1})
		case "/stock/profile2":
			symbol := r.URL.Query().Get("symbol")
			if sector, ok := f.sectors[symbol]; ok {
				json.NewEncoder(w).Encode(map[string]string{"name": symbol, "finnhubIndustry": sector})
				return
			}
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newFakeFinnhub() *fakeFinnhub {
	return &fakeFinnhub{
		symbols: []string{"AAPL", "MSFT", "XOM", "ZZZ"},
		prices:  map[string]float64{"AAPL": 150, "MSFT": 250, "XOM": 100, "ZZZ": 3.5},
		sectors: map[string]string{"AAPL": "Technology", "MSFT": "Technology", "XOM": "Energy"},
	}
}

func newTestClient(url string, limit int, cache QuoteCache) *FinnhubClient {
	return NewFinnhubClient(FinnhubConfig{
		BaseURL:     url,
		APIKey:      "test-key",
		Exchange:    "US",
		Limit:       limit,
		Concurrency: 2,
		Timeout:     2 * time.Second,
	}, cache, zerolog.Nop())
}

func TestFinnhubClient_FetchStocks(t *testing.T) {
	fake := newFakeFinnhub()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := newTestClient(server.URL, 30, nil)

	stocks, err := client.FetchStocks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Stock{
		{Symbol: "AAPL", Price: 150, Sector: "Technology"},
		{Symbol: "MSFT", Price: 250, Sector: "Technology"},
		{Symbol: "XOM", Price: 100, Sector: "Energy"},
		{Symbol: "ZZZ", Price: 3.5, Sector: "N/A"},
	}, stocks)

	for _, token := range fake.tokens {
		assert.Equal(t, "test-key", token)
	}
}

func TestFinnhubClient_FetchStocks_Limit(t *testing.T) {
	fake := newFakeFinnhub()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := newTestClient(server.URL, 2, nil)

	stocks, err := client.FetchStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "AAPL", stocks[0].Symbol)
	assert.Equal(t, "MSFT", stocks[1].Symbol)

	// Un listado y dos llamadas por símbolo
	assert.Equal(t, int32(5), fake.calls.Load())
}

func TestFinnhubClient_MissingAPIKey(t *testing.T) {
	fake := newFakeFinnhub()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := NewFinnhubClient(FinnhubConfig{BaseURL: server.URL, Exchange: "US", Limit: 30}, nil, zerolog.Nop())

	stocks, err := client.FetchStocks(context.Background())
	assert.Nil(t, stocks)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestFinnhubClient_ErrorsAreNotPartial(t *testing.T) {
	tests := []struct {
		name     string
		failPath string
		status   int
		contains string
	}{
		{"listing fails", "/stock/symbol", http.StatusInternalServerError, "500"},
		{"quote rate limited", "/quote", http.StatusTooManyRequests, "429"},
		{"profile forbidden", "/stock/profile2", http.StatusForbidden, "403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeFinnhub()
			fake.failPath = tt.failPath
			fake.status = tt.status
			server := httptest.NewServer(fake.handler(t))
			defer server.Close()

			stocks, err := newTestClient(server.URL, 30, nil).FetchStocks(context.Background())
			require.Error(t, err)
			assert.Nil(t, stocks)
			assert.Contains(t, err.Error(), tt.contains)
			assert.NotContains(t, err.Error(), "test-key")
		})
	}
}

func TestFinnhubClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 30, nil).FetchStocks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "respuesta inválida")
}

func TestFinnhubClient_NetworkErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(url, 30, nil).FetchStocks(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestFinnhubClient_ContextCanceled(t *testing.T) {
	fake := newFakeFinnhub()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL, 30, nil).FetchStocks(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFinnhubClient_UsesCache(t *testing.T) {
	fake := newFakeFinnhub()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := NewMemoryQuoteCache(time.Minute)
	client := newTestClient(server.URL, 30, cache)

	first, err := client.FetchStocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(9), fake.calls.Load())

	second, err := client.FetchStocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Solo el listado vuelve a consultarse
	assert.Equal(t, int32(10), fake.calls.Load())
}

func TestFinnhubClient_ErrorStatusReusesConnection(t *testing.T) {
	var connections atomic.Int32
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"API limit reached. Please try again later."}`, http.StatusTooManyRequests)
	}))
	server.Config.ConnState = func(_ net.Conn, state http.ConnState) {
		if state == http.StateNew {
			connections.Add(1)
		}
	}
	server.Start()
	defer server.Close()

	client := newTestClient(server.URL, 30, nil)
	for i := 0; i < 3; i++ {
		_, err := client.FetchQuote(context.Background(), "AAPL")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	}

	assert.Equal(t, int32(1), connections.Load())
}
