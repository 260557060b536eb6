package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

func newTestClient(url string) (*api.RESTClient, *shared.MockClock) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return api.NewRESTClientWithConfig(url, 3, 100*time.Millisecond, clock), clock
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestRESTClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			writeJSON(w, http.StatusServiceUnavailable, api.ErrorView{Error: "warming up", Kind: "internal"})
			return
		}
		writeJSON(w, http.StatusOK, api.ItemDetailView{Item: api.ItemView{ID: "a", Name: "Alpha Gear"}})
	}))
	defer server.Close()

	client, clock := newTestClient(server.URL)
	view, err := client.GetItem(context.Background(), "a")

	require.NoError(t, err)
	assert.Equal(t, "Alpha Gear", view.Item.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, clock.Sleeps(), 2)
}

func TestRESTClient_HonoursRetryAfter(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "3")
			writeJSON(w, http.StatusTooManyRequests, api.ErrorView{Error: "slow down", Kind: "rate_limited"})
			return
		}
		writeJSON(w, http.StatusOK, api.ItemListView{Items: []api.ItemView{{ID: "c"}}, Categories: []string{}})
	}))
	defer server.Close()

	client, clock := newTestClient(server.URL)
	view, err := client.ListItems(context.Background(), api.ItemListRequest{RawOnly: true})

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, []time.Duration{3 * time.Second}, clock.Sleeps())
}

func TestRESTClient_GivesUpOnPersistentRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, api.ErrorView{Error: "slow down", Kind: "rate_limited"})
	}))
	defer server.Close()

	client, clock := newTestClient(server.URL)
	_, err := client.GetItem(context.Background(), "a")

	var limited *middleware.RateLimitedError
	require.True(t, errors.As(err, &limited))
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Len(t, clock.Sleeps(), 3)
}

func TestRESTClient_MapsClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/items/ghost/chain":
			writeJSON(w, http.StatusNotFound, api.ErrorView{Error: "item not found: ghost", Kind: "not_found", ItemID: "ghost"})
		default:
			writeJSON(w, http.StatusBadRequest, api.ErrorView{
				Error:   "ratioMode: bad",
				Kind:    "invalid",
				Field:   "ratioMode",
				Message: "bad",
			})
		}
	}))
	defer server.Close()

	client, clock := newTestClient(server.URL)

	_, err := client.BuildChain(context.Background(), api.ChainRequest{ItemID: "ghost"})
	var notFound *catalog.ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "ghost", notFound.ItemID)

	_, err = client.ComputePlan(context.Background(), api.PlanRequest{RatioMode: "sideways"})
	var invalid *shared.ValidationError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "ratioMode", invalid.Field)

	assert.Empty(t, clock.Sleeps(), "client errors are not retried")
}

func TestRESTClient_SendsChainParameters(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, api.ChainView{ItemID: "a"})
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	depth := 2
	_, err := client.BuildChain(context.Background(), api.ChainRequest{
		ItemID:     "a",
		MaxDepth:   &depth,
		Selections: map[string]int{"b": 1},
		Collapsed:  []string{"n1", "n2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "collapse=n1%2Cn2&depth=2&select=b%3A1", query)
}

func TestRESTClient_BreakerOpensOnDeadServer(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusInternalServerError, api.ErrorView{Error: "boom", Kind: "internal"})
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	client := api.NewRESTClientWithConfig(server.URL, 0, time.Millisecond, clock)

	for i := 0; i < 5; i++ {
		_, err := client.GetItem(context.Background(), "a")
		require.Error(t, err)
	}
	_, err := client.GetItem(context.Background(), "a")

	assert.ErrorIs(t, err, api.ErrBreakerOpen)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}
