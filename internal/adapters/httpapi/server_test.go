package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/adapters/httpapi"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	planningQueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/setup"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/logging"
	"github.com/andrescamacho/craftchain-go/test/helpers"
)

func newTestServer(t *testing.T, registry *prometheus.Registry) http.Handler {
	t.Helper()
	provider := services.NewStaticCatalogProvider(helpers.WorkedExampleCatalog())
	m, err := setup.NewHandlerRegistry(provider, planningQueries.ComputePlanOptions{MaxScaleFactor: 20}).CreateConfiguredMediator()
	require.NoError(t, err)

	logger := logging.NewWriterLogger(io.Discard, "text", "info")
	return httpapi.NewServer("127.0.0.1:0", api.NewLocalService(m), logger, registry).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()

	newTestServer(t, nil).ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestListItems(t *testing.T) {
	w := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/items?category=parts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view api.ItemListView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Items, 2)
	assert.Equal(t, []string{"ores", "parts"}, view.Categories)

	w = do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/items?raw=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItem(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/api/v1/items/b", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view api.ItemDetailView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Beta Plate", view.Item.Name)

	w = do(t, h, http.MethodGet, "/api/v1/items/ghost", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var errView api.ErrorView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errView))
	assert.Equal(t, "not_found", errView.Kind)
	assert.Equal(t, "ghost", errView.ItemID)
}

func TestBuildChain(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/api/v1/items/a/chain", "")
	require.Equal(t, http.StatusOK, w.Code)
	var full api.ChainView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.Equal(t, "a", full.ItemID)
	assert.Equal(t, full.TotalNodes, len(full.Nodes))

	w = do(t, h, http.MethodGet, "/api/v1/items/a/chain?collapse="+full.RootNodeID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var collapsed api.ChainView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collapsed))
	assert.Equal(t, full.TotalNodes, collapsed.TotalNodes)
	assert.Less(t, len(collapsed.Nodes), len(full.Nodes))

	w = do(t, h, http.MethodGet, "/api/v1/items/a/chain?depth=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/items/a/chain?select=b", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComputePlan(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/v1/plans", `{"targets":[{"itemId":"a","ratePerMin":2}],"ratioMode":"whole"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view api.PlanView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "whole", view.RatioMode)
	assert.InDelta(t, 7.0, view.TotalMachines, 1e-9)
	assert.NotEmpty(t, view.PlanID)

	w = do(t, h, http.MethodPost, "/api/v1/plans", `{"targets":[],"ratioMode":"sideways"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errView api.ErrorView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errView))
	assert.Equal(t, "ratioMode", errView.Field)

	w = do(t, h, http.MethodPost, "/api/v1/plans", `{"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitedRequestsGetRetryAfter(t *testing.T) {
	m := helpers.NewMockMediator()
	m.Fail(&planningQueries.ComputePlanQuery{}, &middleware.RateLimitedError{Request: "ComputePlan", RetryAfter: 1500 * time.Millisecond})

	logger := logging.NewWriterLogger(io.Discard, "text", "info")
	h := httpapi.NewServer("127.0.0.1:0", api.NewLocalService(m), logger, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", bytes.NewBufferString(`{"targets":[]}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "craftchain_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	w := do(t, newTestServer(t, registry), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "craftchain_test_total 1")

	w = do(t, newTestServer(t, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
