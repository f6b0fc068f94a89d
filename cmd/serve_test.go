package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront/internal/catalog"
	"github.com/sells-group/storefront/internal/model"
	"github.com/sells-group/storefront/internal/storefront"
)

type viewPayload struct {
	SessionID string `json:"session_id"`
	CartCount int    `json:"cart_count"`
	View      struct {
		Status        string          `json:"status"`
		Items         []model.Product `json:"items"`
		Total         int             `json:"total"`
		Query         string          `json:"query"`
		Notice        string          `json:"notice"`
		ErrorMessage  string          `json:"error_message"`
		UsingFallback bool            `json:"using_fallback"`
		NoResults     bool            `json:"no_results"`
	} `json:"view"`
}

// startedRouter returns a router over a shop whose catalog load has finished.
func startedRouter(t *testing.T, baseURL, policy string) (http.Handler, *storefront.Shop) {
	t.Helper()
	c := testConfig(baseURL, policy)
	shop, err := newShop(c)
	require.NoError(t, err)
	require.NoError(t, shop.Start(context.Background()))
	return newRouter(shop, c.Server), shop
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) viewPayload {
	t.Helper()
	var v viewPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ready", body["catalog"])
}

func TestViewBeforeLoad(t *testing.T) {
	c := testConfig(newBackend(t).URL, "fallback")
	shop, err := newShop(c)
	require.NoError(t, err)
	h := newRouter(shop, c.Server)

	v := decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.Equal(t, "loading", v.View.Status)
	assert.Empty(t, v.View.Items)
	assert.Equal(t, storefront.MessageLoading, v.View.Notice)
}

func TestViewEndpoint(t *testing.T) {
	h, shop := startedRouter(t, newBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodGet, "/api/view", "")
	require.Equal(t, http.StatusOK, rr.Code)

	v := decodeView(t, rr)
	assert.Equal(t, shop.SessionID(), v.SessionID)
	assert.Equal(t, "ready", v.View.Status)
	assert.Equal(t, 2, v.View.Total)
	assert.Len(t, v.View.Items, 2)
}

func TestQueryAndReset(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	v := decodeView(t, do(t, h, http.MethodPut, "/api/query", `{"query": "WATCH"}`))
	require.Len(t, v.View.Items, 1)
	assert.Equal(t, int64(2), v.View.Items[0].ID)
	assert.Equal(t, "WATCH", v.View.Query)

	v = decodeView(t, do(t, h, http.MethodPut, "/api/query", `{"query": "xyz-no-match"}`))
	assert.Empty(t, v.View.Items)
	assert.True(t, v.View.NoResults)
	assert.Equal(t, `No products found matching "xyz-no-match"`, v.View.Notice)

	// The query sticks until reset.
	v = decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.True(t, v.View.NoResults)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/query/reset", ""))
	assert.Empty(t, v.View.Query)
	assert.False(t, v.View.NoResults)
	assert.Len(t, v.View.Items, 2)
}

func TestQuery_InvalidBody(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodPut, "/api/query", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestProductsEndpoint(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	v := decodeView(t, do(t, h, http.MethodGet, "/api/products?q=noise", ""))
	require.Len(t, v.View.Items, 1)
	assert.Equal(t, int64(1), v.View.Items[0].ID)
	assert.Equal(t, "noise", v.View.Query)

	// Filtering with q leaves the session query alone.
	v = decodeView(t, do(t, h, http.MethodGet, "/api/products", ""))
	assert.Len(t, v.View.Items, 2)
	assert.Empty(t, v.View.Query)

	v = decodeView(t, do(t, h, http.MethodGet, "/api/products?q=xyz-no-match", ""))
	assert.Empty(t, v.View.Items)
	assert.True(t, v.View.NoResults)

	v = decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.Len(t, v.View.Items, 2)
	assert.False(t, v.View.NoResults)
}

func TestProductsEndpoint_KeepsStoredQuery(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	decodeView(t, do(t, h, http.MethodPut, "/api/query", `{"query": "watch"}`))

	v := decodeView(t, do(t, h, http.MethodGet, "/api/products?q=", ""))
	assert.Len(t, v.View.Items, 2)

	v = decodeView(t, do(t, h, http.MethodGet, "/api/products", ""))
	require.Len(t, v.View.Items, 1)
	assert.Equal(t, "watch", v.View.Query)
}

func TestProductEndpoint(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodGet, "/api/products/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Watch", p.Name)

	rr = do(t, h, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/products/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProductEndpoint_BackendDownUsesCatalog(t *testing.T) {
	h, _ := startedRouter(t, newDownBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodGet, "/api/products/3", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Ultra HD Camera", p.Name)

	rr = do(t, h, http.MethodGet, "/api/products/77", "")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestFailedCatalogView(t *testing.T) {
	h, _ := startedRouter(t, newDownBackend(t).URL, "fallback")

	v := decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.Equal(t, "failed", v.View.Status)
	assert.Equal(t, storefront.MessageFetchFailed, v.View.ErrorMessage)
	assert.True(t, v.View.UsingFallback)
	assert.Len(t, v.View.Items, len(storefront.FallbackCatalog()))

	h, _ = startedRouter(t, newDownBackend(t).URL, "empty")
	v = decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.Equal(t, "failed", v.View.Status)
	assert.Empty(t, v.View.Items)
	assert.False(t, v.View.UsingFallback)
}

func TestCartEndpoints(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	rr := do(t, h, http.MethodPost, "/api/cart", `{"product_id": 1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count": 1}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/cart", `{"product_id": 2}`)
	assert.JSONEq(t, `{"count": 2}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/cart", `{"product_id": 42}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/cart", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/cart", "")
	assert.JSONEq(t, `{"count": 2}`, rr.Body.String())

	v := decodeView(t, do(t, h, http.MethodGet, "/api/view", ""))
	assert.Equal(t, 2, v.CartCount)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := startedRouter(t, newBackend(t).URL, "fallback")

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	c := testConfig(newBackend(t).URL, "fallback")
	c.Server.RateLimit = 1
	c.Server.RateBurst = 1
	shop, err := newShop(c)
	require.NoError(t, err)
	h := newRouter(shop, c.Server)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")
}

func TestServeCmd_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotEmpty(t, serveCmd.Short)
}

func TestProductErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, productErrorStatus(assert.AnError))
	assert.Equal(t, http.StatusNotFound, productErrorStatus(&catalog.FetchError{StatusCode: http.StatusNotFound}))
	assert.Equal(t, http.StatusBadGateway, productErrorStatus(&catalog.FetchError{StatusCode: http.StatusInternalServerError}))
	assert.Equal(t, http.StatusBadGateway, productErrorStatus(&catalog.MalformedRecordError{Field: "id"}))
}
