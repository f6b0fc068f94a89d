// Package catalog fetches the product catalog from the storefront backend and
// normalizes its loosely typed records into canonical products.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/model"
)

// DefaultBaseURL is the catalog backend used when none is configured.
const DefaultBaseURL = "https://eclass.skytechsl.com/backend/product-api-laravel1/public/api"

// Client defines the catalog backend operations.
type Client interface {
	// ListProducts issues one GET {base}/products and returns the normalized
	// catalog in server order. Malformed records are skipped.
	ListProducts(ctx context.Context) ([]model.Product, error)
	// GetProduct issues one GET {base}/products/{id}.
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
}

// Option configures the catalog client.
type Option func(*httpClient)

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets a request timeout. Zero keeps the HTTP client's own
// timeout. The client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a catalog client. Requests are sent once; there are no
// retries and no auth headers.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *httpClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	reqURL := c.baseURL + "/products"

	doc, err := c.get(ctx, "list products", reqURL)
	if err != nil {
		return nil, err
	}

	records, ok := listPayload(doc)
	if !ok {
		return nil, &FetchError{Op: "list products", URL: reqURL, Err: eris.New("response is not a product list")}
	}

	raws := make([]model.RawProduct, len(records))
	for i, rec := range records {
		// Non-object elements become empty records and fail on the missing id.
		if m, ok := rec.(map[string]any); ok {
			raws[i] = m
		}
	}

	products, errs := NormalizeAll(raws)
	for _, e := range errs {
		zap.L().Warn("catalog: skipping malformed product record",
			zap.String("url", reqURL),
			zap.Error(e),
		)
	}

	zap.L().Debug("catalog: products fetched",
		zap.String("url", reqURL),
		zap.Int("received", len(records)),
		zap.Int("kept", len(products)),
	)

	return products, nil
}

func (c *httpClient) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	reqURL := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	doc, err := c.get(ctx, "get product", reqURL)
	if err != nil {
		return nil, err
	}

	record, ok := itemPayload(doc)
	if !ok {
		return nil, &FetchError{Op: "get product", URL: reqURL, Err: eris.New("response is not a product record")}
	}

	p, err := Normalize(record)
	if err != nil {
		zap.L().Warn("catalog: malformed product record",
			zap.String("url", reqURL),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

// get performs a single GET and decodes the JSON body. Every failure is
// returned as a *FetchError.
func (c *httpClient) get(ctx context.Context, op, reqURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Op: op, URL: reqURL, Err: eris.Wrap(err, "create request")}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Error("catalog: request failed", zap.String("url", reqURL), zap.Error(err))
		return nil, &FetchError{Op: op, URL: reqURL, Err: eris.Wrap(err, "request failed")}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: eris.Wrap(err, "read response body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Error("catalog: unexpected status",
			zap.String("url", reqURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &FetchError{
			Op:         op,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        eris.Errorf("unexpected status: %s", truncate(string(body), 200)),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &FetchError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Err: eris.Wrap(err, "unmarshal response")}
	}
	return doc, nil
}

// listPayload accepts a bare JSON array or a {"data": [...]} envelope.
func listPayload(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return data, true
		}
	}
	return nil, false
}

// itemPayload accepts a bare JSON object or a {"data": {...}} envelope.
func itemPayload(doc any) (model.RawProduct, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, hasID := obj["id"]; !hasID {
		if data, ok := obj["data"].(map[string]any); ok {
			return data, true
		}
	}
	return obj, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
