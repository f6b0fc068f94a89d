// Package storefront holds the catalog state behind the storefront pages: the
// one-shot catalog load, live search filtering, the cart counter, and the
// controller that ties them together for a session.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/model"
)

// ErrAlreadyResolved is returned when the catalog load is resolved twice.
var ErrAlreadyResolved = errors.New("storefront: catalog already resolved")

// User-facing messages.
const (
	MessageLoading      = "Loading products..."
	MessageFetchFailed  = "Failed to load products. Please check your catalog API connection."
	MessageFallback     = "Showing demo products instead"
	MessageEmptyCatalog = "No products available."
	SubtitleBrowse      = "Browse our collection"
)

// Fetcher loads the catalog. catalog.Client satisfies it.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// View is the snapshot handed to a presentation layer.
type View struct {
	Status        Status          `json:"status"`
	Items         []model.Product `json:"items"`
	Total         int             `json:"total"`
	Query         string          `json:"query"`
	Subtitle      string          `json:"subtitle"`
	Notice        string          `json:"notice,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	ErrorDetail   string          `json:"error_detail,omitempty"`
	UsingFallback bool            `json:"using_fallback"`
	NoResults     bool            `json:"no_results"`
	CatalogEmpty  bool            `json:"catalog_empty"`
}

// Reconciler owns the catalog state and derives the visible products from it
// and the current search query. It starts in StatusLoading and moves to
// StatusReady or StatusFailed exactly once.
type Reconciler struct {
	policy FallbackPolicy

	mu       sync.RWMutex
	status   Status
	items    []model.Product
	visible  []model.Product
	query    string
	fetchErr error
	fallback bool
}

// NewReconciler creates a reconciler in StatusLoading.
func NewReconciler(policy FallbackPolicy) *Reconciler {
	if policy == "" {
		policy = PolicyFallback
	}
	return &Reconciler{
		policy:  policy,
		status:  StatusLoading,
		visible: []model.Product{},
	}
}

// Policy returns the configured fallback policy.
func (r *Reconciler) Policy() FallbackPolicy {
	return r.policy
}

// Load fetches the catalog once and resolves the reconciler with the result.
// A fetch failure is absorbed into StatusFailed; the returned error is only
// ErrAlreadyResolved.
func (r *Reconciler) Load(ctx context.Context, f Fetcher) error {
	items, err := f.ListProducts(ctx)
	return r.Resolve(items, err)
}

// Resolve records the outcome of the catalog fetch. A nil fetchErr moves to
// StatusReady with items; otherwise the reconciler moves to StatusFailed and
// applies the fallback policy.
func (r *Reconciler) Resolve(items []model.Product, fetchErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusLoading {
		return eris.Wrapf(ErrAlreadyResolved, "storefront: resolve from %s", r.status)
	}

	if fetchErr != nil {
		r.status = StatusFailed
		r.fetchErr = fetchErr
		if r.policy == PolicyFallback {
			r.items = FallbackCatalog()
			r.fallback = true
		} else {
			r.items = []model.Product{}
		}
		zap.L().Error("storefront: catalog load failed",
			zap.String("policy", string(r.policy)),
			zap.Int("items", len(r.items)),
			zap.Error(fetchErr),
		)
	} else {
		r.status = StatusReady
		r.items = make([]model.Product, len(items))
		copy(r.items, items)
		zap.L().Info("storefront: catalog loaded", zap.Int("items", len(r.items)))
	}

	r.visible = Filter(r.items, r.query)
	return nil
}

// SetQuery replaces the search query and re-derives the visible products.
func (r *Reconciler) SetQuery(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.query = query
	if r.status != StatusLoading {
		r.visible = Filter(r.items, query)
	}
}

// ResetFilter clears the query and shows the full catalog again.
func (r *Reconciler) ResetFilter() {
	r.SetQuery("")
}

// Status returns the current catalog status.
func (r *Reconciler) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Items returns a copy of the full catalog.
func (r *Reconciler) Items() []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Product, len(r.items))
	copy(out, r.items)
	return out
}

// Find looks up a product in the loaded catalog.
func (r *Reconciler) Find(id int64) (model.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// View returns the current render snapshot.
func (r *Reconciler) View() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.render(r.query, r.visible)
}

// Preview renders the snapshot the given query would produce without
// changing the stored query.
func (r *Reconciler) Preview(query string) View {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var visible []model.Product
	if r.status != StatusLoading {
		visible = Filter(r.items, query)
	}
	return r.render(query, visible)
}

// render must be called with r.mu held.
func (r *Reconciler) render(query string, visible []model.Product) View {
	v := View{
		Status:        r.status,
		Items:         make([]model.Product, len(visible)),
		Total:         len(r.items),
		Query:         query,
		Subtitle:      SubtitleBrowse,
		UsingFallback: r.fallback,
	}
	copy(v.Items, visible)

	if query != "" {
		v.Subtitle = fmt.Sprintf("Search results for %q", query)
	}

	switch r.status {
	case StatusLoading:
		v.Notice = MessageLoading
		return v
	case StatusFailed:
		v.ErrorMessage = MessageFetchFailed
		v.ErrorDetail = r.fetchErr.Error()
	}

	switch {
	case len(r.items) == 0:
		v.CatalogEmpty = true
		if r.status == StatusReady {
			v.Notice = MessageEmptyCatalog
		}
	case len(visible) == 0 && !isBlank(query):
		v.NoResults = true
		v.Notice = fmt.Sprintf("No products found matching %q", query)
	case r.fallback:
		v.Notice = MessageFallback
	}

	return v
}
