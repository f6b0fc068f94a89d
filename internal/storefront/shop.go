package storefront

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/model"
)

// ErrUnknownProduct is returned for product ids that are not in the catalog.
var ErrUnknownProduct = errors.New("storefront: unknown product")

// CatalogClient is the subset of catalog.Client the shop uses.
type CatalogClient interface {
	Fetcher
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
}

// Shop is the root controller for one storefront session. It owns the search
// query, the catalog state and the cart, and is handed to whichever
// presentation layer is running.
type Shop struct {
	id         string
	client     CatalogClient
	reconciler *Reconciler
	cart       *Cart
}

// NewShop creates a session in StatusLoading. Call Start to load the catalog.
func NewShop(client CatalogClient, policy FallbackPolicy) *Shop {
	return &Shop{
		id:         uuid.NewString(),
		client:     client,
		reconciler: NewReconciler(policy),
		cart:       &Cart{},
	}
}

// SessionID identifies this session in logs and API responses.
func (s *Shop) SessionID() string {
	return s.id
}

// Start performs the session's single catalog fetch.
func (s *Shop) Start(ctx context.Context) error {
	zap.L().Debug("storefront: loading catalog", zap.String("session_id", s.id))
	if err := s.reconciler.Load(ctx, s.client); err != nil {
		return eris.Wrap(err, "storefront: start")
	}
	return nil
}

// Search applies a new search query.
func (s *Shop) Search(query string) View {
	s.reconciler.SetQuery(query)
	return s.reconciler.View()
}

// Preview renders the view for query without changing the session's query.
func (s *Shop) Preview(query string) View {
	return s.reconciler.Preview(query)
}

// Reset clears the search query.
func (s *Shop) Reset() View {
	s.reconciler.ResetFilter()
	return s.reconciler.View()
}

// View returns the current render snapshot.
func (s *Shop) View() View {
	return s.reconciler.View()
}

// AddToCart adds the catalog product with the given id and returns the new
// cart count.
func (s *Shop) AddToCart(id int64) (int, error) {
	p, ok := s.reconciler.Find(id)
	if !ok {
		return s.cart.Count(), eris.Wrapf(ErrUnknownProduct, "storefront: add to cart %d", id)
	}
	return s.cart.Add(p), nil
}

// CartCount returns the number of items in the cart.
func (s *Shop) CartCount() int {
	return s.cart.Count()
}

// Product fetches a single product from the backend. When the fetch fails
// and the product is in the loaded catalog, the catalog copy is returned.
func (s *Shop) Product(ctx context.Context, id int64) (model.Product, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err == nil {
		return *p, nil
	}

	if cached, ok := s.reconciler.Find(id); ok {
		zap.L().Warn("storefront: product fetch failed, using catalog copy",
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return cached, nil
	}
	return model.Product{}, eris.Wrapf(err, "storefront: product %d", id)
}
