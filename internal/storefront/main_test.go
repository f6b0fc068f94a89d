package storefront

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"github.com/sells-group/storefront/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClient struct {
	items    []model.Product
	err      error
	calls    int
	product  *model.Product
	getErr   error
	getCalls int
}

func (f *fakeClient) ListProducts(_ context.Context) ([]model.Product, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeClient) GetProduct(_ context.Context, _ int64) (*model.Product, error) {
	f.getCalls++
	return f.product, f.getErr
}

func sampleCatalog() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Wireless Headphones", Description: "noise cancelling", Price: 99.99},
		{ID: 2, Name: "Watch", Description: "fitness tracker", Price: 299.99},
	}
}
