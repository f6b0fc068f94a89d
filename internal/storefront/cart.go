package storefront

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/storefront/internal/model"
)

// Cart counts items added during a session. Nothing is persisted.
type Cart struct {
	mu    sync.Mutex
	count int
}

// Add records one unit of p and returns the new count.
func (c *Cart) Add(p model.Product) int {
	c.mu.Lock()
	c.count++
	n := c.count
	c.mu.Unlock()

	zap.L().Info("storefront: added to cart",
		zap.Int64("product_id", p.ID),
		zap.String("product", p.Name),
		zap.Int("cart_count", n),
	)
	return n
}

// Count returns the number of items added so far.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
