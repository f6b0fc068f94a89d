package storefront

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/storefront/internal/model"
)

// Filter returns the products whose name or description contains query,
// compared case-insensitively. A blank query returns every product. Order
// is preserved and the result never aliases items.
//
// Every call rescans items; fine for catalogs of a few hundred products.
func Filter(items []model.Product, query string) []model.Product {
	if isBlank(query) {
		out := make([]model.Product, len(items))
		copy(out, items)
		return out
	}

	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]model.Product, 0, len(items))
	for _, p := range items {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
