package storefront

import "github.com/sells-group/storefront/internal/model"

// FallbackCatalog returns the fixed demo catalog shown when the live fetch
// fails under PolicyFallback. Each call returns a fresh slice.
func FallbackCatalog() []model.Product {
	return []model.Product{
		{
			ID:          1,
			Name:        "Premium Wireless Headphones",
			Description: "High-quality sound with noise cancellation",
			Price:       99.99,
			ImageRef:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
		},
		{
			ID:          2,
			Name:        "Smart Watch Pro",
			Description: "Track your fitness with advanced features",
			Price:       299.99,
			ImageRef:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=300&fit=crop",
		},
		{
			ID:          3,
			Name:        "Ultra HD Camera",
			Description: "Capture moments in stunning detail",
			Price:       599.99,
			ImageRef:    "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?w=400&h=300&fit=crop",
		},
		{
			ID:          4,
			Name:        "Portable Power Bank",
			Description: "Fast charging for all your devices",
			Price:       49.99,
			ImageRef:    "https://images.unsplash.com/photo-1609042231979-ab96f917b961?w=400&h=300&fit=crop",
		},
		{
			ID:          5,
			Name:        "Bluetooth Speaker",
			Description: "Crystal clear sound with 360° audio",
			Price:       79.99,
			ImageRef:    "https://images.unsplash.com/photo-1589003077984-894e133dba90?w=400&h=300&fit=crop",
		},
		{
			ID:          6,
			Name:        "USB-C Hub",
			Description: "Connect all your peripherals easily",
			Price:       39.99,
			ImageRef:    "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=400&h=300&fit=crop",
		},
	}
}
