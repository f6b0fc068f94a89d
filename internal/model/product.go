package model

import "fmt"

// PlaceholderImage is shown for products without an image reference.
const PlaceholderImage = "https://via.placeholder.com/300x300?text=Product+Image"

// Product is the canonical, fully typed catalog entry.
type Product struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	ImageRef    string  `json:"image_ref,omitempty" yaml:"image_ref,omitempty"` // URL or asset path; empty means unset
}

// RawProduct is a product record as received from the catalog backend.
// Fields may be missing, stringly typed, or use alternate names.
type RawProduct map[string]any

// Raw renders the product back into the backend wire shape.
func (p Product) Raw() RawProduct {
	raw := RawProduct{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
	}
	if p.ImageRef != "" {
		raw["image_url"] = p.ImageRef
	}
	return raw
}

// DisplayPrice formats the price the way product cards show it.
func (p Product) DisplayPrice() string {
	return fmt.Sprintf("Rs.%.2f", p.Price)
}

// ImageOrPlaceholder returns the image reference, or PlaceholderImage when unset.
func (p Product) ImageOrPlaceholder() string {
	if p.ImageRef == "" {
		return PlaceholderImage
	}
	return p.ImageRef
}
