package domain

import "context"

// Product is a catalog entry under products/{productId}.
// The order-taking service treats the catalog as read-only; records are
// written by the seeding utility or by an external admin tool.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	InStock     bool    `json:"inStock"`
}

// CatalogService provides read access to the product catalog.
type CatalogService interface {
	// GetProduct returns a single product or ENOTFOUND.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns every product, sorted by id.
	ListProducts(ctx context.Context) ([]Product, error)

	// ListProductsByCategory returns products matching the category.
	// An unknown category yields an empty slice, not an error.
	ListProductsByCategory(ctx context.Context, category string) ([]Product, error)
}
