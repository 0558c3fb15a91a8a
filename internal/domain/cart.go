package domain

import "context"

// CartItem is one stored cart line under carts/{uid}/items/{itemId}.
// A cart holds at most one line per product; adding an existing product
// increases the line's quantity instead of creating a second line.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the stored cart record under carts/{uid}.
// An empty Items map is a valid, present cart (the state after clearing).
type Cart struct {
	UserID    string              `json:"userId"`
	Items     map[string]CartItem `json:"items,omitempty"`
	UpdatedAt string              `json:"updatedAt,omitempty"`
}

// PricedItem is a cart line joined with live catalog data.
// ItemTotal is Quantity * Price at read time; nothing here is stored.
type PricedItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	ItemTotal float64 `json:"itemTotal"`
}

// PricedCart is the response shape for every cart operation.
// Items is always non-nil so the JSON encodes as [] rather than null.
type PricedCart struct {
	Items []PricedItem `json:"cart"`
	Total float64      `json:"total"`
}

// CartService manages per-user carts. Every mutation returns the freshly
// recomputed priced view so clients never render stale totals.
type CartService interface {
	// Get prices the cart against the live catalog. Lines whose product
	// no longer exists are dropped from the view. An absent cart yields
	// an empty view, not an error.
	Get(ctx context.Context, uid string) (*PricedCart, error)

	// Add puts quantity units of a product in the cart, merging into an
	// existing line for the same product. ENOTFOUND when the product
	// does not exist; EINVALID when quantity < 1.
	Add(ctx context.Context, uid, productID string, quantity int) (*PricedCart, error)

	// UpdateQuantity sets a line's quantity absolutely. ENOTFOUND when
	// the line is missing; EINVALID when quantity < 1.
	UpdateQuantity(ctx context.Context, uid, itemID string, quantity int) (*PricedCart, error)

	// Remove deletes a line. ENOTFOUND when the line is missing.
	Remove(ctx context.Context, uid, itemID string) (*PricedCart, error)

	// Clear empties the cart but keeps the record present.
	// ENOTFOUND when no cart record exists at all.
	Clear(ctx context.Context, uid string) (*PricedCart, error)
}
