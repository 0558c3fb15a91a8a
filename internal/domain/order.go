package domain

import (
	"context"
	"encoding/json"
)

// Order statuses. Orders are created pending; transitions happen in a
// separate fulfillment system, not here.
const (
	OrderStatusPending = "pending"
)

// OrderItem is a frozen snapshot of a cart line at checkout time.
// Later catalog edits never change what an order shows.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ItemTotal float64 `json:"itemTotal"`
}

// Order is a stored record under orders/{orderId}, immutable after creation.
// ShippingAddress is carried through verbatim as client-supplied JSON.
type Order struct {
	ID              string          `json:"id,omitempty"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// OrderService places and retrieves orders.
type OrderService interface {
	// PlaceOrder snapshots the caller's priced cart into a new pending
	// order, then clears the cart. EINVALID when the address is missing
	// or the priced cart is empty; nothing is written in either case.
	// A failure to clear the cart does not fail the placed order.
	PlaceOrder(ctx context.Context, uid string, shippingAddress json.RawMessage) (*Order, error)

	// GetOrder returns one order. ENOTFOUND when absent, EFORBIDDEN when
	// it belongs to another user.
	GetOrder(ctx context.Context, uid, orderID string) (*Order, error)

	// ListOrders returns the caller's orders, newest first.
	ListOrders(ctx context.Context, uid string) ([]Order, error)
}
