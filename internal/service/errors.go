package service

import "github.com/hearthside/vesta/internal/domain"

// Sentinel errors shared across services. Messages are user-facing; handlers
// pass them through ErrorMessage unchanged.
var (
	ErrUserNotFound    = domain.Errorf(domain.ENOTFOUND, "", "User not found")
	ErrProductNotFound = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
	ErrCartNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Cart not found")
	ErrItemNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Item not found in cart")
	ErrOrderNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrCartEmpty       = domain.Errorf(domain.EINVALID, "", "Your cart is empty")
	ErrAddressRequired = domain.Errorf(domain.EINVALID, "", "Shipping address is required")
	ErrOrderForbidden  = domain.Errorf(domain.EFORBIDDEN, "", "You do not have permission to access this order")
)
