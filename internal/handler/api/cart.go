package api

import (
	"net/http"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler"
	"github.com/hearthside/vesta/internal/middleware"
)

// CartHandler serves the authenticated cart endpoints. Every mutation
// responds with the freshly priced cart.
type CartHandler struct {
	carts domain.CartService
}

func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	cart, err := h.carts.Get(r.Context(), principal.UID)
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/add. Quantity defaults to 1 when omitted.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var body struct {
		ProductID string `json:"productId" validate:"required"`
		Quantity  *int   `json:"quantity"`
	}
	if err := decodeJSON(r, "cart.add", &body, map[string]string{
		"ProductID": "Product ID is required",
	}); err != nil {
		handler.Error(w, err)
		return
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cart, err := h.carts.Add(r.Context(), principal.UID, body.ProductID, quantity)
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, cart)
}

// Update handles PUT /api/cart/update/{itemId}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var body struct {
		Quantity *int `json:"quantity" validate:"required"`
	}
	if err := decodeJSON(r, "cart.update", &body, map[string]string{
		"Quantity": "Valid quantity is required",
	}); err != nil {
		handler.Error(w, err)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), principal.UID, r.PathValue("itemId"), *body.Quantity)
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /api/cart/remove/{itemId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	cart, err := h.carts.Remove(r.Context(), principal.UID, r.PathValue("itemId"))
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	cart, err := h.carts.Clear(r.Context(), principal.UID)
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart cleared successfully",
		"cart":    cart.Items,
		"total":   cart.Total,
	})
}
