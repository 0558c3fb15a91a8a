package api

import (
	"encoding/json"
	"net/http"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler"
	"github.com/hearthside/vesta/internal/middleware"
)

// OrderHandler serves the authenticated order endpoints.
type OrderHandler struct {
	orders domain.OrderService
}

func NewOrderHandler(orders domain.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Place handles POST /api/orders/place. The shipping address passes through
// as raw JSON; its shape belongs to the storefront.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var body struct {
		ShippingAddress json.RawMessage `json:"shippingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.Error(w, domain.Invalid("order.place", "Invalid request body"))
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), principal.UID, body.ShippingAddress)
	if err != nil {
		handler.Error(w, err)
		return
	}

	handler.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	order, err := h.orders.GetOrder(r.Context(), principal.UID, r.PathValue("id"))
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), principal.UID)
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
