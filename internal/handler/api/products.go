package api

import (
	"net/http"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler"
)

// ProductHandler serves the public catalog endpoints.
type ProductHandler struct {
	catalog domain.CatalogService
}

func NewProductHandler(catalog domain.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

// ListByCategory handles GET /api/products/category/{category}.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProductsByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		handler.Error(w, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}
