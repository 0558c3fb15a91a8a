// Package routes builds the HTTP route table and its middleware stack.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler/api"
	"github.com/hearthside/vesta/internal/identity"
	"github.com/hearthside/vesta/internal/middleware"
	"github.com/hearthside/vesta/internal/router"
)

// Deps carries everything route registration needs.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *middleware.Metrics
	Resolver *identity.Resolver
	Catalog  domain.CatalogService
	Carts    domain.CartService
	Orders   domain.OrderService

	AllowedOrigins []string
	SecureCookie   bool
}

// New assembles the full route table.
func New(deps Deps) *router.Router {
	r := router.New(
		middleware.RequestID,
		router.Logger(deps.Logger),
		router.Recovery(deps.Logger),
		router.CORS(deps.AllowedOrigins),
		deps.Metrics.Middleware,
		middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig()),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.RateLimit(middleware.DefaultRateLimiterConfig()),
	)

	// Preflight requests carry no method-specific pattern of their own, so
	// they need a mux-level OPTIONS fallback to reach the CORS middleware.
	// The CORS layer answers them before this handler runs.
	r.Handle(http.MethodOptions, "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())

	requireAuth := middleware.RequireAuth(deps.Resolver)

	// Auth endpoints take a tighter rate limit; they are the ones worth
	// hammering.
	strict := middleware.RateLimit(middleware.StrictRateLimiterConfig())
	auth := api.NewAuthHandler(deps.Resolver, deps.Logger, deps.SecureCookie)
	r.Post("/api/auth/google", auth.GoogleAuth, strict)
	r.Post("/api/auth/login", auth.Login, strict)
	r.Post("/api/auth/logout", auth.Logout)
	r.Get("/api/auth/me", auth.Me, requireAuth)

	products := api.NewProductHandler(deps.Catalog)
	r.Get("/api/products", products.List)
	r.Get("/api/products/category/{category}", products.ListByCategory)
	r.Get("/api/products/{id}", products.GetByID)

	protected := r.Group(requireAuth)

	carts := api.NewCartHandler(deps.Carts)
	protected.Get("/api/cart", carts.Get)
	protected.Post("/api/cart/add", carts.Add)
	protected.Put("/api/cart/update/{itemId}", carts.Update)
	protected.Delete("/api/cart/remove/{itemId}", carts.Remove)
	protected.Delete("/api/cart/clear", carts.Clear)

	orders := api.NewOrderHandler(deps.Orders)
	protected.Post("/api/orders/place", orders.Place)
	protected.Get("/api/orders", orders.List)
	protected.Get("/api/orders/{id}", orders.GetByID)

	return r
}
