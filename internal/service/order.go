package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
	"github.com/hearthside/vesta/internal/telemetry"
)

type orderService struct {
	store   store.Client
	cart    domain.CartService
	logger  *slog.Logger
	metrics *telemetry.Business
	now     func() time.Time
}

// NewOrderService creates the order service. metrics may be nil in tests.
func NewOrderService(s store.Client, cart domain.CartService, logger *slog.Logger, metrics *telemetry.Business) domain.OrderService {
	return &orderService{
		store:   s,
		cart:    cart,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// emptyAddress reports whether the client sent no usable shipping address.
// An empty object still counts as an address; validating its shape is the
// storefront's concern.
func emptyAddress(addr json.RawMessage) bool {
	trimmed := bytes.TrimSpace(addr)
	return len(trimmed) == 0 ||
		bytes.Equal(trimmed, []byte("null")) ||
		bytes.Equal(trimmed, []byte(`""`))
}

// PlaceOrder snapshots the priced cart into a new pending order. Validation
// happens before any write: an empty address or an empty priced cart leaves
// the store untouched. Clearing the cart afterwards is best-effort; the
// placed order stands even if the clear fails.
func (s *orderService) PlaceOrder(ctx context.Context, uid string, shippingAddress json.RawMessage) (*domain.Order, error) {
	const op = "order.place"

	if emptyAddress(shippingAddress) {
		return nil, ErrAddressRequired
	}

	// The stored record and the priced view fail differently: no stored
	// lines is an empty cart, stored lines whose products all vanished is
	// a cart with no valid items.
	var stored domain.Cart
	if err := s.store.Get(ctx, "carts/"+uid, &stored); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrCartEmpty
		}
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if len(stored.Items) == 0 {
		return nil, ErrCartEmpty
	}

	priced, err := s.cart.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(priced.Items) == 0 {
		return nil, domain.Invalid(op, "No valid items in cart")
	}

	items := make([]domain.OrderItem, 0, len(priced.Items))
	for _, line := range priced.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			ItemTotal: line.ItemTotal,
		})
	}

	order := &domain.Order{
		UserID:          uid,
		Items:           items,
		Total:           priced.Total,
		ShippingAddress: shippingAddress,
		Status:          domain.OrderStatusPending,
		CreatedAt:       domain.FormatTime(s.now()),
	}

	key, err := s.store.Push(ctx, "orders", order)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to save order")
	}
	order.ID = key
	s.metrics.OrderPlaced()

	if _, err := s.cart.Clear(ctx, uid); err != nil {
		s.logger.Warn("cart clear after checkout failed",
			slog.String("uid", uid),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()))
		s.metrics.CartClearFailure()
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, uid, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := s.store.Get(ctx, "orders/"+orderID, &order); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to load order")
	}
	order.ID = orderID

	// Ownership is checked after existence on purpose: a foreign order is
	// 403, never 404.
	if order.UserID != uid {
		return nil, ErrOrderForbidden
	}
	return &order, nil
}

// ListOrders returns the caller's orders newest first. Equal timestamps are
// broken by descending id so the listing is stable.
func (s *orderService) ListOrders(ctx context.Context, uid string) ([]domain.Order, error) {
	var records map[string]domain.Order
	if err := s.store.Get(ctx, "orders", &records); err != nil {
		if store.IsNotFound(err) {
			return []domain.Order{}, nil
		}
		return nil, domain.Internal(err, "order.list", "failed to load orders")
	}

	orders := make([]domain.Order, 0, len(records))
	for id, o := range records {
		if o.UserID != uid {
			continue
		}
		o.ID = id
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		ti, erri := domain.ParseTime(orders[i].CreatedAt)
		tj, errj := domain.ParseTime(orders[j].CreatedAt)
		if erri != nil || errj != nil || ti.Equal(tj) {
			return orders[i].ID > orders[j].ID
		}
		return ti.After(tj)
	})
	return orders, nil
}
