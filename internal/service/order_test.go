package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderFixture(t *testing.T) (store.Client, domain.CartService, domain.OrderService) {
	t.Helper()
	st := store.NewMemoryClient()
	sampleCatalog(t, st)
	carts := NewCartService(st, NewCatalogService(st))
	orders := NewOrderService(st, carts, testLogger(), nil)
	return st, carts, orders
}

var shippingAddress = json.RawMessage(`{"street":"1 Main St","city":"Portland","zip":"97201"}`)

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	st, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, "u1", "product2", 2)
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "u1", shippingAddress)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.CreatedAt)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 35.99+2*3.99, order.Total, 1e-9)
	assert.JSONEq(t, string(shippingAddress), string(order.ShippingAddress))

	// The order is readable back under its generated id.
	got, err := orders.GetOrder(ctx, "u1", order.ID)
	require.NoError(t, err)
	assert.InDelta(t, order.Total, got.Total, 1e-9)

	// Checkout cleared the cart but kept the record.
	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	var stored domain.Cart
	require.NoError(t, st.Get(ctx, "carts/u1", &stored))
	assert.Equal(t, "u1", stored.UserID)
}

func TestPlaceOrderSnapshotIsFrozen(t *testing.T) {
	st, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "u1", shippingAddress)
	require.NoError(t, err)

	// A later price change must not leak into the placed order.
	seedProduct(t, st, "product1", domain.Product{Name: "Chocolate Cake", Price: 99.99, Category: "cakes", InStock: true})

	got, err := orders.GetOrder(ctx, "u1", order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 35.99, got.Total, 1e-9)
	assert.InDelta(t, 35.99, got.Items[0].Price, 1e-9)
}

func TestPlaceOrderRequiresAddress(t *testing.T) {
	_, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)

	for _, addr := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(`""`)} {
		_, err := orders.PlaceOrder(ctx, "u1", addr)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		assert.Equal(t, "Shipping address is required", domain.ErrorMessage(err))
	}
}

func TestPlaceOrderEmptyCartWritesNothing(t *testing.T) {
	st, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	// No cart record at all.
	_, err := orders.PlaceOrder(ctx, "u1", shippingAddress)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "Your cart is empty", domain.ErrorMessage(err))

	// A cart emptied before checkout reports the same way.
	_, err = carts.Add(ctx, "u2", "product1", 1)
	require.NoError(t, err)
	_, err = carts.Clear(ctx, "u2")
	require.NoError(t, err)
	_, err = orders.PlaceOrder(ctx, "u2", shippingAddress)
	assert.Equal(t, "Your cart is empty", domain.ErrorMessage(err))

	// Neither attempt wrote an order.
	var all map[string]domain.Order
	assert.True(t, store.IsNotFound(st.Get(ctx, "orders", &all)))
}

func TestPlaceOrderAllProductsVanished(t *testing.T) {
	st, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)
	require.NoError(t, st.Delete(ctx, "products/product1"))

	_, err = orders.PlaceOrder(ctx, "u1", shippingAddress)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "No valid items in cart", domain.ErrorMessage(err))

	var all map[string]domain.Order
	assert.True(t, store.IsNotFound(st.Get(ctx, "orders", &all)))
}

// clearFailingCarts wraps a cart service with a Clear that always fails.
type clearFailingCarts struct {
	domain.CartService
}

func (c clearFailingCarts) Clear(ctx context.Context, uid string) (*domain.PricedCart, error) {
	return nil, domain.Internal(errors.New("permission denied"), "cart.clear", "failed to save cart")
}

func TestPlaceOrderSurvivesClearFailure(t *testing.T) {
	st := store.NewMemoryClient()
	sampleCatalog(t, st)
	carts := NewCartService(st, NewCatalogService(st))
	orders := NewOrderService(st, clearFailingCarts{carts}, testLogger(), nil)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "u1", shippingAddress)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)

	// The order stands even though the cart still has its lines.
	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestGetOrderOwnership(t *testing.T) {
	_, carts, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "alice", "product1", 1)
	require.NoError(t, err)
	order, err := orders.PlaceOrder(ctx, "alice", shippingAddress)
	require.NoError(t, err)

	// A foreign order is forbidden, never hidden as missing.
	_, err = orders.GetOrder(ctx, "mallory", order.ID)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))
	assert.Equal(t, "You do not have permission to access this order", domain.ErrorMessage(err))
}

func TestGetOrderMissing(t *testing.T) {
	_, _, orders := newOrderFixture(t)

	_, err := orders.GetOrder(context.Background(), "u1", "no-such-order")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Order not found", domain.ErrorMessage(err))
}

func TestListOrdersNewestFirst(t *testing.T) {
	st := store.NewMemoryClient()
	sampleCatalog(t, st)
	carts := NewCartService(st, NewCatalogService(st))
	svc := NewOrderService(st, carts, testLogger(), nil).(*orderService)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		ts := base.Add(offset)
		svc.now = func() time.Time { return ts }

		_, err := carts.Add(ctx, "u1", "product2", i+1)
		require.NoError(t, err)
		_, err = svc.PlaceOrder(ctx, "u1", shippingAddress)
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		prev, err := domain.ParseTime(orders[i-1].CreatedAt)
		require.NoError(t, err)
		cur, err := domain.ParseTime(orders[i].CreatedAt)
		require.NoError(t, err)
		assert.False(t, prev.Before(cur), "orders must be newest first")
	}
}

func TestListOrdersTieBreaksOnID(t *testing.T) {
	st, _, orders := newOrderFixture(t)
	ctx := context.Background()

	ts := domain.FormatTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	for _, id := range []string{"order-a", "order-b"} {
		require.NoError(t, st.Set(ctx, "orders/"+id, domain.Order{
			UserID:    "u1",
			Total:     9.99,
			Status:    domain.OrderStatusPending,
			CreatedAt: ts,
		}))
	}

	got, err := orders.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "order-b", got[0].ID)
	assert.Equal(t, "order-a", got[1].ID)
}

func TestListOrdersFiltersByUser(t *testing.T) {
	st, _, orders := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "orders/o1", domain.Order{UserID: "u1", CreatedAt: domain.FormatTime(time.Now())}))
	require.NoError(t, st.Set(ctx, "orders/o2", domain.Order{UserID: "u2", CreatedAt: domain.FormatTime(time.Now())}))

	got, err := orders.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)
}

func TestListOrdersEmpty(t *testing.T) {
	_, _, orders := newOrderFixture(t)

	got, err := orders.ListOrders(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
