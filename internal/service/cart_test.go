package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

func newCartFixture(t *testing.T) (store.Client, domain.CartService) {
	t.Helper()
	st := store.NewMemoryClient()
	sampleCatalog(t, st)
	return st, NewCartService(st, NewCatalogService(st))
}

func TestCartGetAbsentIsEmptyView(t *testing.T) {
	_, carts := newCartFixture(t)

	cart, err := carts.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartAddCreatesLine(t *testing.T) {
	_, carts := newCartFixture(t)

	cart, err := carts.Add(context.Background(), "u1", "product2", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := cart.Items[0]
	assert.Equal(t, "product2", line.ProductID)
	assert.Equal(t, "Strawberry Cupcakes", line.Name)
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 7.98, line.ItemTotal, 1e-9)
	assert.InDelta(t, 7.98, cart.Total, 1e-9)
}

func TestCartAddMergesExistingLine(t *testing.T) {
	_, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product2", 2)
	require.NoError(t, err)
	cart, err := carts.Add(ctx, "u1", "product2", 3)
	require.NoError(t, err)

	// Merge, not a second line: quantities are additive.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	_, carts := newCartFixture(t)

	_, err := carts.Add(context.Background(), "u1", "ghost", 1)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Product not found", domain.ErrorMessage(err))
}

func TestCartAddInvalidQuantity(t *testing.T) {
	_, carts := newCartFixture(t)

	for _, q := range []int{0, -1} {
		_, err := carts.Add(context.Background(), "u1", "product1", q)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
}

func TestCartUpdateQuantityIsAbsolute(t *testing.T) {
	_, carts := newCartFixture(t)
	ctx := context.Background()

	cart, err := carts.Add(ctx, "u1", "product1", 4)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = carts.UpdateQuantity(ctx, "u1", itemID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.InDelta(t, 35.99, cart.Total, 1e-9)
}

func TestCartUpdateQuantityZeroRejected(t *testing.T) {
	_, carts := newCartFixture(t)
	ctx := context.Background()

	cart, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)

	_, err = carts.UpdateQuantity(ctx, "u1", cart.Items[0].ID, 0)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "Valid quantity is required", domain.ErrorMessage(err))
}

func TestCartUpdateMissingLine(t *testing.T) {
	_, carts := newCartFixture(t)

	_, err := carts.UpdateQuantity(context.Background(), "u1", "no-such-line", 2)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Item not found in cart", domain.ErrorMessage(err))
}

func TestCartRemove(t *testing.T) {
	_, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)
	cart, err := carts.Add(ctx, "u1", "product2", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	var removeID string
	for _, line := range cart.Items {
		if line.ProductID == "product1" {
			removeID = line.ID
		}
	}

	cart, err = carts.Remove(ctx, "u1", removeID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "product2", cart.Items[0].ProductID)
}

func TestCartRemoveMissingLine(t *testing.T) {
	_, carts := newCartFixture(t)

	_, err := carts.Remove(context.Background(), "u1", "no-such-line")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Item not found in cart", domain.ErrorMessage(err))
}

func TestCartClearKeepsRecord(t *testing.T) {
	st, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 2)
	require.NoError(t, err)

	cart, err := carts.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	// The record survives the clear; only its lines are gone.
	var stored domain.Cart
	require.NoError(t, st.Get(ctx, "carts/u1", &stored))
	assert.Equal(t, "u1", stored.UserID)
	assert.Empty(t, stored.Items)
}

func TestCartClearWithoutRecord(t *testing.T) {
	_, carts := newCartFixture(t)

	_, err := carts.Clear(context.Background(), "u1")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, "Cart not found", domain.ErrorMessage(err))
}

func TestCartPricingDropsVanishedProducts(t *testing.T) {
	st, carts := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "u1", "product1", 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, "u1", "product2", 3)
	require.NoError(t, err)

	// The product disappears from the catalog after it was carted.
	require.NoError(t, st.Delete(ctx, "products/product1"))

	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "product2", cart.Items[0].ProductID)
	assert.InDelta(t, 3*3.99, cart.Total, 1e-9)

	// The stored record still holds both lines; only the view dropped one.
	var stored domain.Cart
	require.NoError(t, st.Get(ctx, "carts/u1", &stored))
	assert.Len(t, stored.Items, 2)
}
