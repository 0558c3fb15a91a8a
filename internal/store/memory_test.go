package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClientGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	type rec struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	require.NoError(t, c.Set(ctx, "products/p1", rec{Name: "Chocolate Cake", Price: 35.99}))

	var got rec
	require.NoError(t, c.Get(ctx, "products/p1", &got))
	assert.Equal(t, "Chocolate Cake", got.Name)
	assert.Equal(t, 35.99, got.Price)
}

func TestMemoryClientGetAbsent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	var v map[string]interface{}
	err := c.Get(ctx, "users/nobody", &v)
	assert.True(t, IsNotFound(err))
}

func TestMemoryClientDeleteReadsBackAsAbsent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	require.NoError(t, c.Set(ctx, "users/u1", map[string]string{"email": "a@b.c"}))
	require.NoError(t, c.Delete(ctx, "users/u1"))

	var v map[string]interface{}
	assert.True(t, IsNotFound(c.Get(ctx, "users/u1", &v)))

	// Deleting again is a no-op.
	assert.NoError(t, c.Delete(ctx, "users/u1"))
}

func TestMemoryClientUpdateMergesSiblings(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	require.NoError(t, c.Set(ctx, "users/u1", map[string]string{
		"email":     "a@b.c",
		"createdAt": "2025-01-01T00:00:00.000Z",
	}))
	require.NoError(t, c.Update(ctx, "users/u1", map[string]interface{}{
		"lastLogin": "2025-02-01T00:00:00.000Z",
	}))

	var got map[string]string
	require.NoError(t, c.Get(ctx, "users/u1", &got))
	assert.Equal(t, "a@b.c", got["email"])
	assert.Equal(t, "2025-01-01T00:00:00.000Z", got["createdAt"])
	assert.Equal(t, "2025-02-01T00:00:00.000Z", got["lastLogin"])
}

func TestMemoryClientPrunesEmptyObjects(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	// An empty items map is dropped on write, like the real database does,
	// but the record's remaining fields survive.
	require.NoError(t, c.Set(ctx, "carts/u1", map[string]interface{}{
		"userId":    "u1",
		"items":     map[string]interface{}{},
		"updatedAt": "2025-01-01T00:00:00.000Z",
	}))

	var got map[string]interface{}
	require.NoError(t, c.Get(ctx, "carts/u1", &got))
	assert.Equal(t, "u1", got["userId"])
	_, hasItems := got["items"]
	assert.False(t, hasItems)
}

func TestMemoryClientPushGeneratesDistinctKeys(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	k1, err := c.Push(ctx, "orders", map[string]string{"userId": "u1"})
	require.NoError(t, err)
	k2, err := c.Push(ctx, "orders", map[string]string{"userId": "u1"})
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)

	var all map[string]map[string]string
	require.NoError(t, c.Get(ctx, "orders", &all))
	assert.Len(t, all, 2)
}

func TestMemoryClientDetachesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	in := map[string]interface{}{"quantity": 2}
	require.NoError(t, c.Set(ctx, "carts/u1/items/i1", in))

	// Mutating the caller's map after Set must not affect stored data.
	in["quantity"] = 99

	var got map[string]int
	require.NoError(t, c.Get(ctx, "carts/u1/items/i1", &got))
	assert.Equal(t, 2, got["quantity"])
}
