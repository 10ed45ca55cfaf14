package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("merges quantity for same product and attributes", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		require.NoError(t, cart.AddItem(productID, 2, map[string]string{"size": "M"}))
		require.NoError(t, cart.AddItem(productID, 3, map[string]string{"size": "M"}))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("keeps separate lines for different attributes", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)

		require.NoError(t, cart.AddItem(productID, 1, map[string]string{"size": "M"}))
		require.NoError(t, cart.AddItem(productID, 1, map[string]string{"size": "L"}))

		assert.Len(t, cart.Items, 2)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)
		assert.Error(t, cart.AddItem(productID, 0, nil))
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(uuid.New(), 1, nil))
	itemID := cart.Items[0].ID

	require.NoError(t, cart.UpdateItemQuantity(itemID, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.Error(t, cart.UpdateItemQuantity(itemID, 0))
	assert.Error(t, cart.UpdateItemQuantity(uuid.New(), 2))
}

func TestCartRemoveAndClear(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(uuid.New(), 1, nil))
	require.NoError(t, cart.AddItem(uuid.New(), 2, nil))

	require.NoError(t, cart.RemoveItem(cart.Items[0].ID))
	assert.Len(t, cart.Items, 1)
	assert.Error(t, cart.RemoveItem(uuid.New()))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}
