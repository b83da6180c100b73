package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSetDeletesZeroQuantityEntries(t *testing.T) {
	cart := Cart{UserID: "u1"}
	cart.Set(CartItem{ProductID: "P1", Price: 15, Quantity: 2})
	require.Len(t, cart.Items, 1)

	// Removing the last unit deletes the row; no zero-quantity record stays.
	cart.Set(CartItem{ProductID: "P1", Price: 15, Quantity: 0})
	assert.Empty(t, cart.Items)

	_, ok := cart.Get("P1")
	assert.False(t, ok)
}

func TestCartAddAccumulates(t *testing.T) {
	cart := Cart{UserID: "u1"}
	cart.Add(CartItem{ProductID: "P1", Price: 9.99, Quantity: 1})
	cart.Add(CartItem{ProductID: "P1", Price: 9.99, Quantity: 2})

	item, ok := cart.Get("P1")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)
}

func TestCartTotalIsDerived(t *testing.T) {
	cart := Cart{UserID: "u1"}
	cart.Set(CartItem{ProductID: "P1", Price: 15.00, Quantity: 2})
	cart.Set(CartItem{ProductID: "P2", Price: 9.99, Quantity: 3})
	assert.Equal(t, 59.97, cart.Total())

	cart.Remove("P2")
	assert.Equal(t, 30.00, cart.Total())
}

func TestCartMergeClientWins(t *testing.T) {
	server := Cart{UserID: "u1"}
	server.Set(CartItem{ProductID: "P1", Price: 10, Quantity: 1})
	server.Set(CartItem{ProductID: "P2", Price: 5, Quantity: 4})

	client := Cart{UserID: "u1"}
	client.Set(CartItem{ProductID: "P1", Price: 10, Quantity: 3})
	client.Set(CartItem{ProductID: "P3", Price: 7, Quantity: 1})

	server.Merge(client)

	p1, _ := server.Get("P1")
	assert.Equal(t, 3, p1.Quantity, "client quantity wins on conflict")
	_, hasP2 := server.Get("P2")
	assert.True(t, hasP2, "server-only entries survive")
	_, hasP3 := server.Get("P3")
	assert.True(t, hasP3, "client-only entries are added")
}

func TestSnapshotTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "P1", Price: 15.00, Quantity: 2},
		{ProductID: "P2", Price: 16.99, Quantity: 1},
	}
	assert.Equal(t, 46.99, SnapshotTotal(items))
}
