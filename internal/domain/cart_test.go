package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cart_Totals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{LineID: "l1", ProductID: "p1", UnitPrice: 65000, Quantity: 2},
		{LineID: "l2", ProductID: "p2", UnitPrice: 30000, Quantity: 1},
	}}

	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, int64(160000), cart.TotalAmount())
}

func Test_Cart_FindPrefersLineID(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{LineID: "l1", ProductID: "p1", Quantity: 1},
		{LineID: "l2", ProductID: "p2", Quantity: 2},
	}}

	byLine, ok := cart.Find("l2")
	require.True(t, ok)
	assert.Equal(t, "p2", byLine.ProductID)

	byProduct, ok := cart.Find("p1")
	require.True(t, ok)
	assert.Equal(t, "l1", byProduct.LineID)

	_, ok = cart.Find("missing")
	assert.False(t, ok)
}

func Test_CartItem_KeyFallsBackToProductID(t *testing.T) {
	assert.Equal(t, "l1", CartItem{LineID: "l1", ProductID: "p1"}.Key())
	assert.Equal(t, "p1", CartItem{ProductID: "p1"}.Key())
}

func Test_OrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		status     OrderStatus
		terminal   bool
		cancelable bool
		receivable bool
	}{
		{OrderStatusPending, false, true, false},
		{OrderStatusConfirmed, false, false, true},
		{OrderStatusPreparing, false, true, false},
		{OrderStatusOutForDelivery, false, false, true},
		{OrderStatusDelivered, true, false, true},
		{OrderStatusCancelled, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.cancelable, tt.status.CanCancel())
			assert.Equal(t, tt.receivable, tt.status.CanConfirmReceipt())
		})
	}
}
