package gormstore

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMappingRoundTrip(t *testing.T) {
	i1, err := order.NewOrderItem("i1", "Item 1", decimal.RequireFromString("10.50"), "p1", 2)
	require.NoError(t, err)
	i2, err := order.NewOrderItem("i2", "Item 2", decimal.NewFromInt(5), "p2", 3)
	require.NoError(t, err)
	o, err := order.New("o1", "c1", []order.OrderItem{i2, i1})
	require.NoError(t, err)

	row := toOrderModel(o)
	assert.Equal(t, "o1", row.ID)
	assert.Equal(t, "c1", row.CustomerID)
	assert.True(t, decimal.RequireFromString("36").Equal(row.Total))
	require.Len(t, row.Items, 2)
	assert.Equal(t, "i2", row.Items[0].ID)
	assert.Equal(t, 0, row.Items[0].Position)
	assert.Equal(t, "i1", row.Items[1].ID)
	assert.Equal(t, 1, row.Items[1].Position)
	assert.Equal(t, "o1", row.Items[1].OrderID)

	back, err := toOrderDomain(row)
	require.NoError(t, err)
	assert.True(t, o.Equal(back))
	assert.Equal(t, "i2", back.Items()[0].ID())
}

func TestOrderMappingRejectsInvalidRows(t *testing.T) {
	_, err := toOrderDomain(OrderModel{ID: "o1", CustomerID: "c1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrValidation)

	_, err = toOrderDomain(OrderModel{ID: "o1", CustomerID: "c1", Items: []OrderItemModel{
		{ID: "i1", OrderID: "o1", ProductID: "p1", Name: "x", Price: decimal.NewFromInt(1), Quantity: 0},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrValidation)
}

func TestCustomerMapping(t *testing.T) {
	c, err := customer.New("c1", "Customer 1")
	require.NoError(t, err)

	row := toCustomerModel(c)
	assert.Empty(t, row.Street)
	back, err := toCustomerDomain(row)
	require.NoError(t, err)
	_, hasAddr := back.Address()
	assert.False(t, hasAddr)

	addr, err := customer.NewAddress("Street 1", 1, "13330-250", "São Paulo")
	require.NoError(t, err)
	c.ChangeAddress(addr)
	require.NoError(t, c.Activate())
	require.NoError(t, c.AddRewardPoints(10))

	back, err = toCustomerDomain(toCustomerModel(c))
	require.NoError(t, err)
	assert.True(t, back.IsActive())
	assert.Equal(t, 10, back.RewardPoints())
	gotAddr, ok := back.Address()
	require.True(t, ok)
	assert.Equal(t, addr, gotAddr)
}
