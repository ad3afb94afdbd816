package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		pname   string
		price   decimal.Decimal
		wantMsg string
	}{
		{"empty id", "", "Product 1", decimal.NewFromInt(100), "Id is required"},
		{"empty name", "123", "", decimal.NewFromInt(100), "Name is required"},
		{"negative price", "123", "Product 1", decimal.NewFromInt(-1), "Price must be greater than 0"},
		{"zero price", "123", "Product 1", decimal.Zero, "Price must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.id, tt.pname, tt.price)
			assert.Nil(t, p)
			assert.EqualError(t, err, tt.wantMsg)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestChangeNameAndPrice(t *testing.T) {
	p, err := New("123", "Product 1", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.ChangeName("Product 2"))
	require.NoError(t, p.ChangePrice(decimal.RequireFromString("150.50")))
	assert.Equal(t, "Product 2", p.Name())
	assert.True(t, p.Price().Equal(decimal.RequireFromString("150.5")))

	assert.Error(t, p.ChangePrice(decimal.Zero))
	assert.True(t, p.Price().Equal(decimal.RequireFromString("150.5")))
}
