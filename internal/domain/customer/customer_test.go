package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerValidation(t *testing.T) {
	_, err := New("", "John")
	assert.EqualError(t, err, "Id is required")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = New("123", "")
	assert.EqualError(t, err, "Name is required")
}

func TestChangeName(t *testing.T) {
	c, err := New("123", "John")
	require.NoError(t, err)

	require.NoError(t, c.ChangeName("Jane"))
	assert.Equal(t, "Jane", c.Name())

	assert.EqualError(t, c.ChangeName(""), "Name is required")
	assert.Equal(t, "Jane", c.Name())
}

func TestActivateRequiresAddress(t *testing.T) {
	c, err := New("1", "Customer 1")
	require.NoError(t, err)

	assert.EqualError(t, c.Activate(), "Address is mandatory to activate a customer")
	assert.False(t, c.IsActive())

	addr, err := NewAddress("Street 1", 123, "13330-250", "São Paulo")
	require.NoError(t, err)
	c.ChangeAddress(addr)

	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())

	c.Deactivate()
	assert.False(t, c.IsActive())
}

func TestNewAddressValidation(t *testing.T) {
	tests := []struct {
		street, zip, city string
		number            int
		want              string
	}{
		{"", "z", "c", 1, "Street is required"},
		{"s", "z", "c", 0, "Number must be greater than 0"},
		{"s", "", "c", 1, "Zip is required"},
		{"s", "z", "", 1, "City is required"},
	}
	for _, tt := range tests {
		_, err := NewAddress(tt.street, tt.number, tt.zip, tt.city)
		assert.EqualError(t, err, tt.want)
	}
}

func TestRewardPoints(t *testing.T) {
	c, err := New("1", "Customer 1")
	require.NoError(t, err)
	assert.Zero(t, c.RewardPoints())

	require.NoError(t, c.AddRewardPoints(10))
	require.NoError(t, c.AddRewardPoints(10))
	assert.Equal(t, 20, c.RewardPoints())

	assert.Error(t, c.AddRewardPoints(-1))
}

func TestRestore(t *testing.T) {
	addr, err := NewAddress("Rua dois", 2, "12345-678", "São Paulo")
	require.NoError(t, err)

	c, err := Restore("123", "Wesley Willians", &addr, true, 5)
	require.NoError(t, err)
	assert.True(t, c.IsActive())
	assert.Equal(t, 5, c.RewardPoints())
	got, ok := c.Address()
	assert.True(t, ok)
	assert.Equal(t, addr, got)

	_, err = Restore("123", "Wesley Willians", nil, true, 0)
	assert.EqualError(t, err, "Address is mandatory to activate a customer")
}

func TestCloneCopiesAddress(t *testing.T) {
	addr, err := NewAddress("Street 1", 1, "Zipcode 1", "City 1")
	require.NoError(t, err)
	c, err := New("1", "Customer 1")
	require.NoError(t, err)
	c.ChangeAddress(addr)

	clone := c.Clone()
	other, err := NewAddress("Street 2", 2, "Zipcode 2", "City 2")
	require.NoError(t, err)
	clone.ChangeAddress(other)

	got, _ := c.Address()
	assert.Equal(t, "Street 1", got.Street())
}
