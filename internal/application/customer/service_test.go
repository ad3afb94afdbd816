package customer

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

var address = AddressInput{Street: "Rua dois", Number: 2, Zip: "12345-678", City: "São Paulo"}

func TestCreateActivatedCustomer(t *testing.T) {
	repo := memory.NewCustomerRepository()
	svc := NewService(repo, fixedIDs{"gen"}, nil)

	c, err := svc.Create(context.Background(), CreateInput{Name: "Wesley Willians", Address: &address, Activate: true})
	require.NoError(t, err)
	assert.Equal(t, "gen", c.ID())
	assert.True(t, c.IsActive())

	stored, err := svc.Get(context.Background(), "gen")
	require.NoError(t, err)
	addr, ok := stored.Address()
	require.True(t, ok)
	assert.Equal(t, "Rua dois", addr.Street())

	_, err = svc.Create(context.Background(), CreateInput{ID: "gen", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(memory.NewCustomerRepository(), fixedIDs{"x"}, nil)

	_, err := svc.Create(context.Background(), CreateInput{})
	assert.Equal(t, domain.MsgNameRequired, validation.Message(err))

	_, err = svc.Create(context.Background(), CreateInput{Name: "n", Activate: true})
	assert.Equal(t, domain.MsgAddressRequired, validation.Message(err))

	_, err = svc.Create(context.Background(), CreateInput{Name: "n", Address: &AddressInput{Street: "s", Zip: "z", City: "c"}})
	assert.Equal(t, domain.MsgNumberNotPositive, validation.Message(err))

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestActivateRequiresAddress(t *testing.T) {
	svc := NewService(memory.NewCustomerRepository(), fixedIDs{"c1"}, nil)
	_, err := svc.Create(context.Background(), CreateInput{Name: "Customer 1"})
	require.NoError(t, err)

	_, err = svc.Activate(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ChangeAddress(context.Background(), "c1", address)
	require.NoError(t, err)
	c, err := svc.Activate(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, c.IsActive())

	stored, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive())

	_, err = svc.Activate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
