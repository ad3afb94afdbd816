package memory

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, id string, itemIDs ...string) *order.Order {
	t.Helper()
	items := make([]order.OrderItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := order.NewOrderItem(itemID, "Item "+itemID, decimal.NewFromInt(100), "p1", 2)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.New(id, "c1", items)
	require.NoError(t, err)
	return o
}

func TestOrderRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	o := newOrder(t, "o1", "i1", "i2")

	require.NoError(t, repo.Create(ctx, o))
	assert.ErrorIs(t, repo.Create(ctx, o), order.ErrConflict)

	got, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, o.Equal(got))
	assert.True(t, decimal.NewFromInt(400).Equal(got.Total()))

	_, err = repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepositoryItemIDsAreScopedToOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	o1 := newOrder(t, "o1", "1")
	o2 := newOrder(t, "o2", "1")

	require.NoError(t, repo.Create(ctx, o1))
	require.NoError(t, repo.Create(ctx, o2))

	for _, want := range []*order.Order{o1, o2} {
		got, err := repo.Find(ctx, want.ID())
		require.NoError(t, err)
		assert.True(t, want.Equal(got), want.ID())
	}
}

func TestOrderRepositoryIsolatesStoredCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	o := newOrder(t, "o1", "i1")
	require.NoError(t, repo.Create(ctx, o))

	extra, err := order.NewOrderItem("i2", "Item 2", decimal.NewFromInt(50), "p2", 1)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(extra))

	got, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ItemCount())

	require.NoError(t, got.AddItem(extra))
	again, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.ItemCount())
}

func TestOrderRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	assert.ErrorIs(t, repo.Update(ctx, newOrder(t, "o1", "i1")), order.ErrNotFound)

	o := newOrder(t, "o1", "i1")
	require.NoError(t, repo.Create(ctx, o))

	extra, err := order.NewOrderItem("i2", "Item 2", decimal.NewFromInt(50), "p2", 4)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(extra))
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.Find(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, o.Equal(got))
	assert.True(t, decimal.NewFromInt(400).Equal(got.Total()))
}

func TestOrderRepositoryFindAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, id := range []string{"o3", "o1", "o2"} {
		require.NoError(t, repo.Create(ctx, newOrder(t, id, "i1")))
	}

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "o1", all[0].ID())
	assert.Equal(t, "o2", all[1].ID())
	assert.Equal(t, "o3", all[2].ID())
}

func TestOrderRepositoryRejectsNilAndCancelledContext(t *testing.T) {
	repo := NewOrderRepository()
	assert.Error(t, repo.Create(context.Background(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Find(ctx, "o1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	c, err := customer.New("c1", "Customer 1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))
	assert.ErrorIs(t, repo.Create(ctx, c), customer.ErrConflict)

	addr, err := customer.NewAddress("Street 1", 1, "13330-250", "São Paulo")
	require.NoError(t, err)
	c.ChangeAddress(addr)
	require.NoError(t, c.Activate())
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Find(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, got.IsActive())
	gotAddr, ok := got.Address()
	require.True(t, ok)
	assert.Equal(t, "Street 1", gotAddr.Street())

	_, err = repo.Find(ctx, "c2")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p, err := product.New("p1", "Product 1", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, p.ChangePrice(decimal.NewFromInt(200)))
	require.NoError(t, repo.Update(ctx, p))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(all[0].Price()))

	missing, err := product.New("p2", "Product 2", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, missing), product.ErrNotFound)
}
