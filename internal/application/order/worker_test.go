package order

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSubscriber map[string]domoutbox.Handler

func (m mapSubscriber) Subscribe(name string, h domoutbox.Handler) { m[name] = h }

type otherEvent struct{}

func (otherEvent) EventName() string { return "order.created" }

func TestWorkerCountsOrderEvents(t *testing.T) {
	metrics := newRecordingMetrics()
	sub := mapSubscriber{}
	NewWorker(sub, testObservability{metrics}).Start()

	require.Contains(t, sub, "order.created")
	require.Contains(t, sub, "order.items_changed")

	item, err := domain.NewOrderItem("i1", "Item", decimal.NewFromInt(10), "p1", 1)
	require.NoError(t, err)
	o, err := domain.New("o1", "c1", []domain.OrderItem{item})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sub["order.created"](ctx, domain.NewOrderCreatedEvent(o)))
	require.NoError(t, sub["order.items_changed"](ctx, domain.NewOrderItemsChangedEvent(o, domain.ChangeItemAdded, "i1")))
	require.NoError(t, sub["order.created"](ctx, otherEvent{}))

	events := metrics.counters[observability.MOrderEvents]
	assert.Equal(t, 1, events.count("event", "order.created"))
	assert.Equal(t, 1, events.count("event", "order.items_changed"))
	assert.Equal(t, 1, events.count("change", domain.ChangeItemAdded))

	req := metrics.counters[observability.MUsecaseRequests]
	assert.Equal(t, 1, req.count("outcome", "ignored"))
}
