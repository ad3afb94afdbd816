package order

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domoutbox.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type recordingCounter struct {
	mu    sync.Mutex
	calls [][]observability.Label
}

func (c *recordingCounter) Add(_ float64, labels ...observability.Label) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, labels)
}

func (c *recordingCounter) count(key, value string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ls := range c.calls {
		for _, l := range ls {
			if l.Key == key && l.Value == value {
				n++
			}
		}
	}
	return n
}

type recordingMetrics struct {
	counters map[observability.MetricKey]*recordingCounter
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counters: map[observability.MetricKey]*recordingCounter{}}
}

func (m *recordingMetrics) Counter(k observability.MetricKey) observability.Counter {
	c, ok := m.counters[k]
	if !ok {
		c = &recordingCounter{}
		m.counters[k] = c
	}
	return c
}

func (m *recordingMetrics) Histogram(observability.MetricKey) observability.Histogram {
	return observability.NopHistogram()
}

type testObservability struct{ metrics *recordingMetrics }

func (testObservability) Tracer() observability.Tracer       { return observability.NopTracer() }
func (testObservability) Logger() observability.Logger       { return observability.NopLogger() }
func (o testObservability) Metrics() observability.Metrics { return o.metrics }

type fixture struct {
	orders    *memory.OrderRepository
	customers *memory.CustomerRepository
	products  *memory.ProductRepository
	publisher *recordingPublisher
	metrics   *recordingMetrics
	ids       *seqIDs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orders:    memory.NewOrderRepository(),
		customers: memory.NewCustomerRepository(),
		products:  memory.NewProductRepository(),
		publisher: &recordingPublisher{},
		metrics:   newRecordingMetrics(),
		ids:       &seqIDs{},
	}
	ctx := context.Background()

	c, err := customer.New("c1", "Customer 1")
	require.NoError(t, err)
	require.NoError(t, f.customers.Create(ctx, c))

	for _, id := range []string{"p1", "p2"} {
		p, err := product.New(id, "Product "+id, decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, f.products.Create(ctx, p))
	}
	return f
}

func (f *fixture) useCase() *CreateOrderUseCase {
	return NewCreateOrderUseCase(f.orders, f.customers, f.products, f.ids, f.publisher, testObservability{f.metrics})
}

func (f *fixture) service() *Service {
	return NewService(f.orders, f.products, f.ids, f.publisher, nil)
}
