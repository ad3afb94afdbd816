// Package observability bundles concrete tracer, logger and metric instruments behind
// the vendor-neutral observability.Observability port.
package observability

import (
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
)

type bundle struct {
	tracer  observability.Tracer
	logger  observability.Logger
	metrics instruments
}

// instruments resolves metrics by key. Unregistered keys get a no-op.
type instruments struct {
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

func (in instruments) Counter(key observability.MetricKey) observability.Counter {
	return lookup(in.counters, key, observability.NopCounter())
}

func (in instruments) Histogram(key observability.MetricKey) observability.Histogram {
	return lookup(in.histograms, key, observability.NopHistogram())
}

// New assembles an Observability from the given tracer, logger and instruments.
// Nil pieces fall back to their no-op variants.
func New(
	tracer observability.Tracer,
	logger observability.Logger,
	counters map[observability.MetricKey]observability.Counter,
	histograms map[observability.MetricKey]observability.Histogram,
) observability.Observability {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &bundle{
		tracer: tracer,
		logger: logger,
		metrics: instruments{
			counters:   compact(counters),
			histograms: compact(histograms),
		},
	}
}

func (b *bundle) Tracer() observability.Tracer   { return b.tracer }
func (b *bundle) Logger() observability.Logger   { return b.logger }
func (b *bundle) Metrics() observability.Metrics { return b.metrics }

func lookup[V any](m map[observability.MetricKey]V, key observability.MetricKey, fallback V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// compact copies src without nil entries so callers can't mutate the bundle afterwards.
func compact[V comparable](src map[observability.MetricKey]V) map[observability.MetricKey]V {
	var zero V
	out := make(map[observability.MetricKey]V, len(src))
	for k, v := range src {
		if v != zero {
			out[k] = v
		}
	}
	return out
}
