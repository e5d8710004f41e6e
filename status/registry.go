package status

import "sync/atomic"

// Registry holds named counters and gauges
// Writers cache the pointers once at setup and store into the atomics every frame;
// readers on other goroutines see consistent per-metric values without locking
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Counter returns the counter for key, creating it at zero
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Counters.Get(key)
}

// Gauge returns the gauge for key, creating it at zero
func (r *Registry) Gauge(key string) *AtomicFloat {
	return r.Gauges.Get(key)
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// Attrs flattens every metric into alternating key/value pairs, counters first,
// each group in key order, for structured logging
func (r *Registry) Attrs() []any {
	attrs := make([]any, 0, 2*r.TotalCount())
	r.Counters.Range(func(key string, c *atomic.Int64) {
		attrs = append(attrs, key, c.Load())
	})
	r.Gauges.Range(func(key string, g *AtomicFloat) {
		attrs = append(attrs, key, g.Get())
	})
	return attrs
}
