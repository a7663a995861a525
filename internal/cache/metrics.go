package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts memo lookups per operation.
type Metrics struct {
	lookups   *prometheus.CounterVec
	evictions prometheus.Counter
}

// NewMetrics registers the cache collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statute_cache_lookups_total",
				Help: "Memoized store lookups by operation and result.",
			},
			[]string{"operation", "result"},
		),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statute_cache_evictions_total",
			Help: "Live entries dropped because the cache was full.",
		}),
	}
	if err := reg.Register(m.lookups); err != nil {
		return nil, err
	}
	if err := reg.Register(m.evictions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) hit(op string) {
	if m != nil {
		m.lookups.WithLabelValues(op, "hit").Inc()
	}
}

func (m *Metrics) miss(op string) {
	if m != nil {
		m.lookups.WithLabelValues(op, "miss").Inc()
	}
}

func (m *Metrics) evict() {
	if m != nil {
		m.evictions.Inc()
	}
}
