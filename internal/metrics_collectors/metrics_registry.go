package metrics_collectors

// MetricsRegistry holds the collectors in registration order.
type MetricsRegistry struct {
	collectors []MetricCollector
}

// NewMetricsRegistry creates a new MetricsRegistry instance.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{}
}

// Register adds a collector. A collector with the same name replaces the earlier one.
func (r *MetricsRegistry) Register(collector MetricCollector) {
	for i, c := range r.collectors {
		if c.Name() == collector.Name() {
			r.collectors[i] = collector
			return
		}
	}
	r.collectors = append(r.collectors, collector)
}

// GetCollectors returns the registered collectors in registration order.
func (r *MetricsRegistry) GetCollectors() []MetricCollector {
	return r.collectors
}
