package sensors

import (
	"context"

	"github.com/benmeehan/pc-monitor/internal/metrics_collectors"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
)

// FlatSource queries local OS sensors through the collector registry. It never
// fails as a whole: a collector error leaves its fields at zero.
type FlatSource struct {
	registry *metrics_collectors.MetricsRegistry
	logger   zerolog.Logger
}

// NewFlatSource creates a FlatSource over registry.
func NewFlatSource(registry *metrics_collectors.MetricsRegistry, logger zerolog.Logger) *FlatSource {
	return &FlatSource{registry: registry, logger: logger}
}

// DefaultRegistry registers the CPU, temperature, fan, memory and GPU collectors.
func DefaultRegistry(gpuEnabled bool, logger zerolog.Logger) *metrics_collectors.MetricsRegistry {
	registry := metrics_collectors.NewMetricsRegistry()
	registry.Register(&metrics_collectors.TemperatureMetricCollector{Logger: logger})
	registry.Register(&metrics_collectors.CPUMetricCollector{Logger: logger})
	registry.Register(&metrics_collectors.FanMetricCollector{Logger: logger})
	registry.Register(&metrics_collectors.GPUMetricCollector{
		Logger:  logger,
		Querier: &metrics_collectors.NvidiaSMI{},
		Enabled: gpuEnabled,
	})
	registry.Register(&metrics_collectors.MemoryMetricCollector{Logger: logger})
	return registry
}

func (f *FlatSource) Name() string {
	return "os-sensors"
}

// Fetch runs every enabled collector in registration order.
func (f *FlatSource) Fetch(ctx context.Context) (models.Record, error) {
	var record models.Record
	for _, collector := range f.registry.GetCollectors() {
		if !collector.IsEnabled() {
			continue
		}
		if err := f.collect(ctx, collector, &record); err != nil {
			f.logger.Debug().Err(err).Str("collector", collector.Name()).Msg("Collector failed, using 0")
		}
	}
	return record.Normalize(), nil
}

// collect isolates a collector so that a panic in an OS binding only zeroes its fields.
func (f *FlatSource) collect(ctx context.Context, c metrics_collectors.MetricCollector, record *models.Record) (err error) {
	scratch := *record
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn().Interface("panic", r).Str("collector", c.Name()).Msg("Collector panicked")
			err = nil
		}
	}()
	if err := c.Collect(ctx, &scratch); err != nil {
		return err
	}
	*record = scratch
	return nil
}
