package sensors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/benmeehan/pc-monitor/internal/metrics_collectors"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/sensors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	name    string
	enabled bool
	fill    func(r *models.Record)
	err     error
	panics  bool
}

func (s *stubCollector) Name() string        { return s.name }
func (s *stubCollector) IsEnabled() bool     { return s.enabled }
func (s *stubCollector) Unit() string        { return "" }
func (s *stubCollector) Description() string { return "" }

func (s *stubCollector) Collect(ctx context.Context, r *models.Record) error {
	if s.panics {
		r.GPUTemp = 99
		panic("binding crashed")
	}
	if s.fill != nil {
		s.fill(r)
	}
	return s.err
}

func TestFlatSource_FailuresBecomeZero(t *testing.T) {
	registry := metrics_collectors.NewMetricsRegistry()
	registry.Register(&stubCollector{name: "cpu_usage", enabled: true, fill: func(r *models.Record) { r.CPUUsage = 21.04 }})
	registry.Register(&stubCollector{name: "cpu_temp", enabled: true, fill: func(r *models.Record) { r.CPUTemp = 80 }, err: errors.New("permission denied")})
	registry.Register(&stubCollector{name: "gpu", enabled: true, panics: true})
	registry.Register(&stubCollector{name: "cpu_fan", enabled: false, fill: func(r *models.Record) { r.CPUFan = 900 }})
	registry.Register(&stubCollector{name: "ram_usage", enabled: true, fill: func(r *models.Record) { r.RAMUsage = 40.56 }})

	record, err := sensors.NewFlatSource(registry, zerolog.Nop()).Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.Record{CPUUsage: 21.0, RAMUsage: 40.6}, record)
}

func TestDefaultRegistry_Order(t *testing.T) {
	registry := sensors.DefaultRegistry(false, zerolog.Nop())

	var got []string
	for _, c := range registry.GetCollectors() {
		got = append(got, c.Name())
	}
	assert.Equal(t, []string{"cpu_temp", "cpu_usage", "cpu_fan", "gpu", "ram_usage"}, got)
}
