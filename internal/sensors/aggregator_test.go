package sensors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/sensors"
	"github.com/benmeehan/pc-monitor/tests/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	structuredRecord = models.Record{CPUTemp: 55.5, CPUUsage: 10, CPUFan: 1100, GPUTemp: 40, GPUUsage: 2, GPUFan: 800, RAMUsage: 33.3}
	flatRecord       = models.Record{CPUUsage: 12.5, RAMUsage: 34}
)

func newSource(name string) *mocks.Source {
	s := new(mocks.Source)
	s.On("Name").Return(name)
	return s
}

func TestAggregator_UnreachableAtStartupIsNeverReprobed(t *testing.T) {
	structured := newSource("hardware-monitor")
	structured.On("Fetch", mock.Anything).Return(models.Record{}, sensors.ErrSourceUnavailable).Once()
	flat := newSource("os-sensors")
	flat.On("Fetch", mock.Anything).Return(flatRecord, nil)

	agg := sensors.NewAggregator(zerolog.Nop(), structured, flat)
	agg.Probe(context.Background())

	// The structured source recovers, but it was written off at startup.
	structured.On("Fetch", mock.Anything).Return(structuredRecord, nil)
	for i := 0; i < 3; i++ {
		record, source := agg.Collect(context.Background())
		assert.Equal(t, flatRecord, record)
		assert.Equal(t, "os-sensors", source)
	}

	structured.AssertNumberOfCalls(t, "Fetch", 1)
	assert.Equal(t, []string{"os-sensors"}, agg.ActiveSources())
}

func TestAggregator_PrefersStructuredAndFallsBackPerTick(t *testing.T) {
	structured := newSource("hardware-monitor")
	structured.On("Fetch", mock.Anything).Return(structuredRecord, nil).Twice()
	structured.On("Fetch", mock.Anything).Return(models.Record{}, errors.New("timeout")).Once()
	flat := newSource("os-sensors")
	flat.On("Fetch", mock.Anything).Return(flatRecord, nil)

	agg := sensors.NewAggregator(zerolog.Nop(), structured, flat)
	agg.Probe(context.Background())

	record, source := agg.Collect(context.Background())
	assert.Equal(t, structuredRecord, record)
	assert.Equal(t, "hardware-monitor", source)

	record, source = agg.Collect(context.Background())
	assert.Equal(t, flatRecord, record)
	assert.Equal(t, "os-sensors", source)

	flat.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestAggregator_AllSourcesFailGivesZeroRecord(t *testing.T) {
	structured := newSource("hardware-monitor")
	structured.On("Fetch", mock.Anything).Return(models.Record{}, sensors.ErrSourceUnavailable)
	flat := newSource("os-sensors")
	flat.On("Fetch", mock.Anything).Return(models.Record{}, errors.New("broken"))

	agg := sensors.NewAggregator(zerolog.Nop(), structured, flat)

	var record models.Record
	var source string
	assert.NotPanics(t, func() { record, source = agg.Collect(context.Background()) })
	assert.Equal(t, models.Record{}, record)
	assert.Equal(t, sensors.NoSource, source)
}

func TestAggregator_NormalizesRecords(t *testing.T) {
	flat := newSource("os-sensors")
	flat.On("Fetch", mock.Anything).Return(models.Record{CPUTemp: 41.26, RAMUsage: 70.04}, nil)

	record, _ := sensors.NewAggregator(zerolog.Nop(), flat).Collect(context.Background())

	assert.Equal(t, models.Record{CPUTemp: 41.3, RAMUsage: 70.0}, record)
}
