package metrics_collectors_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benmeehan/pc-monitor/internal/metrics_collectors"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUMetricCollector_Collect(t *testing.T) {
	var gotInterval time.Duration
	c := &metrics_collectors.CPUMetricCollector{
		Logger: zerolog.Nop(),
		PercentFunc: func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
			gotInterval = interval
			assert.False(t, percpu)
			return []float64{37.5}, nil
		},
	}

	var r models.Record
	require.NoError(t, c.Collect(context.Background(), &r))
	assert.Equal(t, 37.5, r.CPUUsage)
	assert.Equal(t, 100*time.Millisecond, gotInterval)
}

func TestCPUMetricCollector_EmptyResult(t *testing.T) {
	c := &metrics_collectors.CPUMetricCollector{
		PercentFunc: func(context.Context, time.Duration, bool) ([]float64, error) { return nil, nil },
	}

	var r models.Record
	assert.Error(t, c.Collect(context.Background(), &r))
}

func TestMemoryMetricCollector_Collect(t *testing.T) {
	m := &metrics_collectors.MemoryMetricCollector{
		VirtualMemoryFunc: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{UsedPercent: 58.2}, nil
		},
	}

	var r models.Record
	require.NoError(t, m.Collect(context.Background(), &r))
	assert.Equal(t, 58.2, r.RAMUsage)

	m.VirtualMemoryFunc = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errors.New("no /proc") }
	assert.Error(t, m.Collect(context.Background(), &r))
}

func TestTemperatureMetricCollector_FirstCPUGroupWins(t *testing.T) {
	c := &metrics_collectors.TemperatureMetricCollector{
		TemperaturesFunc: func(context.Context) ([]host.TemperatureStat, error) {
			return []host.TemperatureStat{
				{SensorKey: "acpitz_input", Temperature: 27.8},
				{SensorKey: "coretemp_packageid0_input", Temperature: 51},
				{SensorKey: "coretemp_core0_input", Temperature: 49},
			}, errors.New("some sensors could not be read")
		},
	}

	var r models.Record
	require.NoError(t, c.Collect(context.Background(), &r))
	assert.Equal(t, 51.0, r.CPUTemp)
}

func TestTemperatureMetricCollector_NoCPUSensor(t *testing.T) {
	c := &metrics_collectors.TemperatureMetricCollector{
		TemperaturesFunc: func(context.Context) ([]host.TemperatureStat, error) {
			return []host.TemperatureStat{{SensorKey: "nvme_composite_input", Temperature: 38}}, nil
		},
	}

	var r models.Record
	assert.ErrorIs(t, c.Collect(context.Background(), &r), metrics_collectors.ErrNoCPUSensor)
	assert.Zero(t, r.CPUTemp)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFanMetricCollector_FirstReadableFan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hwmon0", "temp1_input"), "45000\n")
	writeFile(t, filepath.Join(root, "hwmon1", "fan1_input"), "garbage\n")
	writeFile(t, filepath.Join(root, "hwmon1", "fan2_input"), "1342\n")
	writeFile(t, filepath.Join(root, "hwmon2", "fan1_input"), "800\n")

	f := &metrics_collectors.FanMetricCollector{HwmonRoot: root}

	var r models.Record
	require.True(t, f.IsEnabled())
	require.NoError(t, f.Collect(context.Background(), &r))
	assert.Equal(t, 1342, r.CPUFan)
}

func TestFanMetricCollector_NoFans(t *testing.T) {
	f := &metrics_collectors.FanMetricCollector{HwmonRoot: t.TempDir()}

	var r models.Record
	assert.ErrorIs(t, f.Collect(context.Background(), &r), metrics_collectors.ErrNoFan)
}

func TestParseNvidiaSMI(t *testing.T) {
	stats, err := metrics_collectors.ParseNvidiaSMI("46, 13\n39, 0\n")
	require.NoError(t, err)
	assert.Equal(t, metrics_collectors.GPUStats{Temperature: 46, Utilization: 13}, stats)

	stats, err = metrics_collectors.ParseNvidiaSMI("52, [N/A]")
	require.NoError(t, err)
	assert.Equal(t, 52.0, stats.Temperature)
	assert.Zero(t, stats.Utilization)

	_, err = metrics_collectors.ParseNvidiaSMI("")
	assert.Error(t, err)
	_, err = metrics_collectors.ParseNvidiaSMI("No devices were found")
	assert.Error(t, err)
}

type stubGPU struct {
	available bool
	stats     metrics_collectors.GPUStats
	err       error
}

func (s *stubGPU) Available() bool { return s.available }

func (s *stubGPU) Query(context.Context) (metrics_collectors.GPUStats, error) {
	return s.stats, s.err
}

func TestGPUMetricCollector(t *testing.T) {
	g := &metrics_collectors.GPUMetricCollector{
		Querier: &stubGPU{available: true, stats: metrics_collectors.GPUStats{Temperature: 61, Utilization: 88.5}},
		Enabled: true,
	}

	var r models.Record
	require.True(t, g.IsEnabled())
	require.NoError(t, g.Collect(context.Background(), &r))
	assert.Equal(t, 61.0, r.GPUTemp)
	assert.Equal(t, 88.5, r.GPUUsage)
	assert.Zero(t, r.GPUFan)

	g.Enabled = false
	assert.False(t, g.IsEnabled())
	g.Enabled = true
	g.Querier = &stubGPU{available: false}
	assert.False(t, g.IsEnabled())
}

func TestMetricsRegistry_ReplacesByName(t *testing.T) {
	registry := metrics_collectors.NewMetricsRegistry()
	registry.Register(&metrics_collectors.CPUMetricCollector{})
	registry.Register(&metrics_collectors.MemoryMetricCollector{})
	replacement := &metrics_collectors.CPUMetricCollector{Window: time.Second}
	registry.Register(replacement)

	collectors := registry.GetCollectors()
	require.Len(t, collectors, 2)
	assert.Same(t, replacement, collectors[0])
}
