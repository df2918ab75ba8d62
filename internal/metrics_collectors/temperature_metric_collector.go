package metrics_collectors

import (
	"context"
	"errors"
	"strings"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/host"
)

// ErrNoCPUSensor is returned when no sensor group looks like a CPU.
var ErrNoCPUSensor = errors.New("no cpu temperature sensor found")

// DefaultCPUSensorHints are matched case-insensitively against sensor keys.
var DefaultCPUSensorHints = []string{"coretemp", "k10temp", "cpu"}

// TemperatureMetricCollector reads the CPU temperature from the OS sensor table.
type TemperatureMetricCollector struct {
	Logger zerolog.Logger
	Hints  []string

	// TemperaturesFunc replaces host.SensorsTemperaturesWithContext when set.
	TemperaturesFunc func(ctx context.Context) ([]host.TemperatureStat, error)
}

func (t *TemperatureMetricCollector) Name() string {
	return "cpu_temp"
}

// Collect uses the first sensor whose key contains a CPU hint.
func (t *TemperatureMetricCollector) Collect(ctx context.Context, record *models.Record) error {
	temperatures := t.TemperaturesFunc
	if temperatures == nil {
		temperatures = host.SensorsTemperaturesWithContext
	}
	hints := t.Hints
	if len(hints) == 0 {
		hints = DefaultCPUSensorHints
	}

	// gopsutil returns partial results alongside warnings.
	stats, err := temperatures(ctx)
	if err != nil && len(stats) == 0 {
		return err
	}

	for _, stat := range stats {
		key := strings.ToLower(stat.SensorKey)
		for _, hint := range hints {
			if strings.Contains(key, hint) {
				record.CPUTemp = stat.Temperature
				t.Logger.Debug().Str("sensor", stat.SensorKey).Float64("cpu_temp", stat.Temperature).Msg("CPU temperature collected")
				return nil
			}
		}
	}
	return ErrNoCPUSensor
}

func (t *TemperatureMetricCollector) IsEnabled() bool {
	return true
}

func (t *TemperatureMetricCollector) Unit() string {
	return "celsius"
}

func (t *TemperatureMetricCollector) Description() string {
	return "CPU package or core temperature."
}
