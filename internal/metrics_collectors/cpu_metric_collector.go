package metrics_collectors

import (
	"context"
	"errors"
	"time"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/cpu"
)

// CPUMetricCollector collects CPU usage metrics.
type CPUMetricCollector struct {
	Logger zerolog.Logger
	Window time.Duration // sampling window, defaults to 100ms

	// PercentFunc replaces cpu.PercentWithContext when set.
	PercentFunc func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
}

func (c *CPUMetricCollector) Name() string {
	return "cpu_usage"
}

func (c *CPUMetricCollector) Collect(ctx context.Context, record *models.Record) error {
	percent := c.PercentFunc
	if percent == nil {
		percent = cpu.PercentWithContext
	}
	window := c.Window
	if window <= 0 {
		window = constants.DefaultCPUSampleWindow
	}

	cpuPercentages, err := percent(ctx, window, false)
	if err != nil {
		return err
	}
	if len(cpuPercentages) == 0 {
		return errors.New("cpu usage data is empty")
	}

	record.CPUUsage = cpuPercentages[0]
	c.Logger.Debug().Float64("cpu_usage", record.CPUUsage).Msg("CPU usage collected")
	return nil
}

func (c *CPUMetricCollector) IsEnabled() bool {
	return true
}

func (c *CPUMetricCollector) Unit() string {
	return "percentage"
}

func (c *CPUMetricCollector) Description() string {
	return "Percentage of CPU utilization across all cores."
}
