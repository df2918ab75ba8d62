package metrics_collectors

import (
	"context"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/mem"
)

// MemoryMetricCollector collects the percentage of used virtual memory.
type MemoryMetricCollector struct {
	Logger zerolog.Logger

	// VirtualMemoryFunc replaces mem.VirtualMemoryWithContext when set.
	VirtualMemoryFunc func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// Name returns the identifier for the memory metric collector.
func (m *MemoryMetricCollector) Name() string {
	return "ram_usage"
}

// Collect retrieves the percentage of used virtual memory.
func (m *MemoryMetricCollector) Collect(ctx context.Context, record *models.Record) error {
	virtualMemory := m.VirtualMemoryFunc
	if virtualMemory == nil {
		virtualMemory = mem.VirtualMemoryWithContext
	}

	memStats, err := virtualMemory(ctx)
	if err != nil {
		return err
	}

	record.RAMUsage = memStats.UsedPercent
	m.Logger.Debug().Float64("memory_usage_percent", memStats.UsedPercent).Msg("Memory usage collected")
	return nil
}

func (m *MemoryMetricCollector) IsEnabled() bool {
	return true
}

// Unit specifies the unit for memory usage metrics.
func (m *MemoryMetricCollector) Unit() string {
	return "percentage"
}

// Description provides details of the memory usage metrics collected.
func (m *MemoryMetricCollector) Description() string {
	return "Percentage of used virtual memory."
}
