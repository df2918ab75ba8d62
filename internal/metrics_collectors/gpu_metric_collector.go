package metrics_collectors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
)

// GPUStats is one GPU sample.
type GPUStats struct {
	Temperature float64
	Utilization float64
	FanRPM      int
}

// GPUQuerier reads the first GPU of the host.
type GPUQuerier interface {
	Available() bool
	Query(ctx context.Context) (GPUStats, error)
}

// NvidiaSMI queries NVIDIA GPUs through the nvidia-smi binary.
type NvidiaSMI struct {
	Path string // defaults to nvidia-smi on PATH
}

// Available reports whether nvidia-smi can be found.
func (n *NvidiaSMI) Available() bool {
	_, err := exec.LookPath(n.binary())
	return err == nil
}

// Query runs nvidia-smi for temperature and utilization. nvidia-smi only reports
// fan speed as a percentage, so FanRPM stays zero.
func (n *NvidiaSMI) Query(ctx context.Context) (GPUStats, error) {
	out, err := exec.CommandContext(ctx, n.binary(),
		"--query-gpu=temperature.gpu,utilization.gpu",
		"--format=csv,noheader,nounits",
	).Output()
	if err != nil {
		return GPUStats{}, fmt.Errorf("nvidia-smi failed: %w", err)
	}
	return ParseNvidiaSMI(string(out))
}

func (n *NvidiaSMI) binary() string {
	if n.Path != "" {
		return n.Path
	}
	return "nvidia-smi"
}

// ParseNvidiaSMI parses "temperature, utilization" csv output and keeps the first GPU.
func ParseNvidiaSMI(out string) (GPUStats, error) {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(out), "\n", 2)[0])
	if line == "" {
		return GPUStats{}, errors.New("no gpu reported")
	}

	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return GPUStats{}, fmt.Errorf("unexpected nvidia-smi output %q", line)
	}

	var stats GPUStats
	if v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
		stats.Temperature = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
		stats.Utilization = v
	}
	return stats, nil
}

// GPUMetricCollector fills the GPU fields from a GPUQuerier.
type GPUMetricCollector struct {
	Logger  zerolog.Logger
	Querier GPUQuerier
	Enabled bool
}

func (g *GPUMetricCollector) Name() string {
	return "gpu"
}

func (g *GPUMetricCollector) Collect(ctx context.Context, record *models.Record) error {
	stats, err := g.Querier.Query(ctx)
	if err != nil {
		return err
	}
	record.GPUTemp = stats.Temperature
	record.GPUUsage = stats.Utilization
	record.GPUFan = stats.FanRPM

	g.Logger.Debug().
		Float64("gpu_temp", stats.Temperature).
		Float64("gpu_usage", stats.Utilization).
		Msg("GPU metrics collected")
	return nil
}

// IsEnabled is true when GPU collection is configured and a querier is reachable.
func (g *GPUMetricCollector) IsEnabled() bool {
	return g.Enabled && g.Querier != nil && g.Querier.Available()
}

func (g *GPUMetricCollector) Unit() string {
	return "celsius, percentage"
}

func (g *GPUMetricCollector) Description() string {
	return "Temperature and utilization of the first GPU."
}
