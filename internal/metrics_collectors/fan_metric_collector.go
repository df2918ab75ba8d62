package metrics_collectors

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
)

// ErrNoFan is returned when the host exposes no readable fan.
var ErrNoFan = errors.New("no fan sensor found")

// DefaultHwmonRoot is where Linux exposes hardware monitor chips.
const DefaultHwmonRoot = "/sys/class/hwmon"

// FanMetricCollector reads the first fan tachometer from the hwmon tree.
type FanMetricCollector struct {
	Logger    zerolog.Logger
	HwmonRoot string
}

func (f *FanMetricCollector) Name() string {
	return "cpu_fan"
}

func (f *FanMetricCollector) Collect(ctx context.Context, record *models.Record) error {
	root := f.HwmonRoot
	if root == "" {
		root = DefaultHwmonRoot
	}

	matches, err := filepath.Glob(filepath.Join(root, "hwmon*", "fan*_input"))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		rpm, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil {
			continue
		}
		record.CPUFan = models.FanRPM(rpm)
		f.Logger.Debug().Str("sensor", path).Int("cpu_fan", record.CPUFan).Msg("Fan speed collected")
		return nil
	}
	return ErrNoFan
}

// IsEnabled reports whether a hwmon tree can exist on this OS.
func (f *FanMetricCollector) IsEnabled() bool {
	return runtime.GOOS == "linux" || f.HwmonRoot != ""
}

func (f *FanMetricCollector) Unit() string {
	return "rpm"
}

func (f *FanMetricCollector) Description() string {
	return "Speed of the first fan reported by the hardware monitor."
}
