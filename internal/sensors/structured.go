package sensors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/benmeehan/pc-monitor/internal/models"
	http_utils "github.com/benmeehan/pc-monitor/pkg/httpUtils"
	"github.com/rs/zerolog"
)

// Field chains for the hardware monitor tree. Intel is tried before AMD for the CPU
// and NVIDIA before AMD for the GPU.
var (
	CPUTempChain = Chain{
		{"Intel", "Temperatures", "Core Average"},
		{"Intel", "Temperatures", "CPU Package"},
		{"Intel", "Temperatures", "Core Max"},
		{"AMD", "Temperatures", "Core (Tctl/Tdie)"},
	}
	CPUUsageChain = Chain{
		{"Intel", "Load", "CPU Total"},
		{"AMD", "Load", "CPU Total"},
	}
	CPUFanChain = Chain{
		{"HP", "Fans", "Fan"},
		{"Mainboard", "Fans", "Fan #1"},
		{"Mainboard", "Fans", "CPU Fan"},
	}
	GPUTempChain = Chain{
		{"NVIDIA", "Temperatures", "GPU Core"},
		{"AMD", "Temperatures", "GPU Core"},
	}
	GPUUsageChain = Chain{
		{"NVIDIA", "Load", "GPU Core"},
		{"AMD", "Load", "GPU Core"},
	}
	GPUFanChain = Chain{
		{"NVIDIA", "Fans", "GPU Fan"},
		{"AMD", "Fans", "GPU Fan"},
	}
	RAMUsageChain = Chain{
		{"Memory", "Load", "Memory"},
	}
)

// StructuredSource reads the JSON sensor tree served by a local hardware monitor.
type StructuredSource struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewStructuredSource creates a StructuredSource with the given request timeout.
func NewStructuredSource(url string, timeout time.Duration, logger zerolog.Logger) *StructuredSource {
	return &StructuredSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (s *StructuredSource) Name() string {
	return "hardware-monitor"
}

// FetchTree downloads and decodes the sensor tree.
func (s *StructuredSource) FetchTree(ctx context.Context) (*models.SensorNode, error) {
	var root models.SensorNode
	if err := http_utils.GetJSON(ctx, s.client, s.url, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &root, nil
}

// Fetch builds a Record from the tree. Values the tree does not carry are zero.
func (s *StructuredSource) Fetch(ctx context.Context) (models.Record, error) {
	root, err := s.FetchTree(ctx)
	if err != nil {
		return models.Record{}, err
	}
	return RecordFromTree(root), nil
}

// RecordFromTree resolves every field chain against root.
func RecordFromTree(root *models.SensorNode) models.Record {
	return models.Record{
		CPUTemp:  CPUTempChain.Resolve(root),
		CPUUsage: CPUUsageChain.Resolve(root),
		CPUFan:   models.FanRPM(CPUFanChain.Resolve(root)),
		GPUTemp:  GPUTempChain.Resolve(root),
		GPUUsage: GPUUsageChain.Resolve(root),
		GPUFan:   models.FanRPM(GPUFanChain.Resolve(root)),
		RAMUsage: RAMUsageChain.Resolve(root),
	}.Normalize()
}
