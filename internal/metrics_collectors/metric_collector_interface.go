package metrics_collectors

import (
	"context"

	"github.com/benmeehan/pc-monitor/internal/models"
)

// MetricCollector fills one or more fields of a Record from a local OS sensor.
// Collect leaves the fields untouched when it returns an error.
type MetricCollector interface {
	Name() string                                             // Name of the metric (e.g., "cpu_usage")
	Collect(ctx context.Context, record *models.Record) error // Collect the metric data into record
	IsEnabled() bool                                          // Whether the host can provide the metric
	Unit() string                                             // Unit of the metric (e.g., "percentage", "rpm")
	Description() string                                      // Description of the metric
}
