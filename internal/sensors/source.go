// Package sensors turns the available telemetry backends into one Record per tick.
package sensors

import (
	"context"
	"errors"

	"github.com/benmeehan/pc-monitor/internal/models"
)

// ErrSourceUnavailable means the backend could not be reached or answered badly.
var ErrSourceUnavailable = errors.New("sensor source unavailable")

// Source fetches a complete Record from one backend. A non-nil error means the
// backend produced no data at all; missing individual values are zero.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (models.Record, error)
}
