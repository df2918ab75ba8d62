package sensors

import (
	"context"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
)

// NoSource is reported when every active source failed on a tick.
const NoSource = "none"

// Aggregator consults an ordered list of sources. Which sources take part is
// decided once by Probe; a source that was down at startup is never retried.
// The last source is the best-effort fallback and always takes part.
type Aggregator struct {
	sources []Source
	active  []Source
	probed  bool
	logger  zerolog.Logger
}

// NewAggregator creates an Aggregator over sources in preference order.
func NewAggregator(logger zerolog.Logger, sources ...Source) *Aggregator {
	return &Aggregator{sources: sources, logger: logger}
}

// Probe fetches once from every source but the last and keeps those that answered.
func (a *Aggregator) Probe(ctx context.Context) {
	a.active = a.active[:0]
	for i, s := range a.sources {
		if i == len(a.sources)-1 {
			a.active = append(a.active, s)
			break
		}
		if _, err := s.Fetch(ctx); err != nil {
			a.logger.Info().Err(err).Str("source", s.Name()).Msg("Sensor source not available, using fallback for this session")
			continue
		}
		a.logger.Info().Str("source", s.Name()).Msg("Sensor source connected")
		a.active = append(a.active, s)
	}
	a.probed = true
}

// ActiveSources returns the names of the sources chosen by Probe.
func (a *Aggregator) ActiveSources() []string {
	names := make([]string, 0, len(a.active))
	for _, s := range a.active {
		names = append(names, s.Name())
	}
	return names
}

// Collect returns the first record an active source produces and that source's
// name. It never fails: if every source errors the record is all zeros.
func (a *Aggregator) Collect(ctx context.Context) (models.Record, string) {
	if !a.probed {
		a.Probe(ctx)
	}
	for _, s := range a.active {
		record, err := s.Fetch(ctx)
		if err != nil {
			a.logger.Debug().Err(err).Str("source", s.Name()).Msg("Sensor source failed, trying next")
			continue
		}
		return record.Normalize(), s.Name()
	}
	return models.Record{}, NoSource
}
