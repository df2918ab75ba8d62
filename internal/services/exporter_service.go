package services

import (
	"context"
	"net"
	"sync"

	"github.com/benmeehan/pc-monitor/internal/metrics"
	"github.com/rs/zerolog"
)

// ExporterService runs the Prometheus exporter in the background.
type ExporterService struct {
	exporter *metrics.Exporter
	listen   string
	logger   zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	addr   net.Addr
}

// NewExporterService creates an ExporterService serving exporter on listen.
func NewExporterService(exporter *metrics.Exporter, listen string, logger zerolog.Logger) *ExporterService {
	return &ExporterService{
		exporter: exporter,
		listen:   listen,
		logger:   logger,
	}
}

// Start binds the listen address and serves in a goroutine.
func (s *ExporterService) Start() error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return err
	}
	s.addr = ln.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.exporter.ServeListener(ctx, ln); err != nil {
			s.logger.Error().Err(err).Msg("Prometheus exporter stopped")
		}
	}()
	return nil
}

// Addr is the bound address, nil before Start.
func (s *ExporterService) Addr() net.Addr {
	return s.addr
}

// Stop shuts the server down and waits for it to exit.
func (s *ExporterService) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info().Msg("ExporterService stopped")
	return nil
}
