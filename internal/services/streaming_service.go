package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/internal/discovery"
	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/rs/zerolog"
)

// ErrSessionOpen wraps a failure to open the permanent session after discovery.
var ErrSessionOpen = errors.New("failed to open display session")

// PortResolver picks the display port.
type PortResolver interface {
	Resolve(ctx context.Context, override string) (discovery.Resolution, error)
}

// DeviceSession is the streaming side of an open display connection.
type DeviceSession interface {
	Name() string
	Send(record models.Record) error
	Close() error
}

// SessionOpener opens the permanent display session.
type SessionOpener interface {
	OpenSession(ctx context.Context, port string) (DeviceSession, error)
}

// SessionOpenerFunc adapts a function to SessionOpener.
type SessionOpenerFunc func(ctx context.Context, port string) (DeviceSession, error)

func (f SessionOpenerFunc) OpenSession(ctx context.Context, port string) (DeviceSession, error) {
	return f(ctx, port)
}

// RecordCollector produces one record per tick and names the source it came from.
type RecordCollector interface {
	Collect(ctx context.Context) (models.Record, string)
}

// Reporter shows each tick to the operator.
type Reporter interface {
	Report(seq int, record models.Record, source, port string, sendErr error)
}

// TickObserver is notified after every tick.
type TickObserver interface {
	ObserveTick(record models.Record, source string, sendErr error)
}

// RecordPublisher mirrors records to a secondary sink.
type RecordPublisher interface {
	Publish(record models.Record) error
}

// StreamingService discovers the display, opens it and streams records to it
// at a fixed interval until its context is cancelled.
type StreamingService struct {
	PortOverride string
	Interval     time.Duration

	resolver  PortResolver
	opener    SessionOpener
	collector RecordCollector
	reporter  Reporter
	observer  TickObserver
	publisher RecordPublisher
	logger    zerolog.Logger

	state atomic.Value
	seq   int
}

// NewStreamingService creates a StreamingService. reporter may be nil.
func NewStreamingService(
	portOverride string,
	interval time.Duration,
	resolver PortResolver,
	opener SessionOpener,
	collector RecordCollector,
	reporter Reporter,
	logger zerolog.Logger,
) *StreamingService {
	s := &StreamingService{
		PortOverride: portOverride,
		Interval:     interval,
		resolver:     resolver,
		opener:       opener,
		collector:    collector,
		reporter:     reporter,
		logger:       logger,
	}
	s.state.Store(constants.StateStopped)
	return s
}

// WithObserver sets the per-tick observer.
func (s *StreamingService) WithObserver(observer TickObserver) *StreamingService {
	s.observer = observer
	return s
}

// WithPublisher sets the record mirror.
func (s *StreamingService) WithPublisher(publisher RecordPublisher) *StreamingService {
	s.publisher = publisher
	return s
}

// State returns the current state of the loop.
func (s *StreamingService) State() constants.StreamState {
	return s.state.Load().(constants.StreamState)
}

func (s *StreamingService) setState(state constants.StreamState) {
	s.state.Store(state)
	s.logger.Debug().Str("state", string(state)).Msg("Streaming state changed")
}

// Run executes discovery, connection and streaming. It returns nil when ctx is
// cancelled and an error only when no session could be established.
func (s *StreamingService) Run(ctx context.Context) error {
	defer s.setState(constants.StateStopped)

	s.setState(constants.StateDiscovering)
	resolution, err := s.resolver.Resolve(ctx, s.PortOverride)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Info().Msg("Discovery cancelled")
			return nil
		}
		return err
	}
	s.logger.Info().Str("port", resolution.String()).Msg("Display port resolved")

	sess, err := s.opener.OpenSession(ctx, resolution.Port.Name)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrSessionOpen, err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close display session")
		}
	}()
	s.setState(constants.StateConnected)

	s.stream(ctx, sess)
	s.logger.Info().Int("records", s.seq).Msg("Monitoring stopped")
	return nil
}

func (s *StreamingService) stream(ctx context.Context, sess DeviceSession) {
	s.setState(constants.StateStreaming)
	s.logger.Info().Str("port", sess.Name()).Dur("interval", s.Interval).Msg("Streaming started")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.tick(ctx, sess)

		select {
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// tick collects one record and sends it. Failures are logged and never stop the loop.
func (s *StreamingService) tick(ctx context.Context, sess DeviceSession) {
	record, source := s.collector.Collect(ctx)
	if ctx.Err() != nil {
		return
	}
	s.seq++

	sendErr := sess.Send(record)
	if sendErr != nil {
		s.logger.Debug().Err(sendErr).Int("seq", s.seq).Msg("Record not delivered")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(record); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to mirror record")
		}
	}
	if s.observer != nil {
		s.observer.ObserveTick(record, source, sendErr)
	}
	if s.reporter != nil {
		s.reporter.Report(s.seq, record, source, sess.Name(), sendErr)
	}
}
