// Package session owns the serial connection to the verified display.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/utils"
	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/rs/zerolog"
)

// ErrNotOpen is returned by Send when the connection has been closed.
var ErrNotOpen = errors.New("serial session is not open")

// DeviceSession is the only writer to the display's serial port.
type DeviceSession struct {
	name   string
	port   serialport.Port
	logger zerolog.Logger
}

// New wraps an already open port.
func New(name string, port serialport.Port, logger zerolog.Logger) *DeviceSession {
	return &DeviceSession{name: name, port: port, logger: logger}
}

// Factory opens sessions with fixed serial settings.
type Factory struct {
	Opener      serialport.Opener
	BaudRate    int
	ReadTimeout time.Duration
	SettleDelay time.Duration // the board resets when the port opens
	Logger      zerolog.Logger
}

// Open opens name and waits for the board to settle. The port is closed again
// if ctx is cancelled while waiting.
func (f *Factory) Open(ctx context.Context, name string) (*DeviceSession, error) {
	port, err := f.Opener.Open(name, f.BaudRate, f.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if err := utils.Sleep(ctx, f.SettleDelay); err != nil {
		port.Close()
		return nil, err
	}

	f.Logger.Info().Str("port", name).Int("baud", f.BaudRate).Msg("Serial session opened")
	return New(name, port, f.Logger), nil
}

// Name returns the port name.
func (s *DeviceSession) Name() string {
	return s.name
}

// IsOpen reports whether the connection is still held.
func (s *DeviceSession) IsOpen() bool {
	return s.port != nil
}

// Send writes r as one JSON line. It never panics; when the session is closed it
// logs a warning and returns ErrNotOpen. Nothing is retried.
func (s *DeviceSession) Send(r models.Record) error {
	if s.port == nil {
		s.logger.Warn().Str("port", s.name).Msg("Serial connection not active, record dropped")
		return ErrNotOpen
	}

	line, err := Encode(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if _, err := s.port.Write(line); err != nil {
		s.logger.Warn().Err(err).Str("port", s.name).Msg("Failed to send record")
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close releases the port. Calling it more than once is a no-op.
func (s *DeviceSession) Close() error {
	if s.port == nil {
		return nil
	}
	port := s.port
	s.port = nil

	if err := port.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.name, err)
	}
	s.logger.Info().Str("port", s.name).Msg("Serial session closed")
	return nil
}

// Encode renders r as a newline-terminated JSON object with the seven record keys.
func Encode(r models.Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
