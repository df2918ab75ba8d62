package serialport

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is an open serial connection.
type Port interface {
	io.ReadWriteCloser
	// Flush discards data written but not transmitted and data received but not read.
	Flush() error
}

// Opener opens serial ports by name.
type Opener interface {
	Open(name string, baud int, readTimeout time.Duration) (Port, error)
}

// TarmOpener opens ports through github.com/tarm/serial.
type TarmOpener struct{}

// NewOpener creates a new TarmOpener.
func NewOpener() *TarmOpener {
	return &TarmOpener{}
}

// Open opens the named port in 8N1 mode. A non-zero readTimeout makes Read return
// after that long without data instead of blocking forever.
func (o *TarmOpener) Open(name string, baud int, readTimeout time.Duration) (Port, error) {
	c := &serial.Config{Name: name, Baud: baud, ReadTimeout: readTimeout}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, err
	}
	return s, nil
}
