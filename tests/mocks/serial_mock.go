package mocks

import (
	"io"
	"sync"
	"time"

	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/stretchr/testify/mock"
)

// Opener is a mock implementation of the serialport.Opener interface
type Opener struct {
	mock.Mock
}

func (m *Opener) Open(name string, baud int, readTimeout time.Duration) (serialport.Port, error) {
	args := m.Called(name, baud, readTimeout)
	port, _ := args.Get(0).(serialport.Port)
	return port, args.Error(1)
}

// Lister is a mock implementation of the serialport.Lister interface
type Lister struct {
	mock.Mock
}

func (m *Lister) List() ([]serialport.PortInfo, error) {
	args := m.Called()
	ports, _ := args.Get(0).([]serialport.PortInfo)
	return ports, args.Error(1)
}

// FakePort is a scripted serial port. Every write is recorded; once a write
// contains Trigger, Reply becomes readable. Reads with nothing queued wait
// ReadDelay and return io.EOF like tarm/serial does on timeout.
type FakePort struct {
	Trigger   string
	Reply     []byte
	ReadDelay time.Duration
	ReadErr   error
	WriteErr  error
	FlushErr  error

	mu      sync.Mutex
	pending []byte
	written [][]byte
	flushes int
	closes  int
}

func (p *FakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	if p.ReadErr != nil {
		p.mu.Unlock()
		return 0, p.ReadErr
	}
	if len(p.pending) > 0 {
		n := copy(b, p.pending)
		p.pending = p.pending[n:]
		p.mu.Unlock()
		return n, nil
	}
	p.mu.Unlock()

	time.Sleep(p.ReadDelay)
	return 0, io.EOF
}

func (p *FakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}
	p.written = append(p.written, append([]byte(nil), b...))
	if p.Trigger != "" && string(b) == p.Trigger {
		p.pending = append(p.pending, p.Reply...)
	}
	return len(b), nil
}

func (p *FakePort) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
	return p.FlushErr
}

func (p *FakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes++
	return nil
}

// Written returns a copy of every write.
func (p *FakePort) Written() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.written))
	copy(out, p.written)
	return out
}

// Flushes returns how many times Flush was called.
func (p *FakePort) Flushes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushes
}

// Closes returns how many times Close was called.
func (p *FakePort) Closes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closes
}
