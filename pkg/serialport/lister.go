package serialport

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial port reported by the host.
type PortInfo struct {
	Name        string
	Description string
	VID         string // upper-case hex, empty if not a USB port
	PID         string
	IsUSB       bool
}

// String renders the port the way the port listing prints it.
func (p PortInfo) String() string {
	if p.VID != "" && p.PID != "" {
		return fmt.Sprintf("%s - %s [%s:%s]", p.Name, p.Description, p.VID, p.PID)
	}
	return fmt.Sprintf("%s - %s", p.Name, p.Description)
}

// Lister enumerates the serial ports available on the host.
type Lister interface {
	List() ([]PortInfo, error)
}

// EnumeratorLister lists ports with go.bug.st/serial/enumerator.
type EnumeratorLister struct{}

// NewLister creates a new EnumeratorLister.
func NewLister() *EnumeratorLister {
	return &EnumeratorLister{}
}

// List returns the host's ports in enumeration order.
func (l *EnumeratorLister) List() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		ports = append(ports, toPortInfo(d))
	}
	return ports, nil
}

func toPortInfo(d *enumerator.PortDetails) PortInfo {
	return PortInfo{
		Name:        d.Name,
		Description: describe(d),
		VID:         strings.ToUpper(d.VID),
		PID:         strings.ToUpper(d.PID),
		IsUSB:       d.IsUSB,
	}
}

func describe(d *enumerator.PortDetails) string {
	if d.Product != "" {
		return d.Product
	}
	if d.IsUSB {
		return "USB Serial Device"
	}
	return "n/a"
}
