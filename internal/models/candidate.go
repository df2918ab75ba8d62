package models

import "fmt"

// CandidatePort is an enumerated serial endpoint scored as a possible display device.
type CandidatePort struct {
	Name        string // Device path or COM name
	Description string // Human-readable adapter description
	VID         string // USB vendor id, upper-case hex, empty if unknown
	PID         string // USB product id, upper-case hex, empty if unknown
	Priority    int    // Signature score, higher is probed first
}

// HasUSBID reports whether both vendor and product ids are known.
func (c CandidatePort) HasUSBID() bool {
	return c.VID != "" && c.PID != ""
}

// USBID returns "VID:PID" or an empty string.
func (c CandidatePort) USBID() string {
	if !c.HasUSBID() {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.VID, c.PID)
}
