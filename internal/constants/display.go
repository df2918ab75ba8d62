package constants

import "time"

// Identification handshake.
const (
	IdentifyRequest  = "IDENTIFY\n"
	IdentifyResponse = "USB_DISPLAY"
)

// Serial defaults.
const (
	DefaultBaudRate      = 115200
	DefaultBootDelay     = 1 * time.Second
	DefaultVerifyTimeout = 3 * time.Second
	DefaultPollInterval  = 50 * time.Millisecond
	DefaultReadTimeout   = 100 * time.Millisecond
	DefaultSettleDelay   = 2 * time.Second
)

// AutoDetectPort is the port override value that requests discovery.
const AutoDetectPort = "auto"

// Signature scores.
const (
	ScoreUSBID       = 100
	ScoreDescription = 50
)
