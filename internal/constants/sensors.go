package constants

import "time"

const (
	DefaultStructuredURL     = "http://localhost:8085/data.json"
	DefaultStructuredTimeout = 2 * time.Second
	DefaultStreamInterval    = 1 * time.Second
	DefaultCPUSampleWindow   = 100 * time.Millisecond
)
