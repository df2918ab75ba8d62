package constants

type StreamState string

const (
	StateDiscovering StreamState = "discovering"
	StateConnected   StreamState = "connected"
	StateStreaming   StreamState = "streaming"
	StateStopped     StreamState = "stopped"
)
