package utils

import (
	"fmt"
	"time"

	"github.com/benmeehan/pc-monitor/internal/constants"
	"github.com/benmeehan/pc-monitor/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	Serial struct {
		Port            string        `yaml:"port"`             // Port override, "auto" runs discovery
		BaudRate        int           `yaml:"baud_rate"`        // Baud rate for probing and streaming
		BootDelay       time.Duration `yaml:"boot_delay"`       // Wait after opening a probe before sending the challenge
		VerifyTimeout   time.Duration `yaml:"verify_timeout"`   // Verification window per candidate
		PollInterval    time.Duration `yaml:"poll_interval"`    // Pause between reads inside the verification window
		ReadTimeout     time.Duration `yaml:"read_timeout"`     // Serial read timeout
		SettleDelay     time.Duration `yaml:"settle_delay"`     // Wait after opening the permanent session
		AllowUnverified bool          `yaml:"allow_unverified"` // Fall back to the best candidate when none verifies
	} `yaml:"serial"`

	Sensors struct {
		StructuredURL     string        `yaml:"structured_url"`     // Hardware monitor JSON endpoint
		StructuredTimeout time.Duration `yaml:"structured_timeout"` // HTTP timeout for the structured source
		GPUEnabled        bool          `yaml:"gpu_enabled"`        // Query nvidia-smi in the flat adapter
	} `yaml:"sensors"`

	Streaming struct {
		Interval time.Duration `yaml:"interval"` // Time between records
	} `yaml:"streaming"`

	MQTT struct {
		Enabled       bool          `yaml:"enabled"`        // Mirror every record to a broker
		Broker        string        `yaml:"broker"`         // MQTT broker address
		ClientID      string        `yaml:"client_id"`      // MQTT client ID prefix
		Topic         string        `yaml:"topic"`          // Topic records are published to
		QOS           int           `yaml:"qos"`            // MQTT QoS level
		CACertificate string        `yaml:"ca_certificate"` // Path to the CA certificate, empty disables TLS
		Timeout       time.Duration `yaml:"timeout"`        // Connect and publish wait timeout
	} `yaml:"mqtt"`

	Prometheus struct {
		Enabled bool   `yaml:"enabled"` // Serve /metrics
		Listen  string `yaml:"listen"`  // Listen address
	} `yaml:"prometheus"`

	Logging struct {
		Level string `yaml:"level"` // debug, info, warn, error
		JSON  bool   `yaml:"json"`  // JSON output instead of console
	} `yaml:"logging"`
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	var c Config
	c.Serial.Port = constants.AutoDetectPort
	c.Serial.BaudRate = constants.DefaultBaudRate
	c.Serial.BootDelay = constants.DefaultBootDelay
	c.Serial.VerifyTimeout = constants.DefaultVerifyTimeout
	c.Serial.PollInterval = constants.DefaultPollInterval
	c.Serial.ReadTimeout = constants.DefaultReadTimeout
	c.Serial.SettleDelay = constants.DefaultSettleDelay
	c.Serial.AllowUnverified = true

	c.Sensors.StructuredURL = constants.DefaultStructuredURL
	c.Sensors.StructuredTimeout = constants.DefaultStructuredTimeout
	c.Sensors.GPUEnabled = true

	c.Streaming.Interval = constants.DefaultStreamInterval

	c.MQTT.ClientID = "pc-monitor"
	c.MQTT.Topic = "pc-monitor/metrics"
	c.MQTT.Timeout = 5 * time.Second

	c.Prometheus.Listen = ":9108"

	c.Logging.Level = "info"
	return &c
}

// LoadConfig loads the YAML configuration from the specified file on top of the defaults.
// A missing file is not an error. Callers run Validate once their overrides are applied.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}

	exists, err := fileClient.IsFileExists(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		return config, nil
	}

	if err := fileClient.ReadYamlFile(filename, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Validate checks values that would make the monitor misbehave.
func (c *Config) Validate() error {
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Serial.BaudRate)
	}
	if c.Streaming.Interval <= 0 {
		return fmt.Errorf("streaming interval must be positive, got %s", c.Streaming.Interval)
	}
	if c.Serial.VerifyTimeout <= 0 {
		return fmt.Errorf("verify timeout must be positive, got %s", c.Serial.VerifyTimeout)
	}
	// A zero serial read timeout blocks the read indefinitely.
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.Serial.ReadTimeout)
	}
	if c.Serial.ReadTimeout > c.Serial.VerifyTimeout {
		return fmt.Errorf("read timeout %s exceeds verify timeout %s", c.Serial.ReadTimeout, c.Serial.VerifyTimeout)
	}
	if c.MQTT.Enabled && (c.MQTT.Broker == "" || c.MQTT.Topic == "") {
		return fmt.Errorf("mqtt enabled but broker or topic is empty")
	}
	if c.MQTT.QOS < 0 || c.MQTT.QOS > 2 {
		return fmt.Errorf("invalid mqtt qos %d", c.MQTT.QOS)
	}
	return nil
}
