package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/pkg/mqtt"
	"github.com/rs/zerolog"
)

// MirrorService publishes every streamed record to an MQTT topic.
type MirrorService struct {
	pubTopic   string
	qos        int
	timeout    time.Duration
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
}

// NewMirrorService initializes and returns a new instance of MirrorService.
func NewMirrorService(pubTopic string, qos int, timeout time.Duration, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *MirrorService {
	return &MirrorService{
		pubTopic:   pubTopic,
		qos:        qos,
		timeout:    timeout,
		mqttClient: mqttClient,
		logger:     logger,
	}
}

// Start connects to the broker and waits at most the configured timeout.
func (m *MirrorService) Start() error {
	token := m.mqttClient.Connect()
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("timed out connecting to the broker after %s", m.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to the broker: %w", err)
	}

	m.logger.Info().Str("topic", m.pubTopic).Msg("MirrorService started")
	return nil
}

// Publish sends the record once and waits at most the configured timeout.
func (m *MirrorService) Publish(record models.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	token := m.mqttClient.Publish(m.pubTopic, byte(m.qos), false, payload)
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("publish to %s timed out after %s", m.pubTopic, m.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}

	m.logger.Debug().Str("topic", m.pubTopic).Msg("Record mirrored")
	return nil
}

// Stop disconnects from the broker.
func (m *MirrorService) Stop() error {
	m.mqttClient.Disconnect(250)
	m.logger.Info().Msg("MirrorService stopped")
	return nil
}
