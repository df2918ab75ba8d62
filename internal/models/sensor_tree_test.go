package models_test

import (
	"encoding/json"
	"testing"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSensorValue(t *testing.T) {
	tests := []struct {
		raw  string
		want models.SensorValue
	}{
		{"45.5 °C", models.SensorValue{Number: 45.5, Unit: models.UnitCelsius, Valid: true}},
		{"12 %", models.SensorValue{Number: 12, Unit: models.UnitPercent, Valid: true}},
		{"1200 RPM", models.SensorValue{Number: 1200, Unit: models.UnitRPM, Valid: true}},
		{"37,5 °C", models.SensorValue{Number: 37.5, Unit: models.UnitCelsius, Valid: true}},
		{"3.7", models.SensorValue{Number: 3.7, Valid: true}},
		{"", models.SensorValue{}},
		{"65.0 W", models.SensorValue{}},
		{"n/a", models.SensorValue{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ParseSensorValue(tt.raw))
		})
	}
}

func TestSensorNode_UnmarshalParsesValues(t *testing.T) {
	data := `{"Text":"Sensor","Children":[{"Text":"Intel Core i7","Children":[
		{"Text":"Temperatures","Value":"","Children":[{"Text":"CPU Package","Value":"52.0 °C","Children":[]}]}]}]}`

	var root models.SensorNode
	require.NoError(t, json.Unmarshal([]byte(data), &root))

	require.Len(t, root.Children, 1)
	sensor := root.Children[0].Children[0].Children[0]
	assert.Equal(t, "CPU Package", sensor.Text)
	assert.Equal(t, "52.0 °C", sensor.RawValue)
	assert.Equal(t, 52.0, sensor.Value.Number)
	assert.True(t, sensor.Value.Valid)
	assert.False(t, root.Value.Valid)
}
