package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Units recognised in structured sensor values.
const (
	UnitCelsius = "°C"
	UnitPercent = "%"
	UnitRPM     = "RPM"
)

var knownUnits = []string{UnitCelsius, UnitPercent, UnitRPM}

// SensorValue is a numeric sensor reading with its unit suffix split off.
type SensorValue struct {
	Number float64
	Unit   string
	Valid  bool
}

// ParseSensorValue parses strings such as "45.5 °C", "12 %" or "1200 RPM".
// Values with an unknown unit or no number are returned as invalid.
func ParseSensorValue(raw string) SensorValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return SensorValue{}
	}

	unit := ""
	for _, u := range knownUnits {
		if strings.HasSuffix(s, u) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}

	// Some locales report "45,5 °C".
	s = strings.Replace(s, ",", ".", 1)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SensorValue{}
	}
	return SensorValue{Number: n, Unit: unit, Valid: true}
}

// SensorNode is one node of the hardware -> category -> sensor tree served by the structured source.
type SensorNode struct {
	Text     string
	RawValue string
	Value    SensorValue
	Children []*SensorNode
}

type sensorNodeJSON struct {
	Text     string        `json:"Text"`
	Value    string        `json:"Value"`
	Children []*SensorNode `json:"Children"`
}

// UnmarshalJSON decodes a node and parses its value once.
func (n *SensorNode) UnmarshalJSON(data []byte) error {
	var raw sensorNodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Text = raw.Text
	n.RawValue = raw.Value
	n.Value = ParseSensorValue(raw.Value)
	n.Children = raw.Children
	return nil
}
