package models

import "math"

// Record is the fixed-shape telemetry snapshot streamed to the display once per tick.
// Every field is always serialized; zero means the value was unavailable.
type Record struct {
	CPUTemp  float64 `json:"cpu_temp"`
	CPUUsage float64 `json:"cpu_usage"`
	CPUFan   int     `json:"cpu_fan"`
	GPUTemp  float64 `json:"gpu_temp"`
	GPUUsage float64 `json:"gpu_usage"`
	GPUFan   int     `json:"gpu_fan"`
	RAMUsage float64 `json:"ram_usage"`
}

// RecordFields lists the wire keys of a Record in their serialized order.
var RecordFields = []string{"cpu_temp", "cpu_usage", "cpu_fan", "gpu_temp", "gpu_usage", "gpu_fan", "ram_usage"}

// Normalize rounds temperatures and usages to one decimal and replaces
// NaN, infinities and negative fan speeds with zero.
func (r Record) Normalize() Record {
	return Record{
		CPUTemp:  Round1(r.CPUTemp),
		CPUUsage: Round1(r.CPUUsage),
		CPUFan:   nonNegative(r.CPUFan),
		GPUTemp:  Round1(r.GPUTemp),
		GPUUsage: Round1(r.GPUUsage),
		GPUFan:   nonNegative(r.GPUFan),
		RAMUsage: Round1(r.RAMUsage),
	}
}

// Round1 rounds v to one decimal place. Non-finite values become 0.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

// FanRPM converts a raw fan reading to a whole RPM value.
func FanRPM(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(v)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
