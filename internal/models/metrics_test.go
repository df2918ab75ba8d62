package models_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Normalize(t *testing.T) {
	r := models.Record{
		CPUTemp:  45.678,
		CPUUsage: math.NaN(),
		CPUFan:   -1,
		GPUTemp:  math.Inf(1),
		GPUUsage: 12.25,
		GPUFan:   1500,
		RAMUsage: 63.04,
	}.Normalize()

	assert.Equal(t, 45.7, r.CPUTemp)
	assert.Equal(t, 0.0, r.CPUUsage)
	assert.Equal(t, 0, r.CPUFan)
	assert.Equal(t, 0.0, r.GPUTemp)
	assert.Equal(t, 12.3, r.GPUUsage)
	assert.Equal(t, 1500, r.GPUFan)
	assert.Equal(t, 63.0, r.RAMUsage)
}

func TestRecord_ZeroValueHasEveryKey(t *testing.T) {
	data, err := json.Marshal(models.Record{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded, len(models.RecordFields))
	for _, key := range models.RecordFields {
		assert.Contains(t, decoded, key)
		assert.IsType(t, float64(0), decoded[key])
	}
}

func TestFanRPM(t *testing.T) {
	assert.Equal(t, 1234, models.FanRPM(1234.9))
	assert.Equal(t, 0, models.FanRPM(-5))
	assert.Equal(t, 0, models.FanRPM(math.NaN()))
}
