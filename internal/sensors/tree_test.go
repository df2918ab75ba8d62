package sensors_test

import (
	"encoding/json"
	"testing"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, data string) *models.SensorNode {
	t.Helper()
	var root models.SensorNode
	require.NoError(t, json.Unmarshal([]byte(data), &root))
	return &root
}

func node(text, value string, children ...*models.SensorNode) *models.SensorNode {
	return &models.SensorNode{Text: text, RawValue: value, Value: models.ParseSensorValue(value), Children: children}
}

func TestFindSensor_MatchesHardwareCategoryAndName(t *testing.T) {
	root := parseTree(t, hardwareMonitorTree)

	v, ok := sensors.Query{Hardware: "intel", Category: "temperatures", Sensor: "package"}.Find(root)

	require.True(t, ok)
	assert.Equal(t, 54.0, v.Number)
	assert.Equal(t, models.UnitCelsius, v.Unit)
}

func TestFindSensor_CategoryMustMatchExactly(t *testing.T) {
	root := parseTree(t, hardwareMonitorTree)

	_, ok := sensors.Query{Hardware: "Intel", Category: "Temp", Sensor: "CPU Package"}.Find(root)

	assert.False(t, ok)
}

func TestFindSensor_SkipsUnparseableValues(t *testing.T) {
	root := node("Sensor", "",
		node("AMD Ryzen 7", "",
			node("Load", "", node("CPU Total", "n/a"))),
		node("AMD Ryzen 7 (second socket)", "",
			node("Load", "", node("CPU Total", "23.0 %"))),
	)

	v, ok := sensors.Query{Hardware: "AMD", Category: "Load", Sensor: "CPU Total"}.Find(root)

	require.True(t, ok)
	assert.Equal(t, 23.0, v.Number)
}

func TestFindSensor_RootIsNotAHardwareNode(t *testing.T) {
	root := node("Intel", "", node("Load", "", node("CPU Total", "5 %")))

	_, ok := sensors.FindSensor(root, sensors.TextContains("Intel"), sensors.TextEquals("Load"), sensors.TextContains("CPU"))

	assert.False(t, ok)
	_, ok = sensors.FindSensor(nil, sensors.TextContains("Intel"), sensors.TextEquals("Load"), sensors.TextContains("CPU"))
	assert.False(t, ok)
}

func TestChain_ZeroFallsThrough(t *testing.T) {
	root := parseTree(t, hardwareMonitorTree)

	chain := sensors.Chain{
		{Hardware: "Nuvoton", Category: "Fans", Sensor: "Fan #1"},
		{Hardware: "Nuvoton", Category: "Fans", Sensor: "Fan #2"},
	}

	assert.Equal(t, 1150.0, chain.Resolve(root))
	assert.Equal(t, 0.0, sensors.Chain{{Hardware: "Radeon", Category: "Load", Sensor: "GPU Core"}}.Resolve(root))
}

func TestRecordFromTree_IntelNvidia(t *testing.T) {
	record := sensors.RecordFromTree(parseTree(t, hardwareMonitorTree))

	assert.Equal(t, models.Record{
		CPUTemp:  49.6,
		CPUUsage: 17.3,
		CPUFan:   1024,
		GPUTemp:  44.0,
		GPUUsage: 8.0,
		GPUFan:   987,
		RAMUsage: 61.3,
	}, record)
}

func TestRecordFromTree_IntelBeforeAMD(t *testing.T) {
	root := node("Sensor", "",
		node("AMD Ryzen 9 5900X", "",
			node("Temperatures", "", node("Core (Tctl/Tdie)", "71.0 °C"))),
		node("Intel Core i5", "",
			node("Temperatures", "", node("Core Max", "60.0 °C"))),
		node("AMD Radeon RX 6800", "",
			node("Temperatures", "", node("GPU Core", "55.0 °C"))),
		node("NVIDIA GeForce GTX 1650", "",
			node("Temperatures", "", node("GPU Core", "48.0 °C"))),
	)

	record := sensors.RecordFromTree(root)

	assert.Equal(t, 60.0, record.CPUTemp)
	assert.Equal(t, 48.0, record.GPUTemp)
}

func TestRecordFromTree_EmptyTreeIsAllZero(t *testing.T) {
	assert.Equal(t, models.Record{}, sensors.RecordFromTree(node("Sensor", "")))
}

func TestWalk_VisitsDepthFirst(t *testing.T) {
	root := node("a", "", node("b", "", node("c", "")), node("d", ""))

	var visited []string
	var depths []int
	sensors.Walk(root, func(n *models.SensorNode, depth int) {
		visited = append(visited, n.Text)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"a", "b", "c", "d"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}
