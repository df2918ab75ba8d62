package sensors

import (
	"strings"

	"github.com/benmeehan/pc-monitor/internal/models"
)

// Matcher tests one tree node.
type Matcher func(n *models.SensorNode) bool

// TextContains matches nodes whose text contains sub, ignoring case.
func TextContains(sub string) Matcher {
	sub = strings.ToLower(sub)
	return func(n *models.SensorNode) bool {
		return strings.Contains(strings.ToLower(n.Text), sub)
	}
}

// TextEquals matches nodes whose text equals label, ignoring case.
func TextEquals(label string) Matcher {
	return func(n *models.SensorNode) bool {
		return strings.EqualFold(n.Text, label)
	}
}

// FindSensor searches the tree below root depth-first for a hardware node, then a
// direct child category node, then a direct grandchild sensor node, each accepted
// by its matcher. The first sensor with a parseable value wins.
func FindSensor(root *models.SensorNode, hardware, category, sensor Matcher) (models.SensorValue, bool) {
	if root == nil {
		return models.SensorValue{}, false
	}
	return searchChildren(root.Children, hardware, category, sensor)
}

func searchChildren(nodes []*models.SensorNode, hardware, category, sensor Matcher) (models.SensorValue, bool) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if hardware(node) {
			if v, ok := matchSensor(node, category, sensor); ok {
				return v, true
			}
		}
		if v, ok := searchChildren(node.Children, hardware, category, sensor); ok {
			return v, true
		}
	}
	return models.SensorValue{}, false
}

func matchSensor(hw *models.SensorNode, category, sensor Matcher) (models.SensorValue, bool) {
	for _, group := range hw.Children {
		if group == nil || !category(group) {
			continue
		}
		for _, s := range group.Children {
			if s != nil && sensor(s) && s.Value.Valid {
				return s.Value, true
			}
		}
	}
	return models.SensorValue{}, false
}

// Query names one sensor as (hardware substring, category label, sensor substring).
type Query struct {
	Hardware string
	Category string
	Sensor   string
}

// Find runs the query against root.
func (q Query) Find(root *models.SensorNode) (models.SensorValue, bool) {
	return FindSensor(root, TextContains(q.Hardware), TextEquals(q.Category), TextContains(q.Sensor))
}

// Chain is an ordered list of queries for one field.
type Chain []Query

// Resolve returns the first non-zero value found by the chain, or 0.
func (c Chain) Resolve(root *models.SensorNode) float64 {
	for _, q := range c {
		if v, ok := q.Find(root); ok && v.Number != 0 {
			return v.Number
		}
	}
	return 0
}

// Walk visits every node depth-first with its depth below root.
func Walk(root *models.SensorNode, fn func(n *models.SensorNode, depth int)) {
	walk(root, 0, fn)
}

func walk(n *models.SensorNode, depth int, fn func(n *models.SensorNode, depth int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}
