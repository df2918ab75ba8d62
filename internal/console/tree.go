package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/benmeehan/pc-monitor/internal/sensors"
)

// PrintTree dumps the sensor tree, indenting two spaces per level.
// Nodes without text are skipped but their children are still printed.
func PrintTree(out io.Writer, root *models.SensorNode) {
	sensors.Walk(root, func(n *models.SensorNode, depth int) {
		if n.Text == "" {
			return
		}
		line := strings.Repeat("  ", depth) + "├─ " + n.Text
		if n.RawValue != "" {
			line += " = " + n.RawValue
		}
		fmt.Fprintln(out, line)
	})
}
