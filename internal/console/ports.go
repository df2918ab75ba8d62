package console

import (
	"fmt"
	"io"

	"github.com/benmeehan/pc-monitor/pkg/serialport"
)

// PrintPorts lists every enumerated port, one per line.
func PrintPorts(out io.Writer, ports []serialport.PortInfo) {
	if len(ports) == 0 {
		fmt.Fprintln(out, "  no serial ports found")
		return
	}
	for _, p := range ports {
		fmt.Fprintf(out, "  %s\n", p)
	}
}
