// Package console renders records, ports and sensor trees for the operator.
package console

import (
	"fmt"
	"io"

	"github.com/benmeehan/pc-monitor/internal/models"
)

// StatusPrinter writes one status block per streamed record.
type StatusPrinter struct {
	out io.Writer
}

// NewStatusPrinter creates a StatusPrinter writing to out.
func NewStatusPrinter(out io.Writer) *StatusPrinter {
	return &StatusPrinter{out: out}
}

// Report prints the record with its sequence number and delivery status.
func (p *StatusPrinter) Report(seq int, r models.Record, source, port string, sendErr error) {
	delivery := "sent to " + port
	if sendErr != nil {
		delivery = "NOT sent: " + sendErr.Error()
	}
	fmt.Fprint(p.out, FormatStatus(seq, r, source, delivery))
}

// FormatStatus renders the three-line status block.
func FormatStatus(seq int, r models.Record, source, delivery string) string {
	return fmt.Sprintf("[#%04d] CPU: %5.1f°C | %5.1f%% | %4d RPM\n"+
		"        GPU: %5.1f°C | %5.1f%% | %4d RPM\n"+
		"        RAM: %5.1f%% | %s | %s\n",
		seq, r.CPUTemp, r.CPUUsage, r.CPUFan,
		r.GPUTemp, r.GPUUsage, r.GPUFan,
		r.RAMUsage, source, delivery)
}
