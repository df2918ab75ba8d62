// Package metrics exports the monitor's own health to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/benmeehan/pc-monitor/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Exporter records probe and tick outcomes on its own registry.
type Exporter struct {
	registry *prometheus.Registry

	// TicksTotal counts streamed ticks by sensor source.
	TicksTotal *prometheus.CounterVec
	// SendFailures counts records that could not be written to the display.
	SendFailures prometheus.Counter
	// ProbesTotal counts identification probes by outcome.
	ProbesTotal *prometheus.CounterVec
	// LastValue holds the last streamed value of every record field.
	LastValue *prometheus.GaugeVec
	// ActiveSource is 1 for every sensor source chosen at startup.
	ActiveSource *prometheus.GaugeVec

	logger zerolog.Logger
}

// NewExporter creates an Exporter and registers its collectors.
func NewExporter(logger zerolog.Logger) *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		TicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pcmonitor_ticks_total",
				Help: "Total number of records streamed, by sensor source",
			},
			[]string{"source"},
		),
		SendFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pcmonitor_send_failures_total",
				Help: "Total number of records not delivered to the display",
			},
		),
		ProbesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pcmonitor_identify_probes_total",
				Help: "Identification probes by outcome",
			},
			[]string{"outcome"},
		),
		LastValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pcmonitor_last_value",
				Help: "Last streamed value of each record field",
			},
			[]string{"field"},
		),
		ActiveSource: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pcmonitor_active_source",
				Help: "Sensor sources in use for this session, in fallback order",
			},
			[]string{"source", "rank"},
		),
		logger: logger,
	}
	e.registry.MustRegister(e.TicksTotal, e.SendFailures, e.ProbesTotal, e.LastValue, e.ActiveSource)
	return e
}

// RecordProbe counts one identification probe.
func (e *Exporter) RecordProbe(port string, err error) {
	outcome := "verified"
	if err != nil {
		outcome = "rejected"
	}
	e.ProbesTotal.WithLabelValues(outcome).Inc()
}

// SetActiveSources publishes the sources chosen by the aggregator's startup probe.
func (e *Exporter) SetActiveSources(names []string) {
	e.ActiveSource.Reset()
	for i, name := range names {
		e.ActiveSource.WithLabelValues(name, strconv.Itoa(i)).Set(1)
	}
}

// ObserveTick records one streamed record.
func (e *Exporter) ObserveTick(record models.Record, source string, sendErr error) {
	e.TicksTotal.WithLabelValues(source).Inc()
	if sendErr != nil {
		e.SendFailures.Inc()
	}

	e.LastValue.WithLabelValues("cpu_temp").Set(record.CPUTemp)
	e.LastValue.WithLabelValues("cpu_usage").Set(record.CPUUsage)
	e.LastValue.WithLabelValues("cpu_fan").Set(float64(record.CPUFan))
	e.LastValue.WithLabelValues("gpu_temp").Set(record.GPUTemp)
	e.LastValue.WithLabelValues("gpu_usage").Set(record.GPUUsage)
	e.LastValue.WithLabelValues("gpu_fan").Set(float64(record.GPUFan))
	e.LastValue.WithLabelValues("ram_usage").Set(record.RAMUsage)
}

// Router returns the HTTP routes served by the exporter.
func (e *Exporter) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// ServeListener serves the exporter routes on ln until ctx is cancelled.
func (e *Exporter) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           e.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	e.logger.Info().Str("listen", ln.Addr().String()).Msg("Prometheus exporter started")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
