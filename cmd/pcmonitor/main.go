package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benmeehan/pc-monitor/internal/console"
	"github.com/benmeehan/pc-monitor/internal/discovery"
	"github.com/benmeehan/pc-monitor/internal/metrics"
	"github.com/benmeehan/pc-monitor/internal/sensors"
	"github.com/benmeehan/pc-monitor/internal/service_registry"
	"github.com/benmeehan/pc-monitor/internal/services"
	"github.com/benmeehan/pc-monitor/internal/session"
	"github.com/benmeehan/pc-monitor/internal/utils"
	"github.com/benmeehan/pc-monitor/pkg/file"
	"github.com/benmeehan/pc-monitor/pkg/mqtt"
	"github.com/benmeehan/pc-monitor/pkg/serialport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("pcmonitor", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "configs/config.yaml", "Path to the YAML configuration file")
	port := flags.StringP("port", "p", "", "Serial port of the display (default: auto-detect)")
	baud := flags.IntP("baud", "b", 0, "Baud rate (default: 115200)")
	interval := flags.Float64P("interval", "i", 0, "Update interval in seconds (default: 1.0)")
	listPorts := flags.BoolP("list", "l", false, "List available serial ports and exit")
	dumpSensors := flags.Bool("dump-sensors", false, "Print the hardware monitor sensor tree and exit")
	strict := flags.Bool("strict", false, "Exit instead of using an unverified device")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Load configuration from file
	config, err := utils.LoadConfig(*configPath, file.NewFileService())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	if flags.Changed("port") {
		config.Serial.Port = *port
	}
	if flags.Changed("baud") {
		config.Serial.BaudRate = *baud
	}
	if flags.Changed("interval") {
		config.Streaming.Interval = time.Duration(*interval * float64(time.Second))
	}
	if *strict {
		config.Serial.AllowUnverified = false
	}
	if *logLevel != "" {
		config.Logging.Level = *logLevel
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger := newLogger(config, os.Stderr)
	lister := serialport.NewLister()

	if *listPorts {
		return printPorts(lister, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	structured := sensors.NewStructuredSource(config.Sensors.StructuredURL, config.Sensors.StructuredTimeout, logger)
	if *dumpSensors {
		return dumpTree(ctx, structured, config.Sensors.StructuredURL)
	}

	registry := service_registry.NewServiceRegistry(logger)
	var exporter *metrics.Exporter
	var recorder discovery.ProbeRecorder
	if config.Prometheus.Enabled {
		exporter = metrics.NewExporter(logger)
		recorder = exporter
		registry.RegisterService("exporter", services.NewExporterService(exporter, config.Prometheus.Listen, logger))
	}
	mirror, err := newMirror(config, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("MQTT mirror disabled")
	} else if mirror != nil {
		registry.RegisterOptionalService("mirror", mirror)
	}
	if err := registry.StartServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to start background services")
		return 1
	}
	defer func() {
		_ = registry.StopServices()
	}()

	// Decide once which sensor sources take part in this session
	flat := sensors.NewFlatSource(sensors.DefaultRegistry(config.Sensors.GPUEnabled, logger), logger)
	aggregator := sensors.NewAggregator(logger, structured, flat)
	aggregator.Probe(ctx)
	if exporter != nil {
		exporter.SetActiveSources(aggregator.ActiveSources())
	}

	opener := serialport.NewOpener()
	verifier := discovery.NewVerifier(opener, discovery.VerifierConfig{
		BaudRate:     config.Serial.BaudRate,
		BootDelay:    config.Serial.BootDelay,
		Window:       config.Serial.VerifyTimeout,
		PollInterval: config.Serial.PollInterval,
		ReadTimeout:  config.Serial.ReadTimeout,
	}, recorder, logger)
	resolver := discovery.NewResolver(lister, discovery.NewScanner(nil, logger), verifier, config.Serial.AllowUnverified, logger)

	factory := &session.Factory{
		Opener:      opener,
		BaudRate:    config.Serial.BaudRate,
		ReadTimeout: config.Serial.ReadTimeout,
		SettleDelay: config.Serial.SettleDelay,
		Logger:      logger,
	}
	sessionOpener := services.SessionOpenerFunc(func(ctx context.Context, name string) (services.DeviceSession, error) {
		sess, err := factory.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		return sess, nil
	})

	service := services.NewStreamingService(
		config.Serial.Port,
		config.Streaming.Interval,
		resolver,
		sessionOpener,
		aggregator,
		console.NewStatusPrinter(os.Stdout),
		logger,
	)
	if exporter != nil {
		service.WithObserver(exporter)
	}
	if registry.Started("mirror") {
		service.WithPublisher(mirror)
	}

	logger.Info().Msg("Press Ctrl+C to stop")
	if err := service.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("No display available")
		fmt.Fprintln(os.Stderr, "Available serial ports:")
		if ports, listErr := lister.List(); listErr == nil {
			console.PrintPorts(os.Stderr, ports)
		}
		return 1
	}
	return 0
}

func newLogger(config *utils.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Logging.Level)
	if err != nil || config.Logging.Level == "" {
		level = zerolog.InfoLevel
	}

	w := out
	if !config.Logging.JSON {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger()
}

func printPorts(lister serialport.Lister, logger zerolog.Logger) int {
	ports, err := lister.List()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list serial ports")
		return 1
	}
	fmt.Println("Available serial ports:")
	console.PrintPorts(os.Stdout, ports)
	return 0
}

func dumpTree(ctx context.Context, source *sensors.StructuredSource, url string) int {
	root, err := source.FetchTree(ctx)
	if err != nil {
		fmt.Printf("Hardware monitor not reachable at %s: %v\n", url, err)
		fmt.Println("Start it with the remote web server enabled and try again.")
		return 0
	}
	console.PrintTree(os.Stdout, root)
	return 0
}

// newMirror builds the optional MQTT mirror. It connects when the registry starts it.
func newMirror(config *utils.Config, logger zerolog.Logger) (*services.MirrorService, error) {
	if !config.MQTT.Enabled {
		return nil, nil
	}

	// Generate a unique MQTT Client ID by appending a UUID
	clientID := config.MQTT.ClientID + "-" + uuid.New().String()
	client := mqtt.NewMqttService(file.NewFileService())
	if err := client.Configure(config.MQTT.Broker, clientID, config.MQTT.CACertificate, config.MQTT.Timeout); err != nil {
		return nil, err
	}
	return services.NewMirrorService(config.MQTT.Topic, config.MQTT.QOS, config.MQTT.Timeout, client, logger), nil
}
