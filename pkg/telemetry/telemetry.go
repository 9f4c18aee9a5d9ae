// Package telemetry sets up the process logger and tracer.
package telemetry

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/argus-labs/ecb/pkg/assert"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	ddotel "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/opentelemetry"
	ddtracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

type Telemetry struct {
	Logger      zerolog.Logger
	Tracer      trace.Tracer
	serviceName string

	shutdown func() error
}

// New builds the logger and tracer from the environment, overridden by the non-zero fields of opts.
// With tracing enabled the Datadog tracer provider becomes the global otel provider.
func New(opts Options) (Telemetry, error) {
	config, err := loadConfig()
	if err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to load telemetry config")
	}

	options := newDefaultOptions()
	config.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return Telemetry{}, eris.Wrap(err, "invalid telemetry options")
	}

	t := Telemetry{
		Logger:      newLogger(options),
		Tracer:      noop.NewTracerProvider().Tracer(options.ServiceName),
		serviceName: options.ServiceName,
	}
	if options.TraceEnabled {
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		provider := ddotel.NewTracerProvider(ddtracer.WithService(options.ServiceName), ddtracer.WithRuntimeMetrics())
		otel.SetTracerProvider(provider)
		t.Tracer = provider.Tracer(options.ServiceName)
		t.shutdown = provider.Shutdown
	}
	return t, nil
}

// Shutdown flushes and stops the tracer.
func (t *Telemetry) Shutdown(_ context.Context) error {
	if t.shutdown != nil {
		return t.shutdown()
	}
	return nil
}

// GetLogger returns a component-specific logger.
func (t *Telemetry) GetLogger(component string) zerolog.Logger {
	return t.Logger.With().Str("component", t.serviceName+"."+component).Logger()
}

// GetLoggerWithTrace returns a component-specific logger enriched with trace context.
func (t *Telemetry) GetLoggerWithTrace(ctx context.Context, component string) zerolog.Logger {
	span := trace.SpanFromContext(ctx)

	logger := t.Logger.With().Str("component", t.serviceName+"."+component)

	if span.IsRecording() {
		spanCtx := span.SpanContext()
		logger = logger.
			Str("trace_id", spanCtx.TraceID().String()).
			Str("span_id", spanCtx.SpanID().String())
	}

	return logger.Logger()
}

// newLogger creates a logger with the specified format.
func newLogger(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var writer io.Writer
	switch opts.LogFormat {
	case LogFormatPretty:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case LogFormatJSON:
		writer = out
	case LogFormatUndefined:
		assert.That(false, "unreachable")
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

func init() { //nolint:gochecknoinits // Its fine
	// Set up the global logger
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Create a console writer with timestamp
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	// Set the global logger
	log.Logger = zerolog.New(consoleWriter). //nolint:reassign // Its fine
							With().
							Timestamp().
							Caller().
							Logger()
}

// SetGlobalLogger makes l the logger used by packages that log through zerolog's global logger.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l //nolint:reassign // Its fine
}
