// Package telemetry provides OpenTelemetry tracing for the simulation.
package telemetry

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "tunnelnet"
	serviceVersion = "0.1.0"
)

// RunID identifies this process in traces and logs.
var RunID = uuid.NewString()

// Environment variables read by ConfigFromEnv. Standard OTEL_* variables
// still apply to anything left unset here.
const (
	EnvEndpoint = "TUNNELNET_OTLP_ENDPOINT"
	EnvHeaders  = "TUNNELNET_OTLP_HEADERS"
)

// Config selects the OTLP collector. Zero values defer to the OTEL_*
// environment handled by the exporter itself.
type Config struct {
	Endpoint string            // full URL, e.g. http://localhost:4318
	Headers  map[string]string // extra request headers, e.g. API keys
}

// ConfigFromEnv reads a Config through lookup (usually os.LookupEnv).
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if v, ok := lookup(EnvEndpoint); ok {
		cfg.Endpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvHeaders); ok {
		h, err := ParseHeaders(v)
		if err != nil {
			return Config{}, errors.Wrap(err, EnvHeaders)
		}
		cfg.Headers = h
	}
	return cfg, nil
}

// ParseHeaders parses "key=value,key=value" into a header map.
func ParseHeaders(s string) (map[string]string, error) {
	headers := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Errorf("malformed header %q", pair)
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers, nil
}

func (c Config) exporterOptions() []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if c.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(c.Endpoint))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(c.Headers))
	}
	return opts
}

// Setup installs a global tracer provider exporting over OTLP/HTTP and
// returns its shutdown function.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx, cfg.exporterOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "creating OTLP exporter")
	}

	// Not merged with resource.Default(); their schema URLs conflict.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("service.instance.id", RunID),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "building telemetry resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component.
// Until Setup succeeds the global provider is a no-op, so spans are free.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("tunnelnet/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("tunnelnet/noop")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
