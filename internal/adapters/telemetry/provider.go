package telemetry

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/tmplsync/internal/core/ports"
)

// NewTracerProvider returns a provider that writes finished spans to logger when enabled,
// and a no-op provider otherwise. Spans are processed synchronously, so nothing needs
// flushing on exit.
func NewTracerProvider(enabled bool, logger ports.Logger) trace.TracerProvider {
	if !enabled {
		return noop.NewTracerProvider()
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLogBridge(logger)),
	)
}
