package telemetry

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

type TracerProvider interface {
	trace.TracerProvider

	// Close flushes the pending spans and shuts the provider down.
	Close(context.Context) error
	RegisterSpanProcessor(sdktrace.SpanProcessor)
}

type tracerProvider struct {
	embedded.TracerProvider

	tp *sdktrace.TracerProvider
}

func (t *tracerProvider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	return t.tp.Tracer(name, options...)
}

func (t *tracerProvider) Close(ctx context.Context) error {
	if t.tp != nil {
		if err := t.tp.ForceFlush(ctx); err != nil {
			return err
		}

		if err := t.tp.Shutdown(ctx); err != nil {
			return err
		}

		t.tp = nil
	}
	return nil
}

func (t *tracerProvider) RegisterSpanProcessor(spanProcessor sdktrace.SpanProcessor) {
	t.tp.RegisterSpanProcessor(spanProcessor)
}

type noopTracerProvider struct {
	embedded.TracerProvider

	once sync.Once
	tp   trace.TracerProvider
}

func (t *noopTracerProvider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	t.once.Do(func() {
		t.tp = noop.NewTracerProvider()
	})

	return t.tp.Tracer(name, options...)
}

func (t *noopTracerProvider) Close(_ context.Context) error {
	return nil
}

func (t *noopTracerProvider) RegisterSpanProcessor(_ sdktrace.SpanProcessor) {
}

// Noop returns a provider that records nothing. The global provider is left untouched.
func Noop() TracerProvider {
	return &noopTracerProvider{}
}
