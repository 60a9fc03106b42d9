package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	provider, shutdown, err := NewTracerProvider(context.Background(), Options{SampleRate: DefaultSampleRate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, span := provider.Tracer("test").Start(context.Background(), "span")
	if span.SpanContext().IsValid() {
		t.Errorf("Expected a no-op span")
	}
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewTracerProviderSpanProcessor(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	_, shutdown, err := NewTracerProvider(context.Background(), Options{SampleRate: DefaultSampleRate, SpanProcessor: recorder})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, span := otel.Tracer("test").Start(context.Background(), "span")
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ended := recorder.Ended()
	if len(ended) != 1 || ended[0].Name() != "span" {
		t.Fatalf("Expected one recorded span, got %d", len(ended))
	}
	if got := ended[0].Resource().Attributes(); len(got) == 0 {
		t.Errorf("Expected the service resource on the span")
	}
}

func TestNewTracerProviderErrors(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{name: "SampleRateAboveOne", opts: Options{SampleRate: 1.5}},
		{name: "NegativeSampleRate", opts: Options{SampleRate: -0.1}},
		{name: "MissingCACert", opts: Options{CollectorEndpoint: "localhost:4317", CACertFile: "/nonexistent/ca.crt", SampleRate: 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := NewTracerProvider(context.Background(), tc.opts); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}
