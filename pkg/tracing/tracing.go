/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"k8s.io/klog/v2"
)

const (
	// DefaultServiceName is the service name attached to exported spans
	DefaultServiceName = "sand-benchmark"
	// DefaultSampleRate samples every trace
	DefaultSampleRate = 1.0
)

// Options configures span export. Tracing is disabled with a no-op provider
// when neither CollectorEndpoint nor SpanProcessor is set.
type Options struct {
	CollectorEndpoint string
	// CACertFile enables TLS towards the collector when set
	CACertFile  string
	ServiceName string
	SampleRate  float64
	// SpanProcessor, when set, receives every sampled span in process
	SpanProcessor sdktrace.SpanProcessor
}

// ShutdownFunc flushes and stops the installed provider
type ShutdownFunc func(context.Context) error

// NewTracerProvider installs the global tracer provider described by opts
func NewTracerProvider(ctx context.Context, opts Options) (trace.TracerProvider, ShutdownFunc, error) {
	logger := klog.FromContext(ctx)

	if opts.SampleRate < 0 || opts.SampleRate > 1 {
		return nil, nil, fmt.Errorf("sample rate %v must be in [0, 1]", opts.SampleRate)
	}
	if opts.CollectorEndpoint == "" && opts.SpanProcessor == nil {
		logger.V(5).Info("No collector endpoint, tracing disabled")
		provider := noop.NewTracerProvider()
		otel.SetTracerProvider(provider)
		return provider, func(context.Context) error { return nil }, nil
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRate))),
		sdktrace.WithResource(res),
	}

	if opts.CollectorEndpoint != "" {
		exporter, err := newExporter(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
		logger.Info("Exporting traces", "endpoint", opts.CollectorEndpoint, "service", serviceName)
	}
	if opts.SpanProcessor != nil {
		providerOpts = append(providerOpts, sdktrace.WithSpanProcessor(opts.SpanProcessor))
	}

	provider := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider, provider.Shutdown, nil
}

func newExporter(ctx context.Context, opts Options) (*otlptrace.Exporter, error) {
	var creds credentials.TransportCredentials
	if opts.CACertFile != "" {
		c, err := credentials.NewClientTLSFromFile(opts.CACertFile, "")
		if err != nil {
			return nil, fmt.Errorf("loading collector CA certificate: %w", err)
		}
		creds = c
	} else {
		creds = insecure.NewCredentials()
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(opts.CollectorEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(creds)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}
	return exporter, nil
}
