// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry wires OpenTelemetry tracing and metrics around model and
// tool calls. It is never on the request path's critical section: a
// configuration failure logs and the process keeps running on the no-op
// providers.
package telemetry

import (
	"context"
	"fmt"
	"os"

	gcpdetector "go.opentelemetry.io/contrib/detectors/gcp"
	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/flowstack/agentkit-go"

var (
	tracer     trace.Tracer = otel.Tracer(instrumentationName)
	meter      metric.Meter = otel.Meter(instrumentationName)
	toolErrors metric.Int64Counter
)

func modelNameAttr(name string) attribute.KeyValue { return attribute.String("agentkit.model.name", name) }
func toolNameAttr(name string) attribute.KeyValue   { return attribute.String("agentkit.tool.name", name) }

func init() {
	toolErrors, _ = meter.Int64Counter(
		"agentkit.tool.errors",
		metric.WithDescription("count of tool invocations that returned an error"),
	)
}

// Config selects which telemetry backend [Configure] wires up.
type Config struct {
	// ServiceName identifies this process in exported spans and metrics.
	ServiceName string

	// GCPProject, when non-empty, routes metrics through Google Cloud
	// Monitoring and tags the resource with GCP detector attributes.
	// When empty, metrics use an in-process no-op reader: spans are still
	// exported (locally useful via a collector), but no metrics leave the
	// process.
	GCPProject string

	// OTLPEndpoint is the collector endpoint spans are exported to, e.g.
	// "localhost:4318". Empty disables trace export (tracer calls remain
	// cheap no-ops).
	OTLPEndpoint string
}

// Shutdown flushes and releases whatever Configure set up.
type Shutdown func(ctx context.Context) error

// Configure installs a global [trace.TracerProvider] and [metric.MeterProvider]
// per cfg. A failure here is never fatal to the caller: telemetry is an
// ambient concern, not part of the request path's correctness, so callers
// should log a returned error and continue running with the existing
// (possibly no-op) global providers rather than aborting startup.
func Configure(ctx context.Context, cfg Config) (Shutdown, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
		resource.WithDetectors(gcpdetector.NewDetector()),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		// Detection failures (e.g. running outside GCP) are expected; fall
		// back to the default resource rather than giving up.
		res = resource.Default()
	}

	var shutdownFuncs []Shutdown

	if cfg.OTLPEndpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint))
		if err != nil {
			return noopShutdown, fmt.Errorf("create OTLP trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(instrumentationName)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	}

	if cfg.GCPProject != "" {
		mexp, err := mexporter.New(mexporter.WithProjectID(cfg.GCPProject))
		if err != nil {
			return chain(shutdownFuncs), fmt.Errorf("create Cloud Monitoring exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(mexp)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
		meter = mp.Meter(instrumentationName)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	}

	if toolErrors, err = meter.Int64Counter(
		"agentkit.tool.errors",
		metric.WithDescription("count of tool invocations that returned an error"),
	); err != nil {
		return chain(shutdownFuncs), fmt.Errorf("create tool error counter: %w", err)
	}

	return chain(shutdownFuncs), nil
}

// ConfigureFromEnv calls [Configure] using GOOGLE_CLOUD_PROJECT and
// OTEL_EXPORTER_OTLP_ENDPOINT, the conventional variables for these two
// settings, so cmd/agentkit does not need its own flags for them.
func ConfigureFromEnv(ctx context.Context, serviceName string) (Shutdown, error) {
	return Configure(ctx, Config{
		ServiceName:  serviceName,
		GCPProject:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	})
}

// StartModelSpan starts a span around a single LLM generate-content call.
func StartModelSpan(ctx context.Context, modelName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "agentkit.model.generate_content", trace.WithAttributes(
		modelNameAttr(modelName),
	))
}

// StartToolSpan starts a span around a single tool invocation.
func StartToolSpan(ctx context.Context, toolName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "agentkit.tool.run", trace.WithAttributes(
		toolNameAttr(toolName),
	))
}

// RecordToolError increments the tool-error counter for toolName.
func RecordToolError(ctx context.Context, toolName string) {
	if toolErrors == nil {
		return
	}
	toolErrors.Add(ctx, 1, metric.WithAttributes(toolNameAttr(toolName)))
}

func chain(fns []Shutdown) Shutdown {
	return func(ctx context.Context) error {
		var firstErr error
		for _, fn := range fns {
			if err := fn(ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}

func noopShutdown(context.Context) error { return nil }
