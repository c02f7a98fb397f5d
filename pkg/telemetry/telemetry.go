// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry sets up OpenTelemetry tracing for archbench runs.
//
// Tracing is off by default. With the "stdout" exporter every pipeline
// span is printed as JSON to a writer (stderr in the CLI) as soon as it
// ends, which is enough to see where a slow run spends its time without
// running a collector.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted in Config.TraceExporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

var (
	// ErrNilContext is returned when Init is called with a nil context.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter is returned for an unsupported exporter name.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter")
)

// Config controls telemetry behavior.
type Config struct {
	// ServiceName identifies this program in span resources.
	ServiceName string

	// ServiceVersion is the version string recorded with spans.
	ServiceVersion string

	// TraceExporter selects the exporter: "stdout" or "none".
	TraceExporter string

	// Writer receives stdout-exported spans. Default: os.Stderr
	Writer io.Writer
}

// DefaultConfig returns tracing disabled unless OTEL_TRACES_EXPORTER is
// "stdout". Other values (otlp, jaeger) name exporters this package does
// not build and are ignored.
func DefaultConfig() Config {
	exporter := ExporterNone
	if os.Getenv("OTEL_TRACES_EXPORTER") == ExporterStdout {
		exporter = ExporterStdout
	}
	return Config{
		ServiceName:    "archbench",
		ServiceVersion: "1.0.0",
		TraceExporter:  exporter,
		Writer:         os.Stderr,
	}
}

// Init builds a TracerProvider for cfg and installs it globally.
//
// Description:
//
//	With ExporterNone a no-op provider is returned and shutdown does
//	nothing. With ExporterStdout spans are exported synchronously, so
//	they appear in order even if the process exits right after shutdown.
//
// Inputs:
//
//	ctx - Context for initialization. Must not be nil.
//	cfg - Telemetry configuration.
//
// Outputs:
//
//	trace.TracerProvider - Provider for the analyzer.
//	func(context.Context) error - Flushes and stops the provider. Must be called.
//	error - ErrNilContext or ErrUnknownExporter.
func Init(ctx context.Context, cfg Config) (trace.TracerProvider, func(context.Context) error, error) {
	if ctx == nil {
		return nil, nil, ErrNilContext
	}

	switch cfg.TraceExporter {
	case "", ExporterNone:
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	case ExporterStdout:
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.TraceExporter)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(writer), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("create exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}
