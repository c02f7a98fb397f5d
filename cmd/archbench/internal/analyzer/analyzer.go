// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analyzer

import (
	"context"
	"time"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// tracerName is the instrumentation scope of the analyzer spans.
const tracerName = "github.com/PastaPastaPasta/github-actions-arch-benchmarks/analyzer"

// =============================================================================
// Configuration
// =============================================================================

// Options configures an Analyzer.
//
// A zero-value Options is valid: it logs through logging.Default(),
// records no spans and uses the wall clock.
type Options struct {
	// Logger receives one entry per pipeline stage.
	Logger *logging.Logger

	// TracerProvider creates the tracer for stage spans.
	// Default: a no-op provider.
	TracerProvider trace.TracerProvider

	// Now returns the time printed in the report.
	// Default: time.Now
	Now func() time.Time
}

// Request names the files of one analysis run.
type Request struct {
	// LogPath is the workflow log to read. Required.
	LogPath string

	// ReportPath receives the Markdown report. Required.
	ReportPath string

	// JSONPath receives the JSON snapshot. Required.
	JSONPath string

	// MetricsTextfile, when set, receives a Prometheus textfile.
	MetricsTextfile string
}

// Outcome is what a successful run produced.
type Outcome struct {
	// Snapshot holds the parsed results and computed ratios.
	Snapshot Snapshot

	// Report is the Markdown text written to Request.ReportPath.
	Report string

	// MeanTotalRatio is the value the key insight was derived from.
	MeanTotalRatio float64

	// GeneratedAt is the time printed in the report.
	GeneratedAt time.Time
}

// =============================================================================
// Analyzer
// =============================================================================

// Analyzer runs the parse, compute, render and write pipeline.
//
// # Thread Safety
//
// An Analyzer holds no per-run state and may be reused, but a run is a
// strictly sequential sequence of blocking file operations.
type Analyzer struct {
	logger *logging.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// New creates an Analyzer from opts, filling in defaults.
func New(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = noop.NewTracerProvider()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{
		logger: opts.Logger,
		tracer: opts.TracerProvider.Tracer(tracerName),
		now:    opts.Now,
	}
}

// Run executes one analysis.
//
// # Description
//
// Stages run in order: parse the log, compute ratios, render the report,
// write the report, write the JSON snapshot and, when requested, write
// the metrics textfile. The first failing stage stops the run. Files
// written by earlier stages are left in place.
//
// When the log does not exist nothing is written.
//
// # Inputs
//
//   - ctx: Parent context for the stage spans.
//   - req: File locations.
//
// # Outputs
//
//   - *Outcome: Results of the run. Nil on error.
//   - error: Wraps ErrLogNotFound for a missing log; otherwise an
//     *AnalysisError naming the failed stage.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "archbench.run", trace.WithAttributes(
		attribute.String("archbench.log_path", req.LogPath),
	))
	defer span.End()

	var results Results
	err := a.stage(ctx, StageParse, func() error {
		var err error
		results, err = ParseLog(req.LogPath)
		return err
	})
	if err != nil {
		return nil, failSpan(span, err)
	}

	var ratios Ratios
	a.step(ctx, StageCompute, func() {
		ratios = CalculateRatios(results)
	})
	a.logger.Info("computed ratios", "projects_compared", len(ratios))

	generatedAt := a.now()
	var report string
	a.step(ctx, StageRender, func() {
		report = GenerateReport(results, ratios, generatedAt)
	})

	snapshot := Snapshot{Results: results, Ratios: ratios}
	err = a.stage(ctx, StageWrite, func() error {
		if err := WriteReport(req.ReportPath, report); err != nil {
			return err
		}
		a.logger.Info("report written", "path", req.ReportPath, "bytes", len(report))
		if err := WriteSnapshot(req.JSONPath, snapshot); err != nil {
			return err
		}
		a.logger.Info("snapshot written", "path", req.JSONPath)
		return nil
	})
	if err != nil {
		return nil, failSpan(span, err)
	}

	if req.MetricsTextfile != "" {
		err = a.stage(ctx, StageMetrics, func() error {
			collector := NewMetricsCollector()
			collector.Observe(snapshot)
			return collector.WriteTextfile(req.MetricsTextfile)
		})
		if err != nil {
			return nil, failSpan(span, err)
		}
		a.logger.Info("metrics textfile written", "path", req.MetricsTextfile)
	}

	mean := MeanTotalRatio(ratios)
	span.SetAttributes(
		attribute.Int("archbench.projects_compared", len(ratios)),
		attribute.Float64("archbench.mean_total_ratio", mean),
	)

	return &Outcome{
		Snapshot:       snapshot,
		Report:         report,
		MeanTotalRatio: mean,
		GeneratedAt:    generatedAt,
	}, nil
}

// stage runs fn inside a child span and logs its duration.
func (a *Analyzer) stage(ctx context.Context, name string, fn func() error) error {
	_, span := a.tracer.Start(ctx, "archbench."+name)
	defer span.End()
	logger := a.logger.With("stage", name)

	start := time.Now()
	if err := fn(); err != nil {
		logger.Debug("stage failed", "error", err)
		return failSpan(span, err)
	}
	logger.Debug("stage complete", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// step is stage for work that cannot fail.
func (a *Analyzer) step(ctx context.Context, name string, fn func()) {
	_, span := a.tracer.Start(ctx, "archbench."+name)
	defer span.End()

	start := time.Now()
	fn()
	a.logger.With("stage", name).Debug("stage complete", "duration_ms", time.Since(start).Milliseconds())
}

// failSpan marks span as failed and returns err unchanged.
func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
