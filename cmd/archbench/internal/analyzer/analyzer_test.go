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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ============================================================================
// Test Helpers
// ============================================================================

type harness struct {
	analyzer *Analyzer
	recorder *tracetest.SpanRecorder
	logs     *bytes.Buffer
	req      Request
}

func newHarness(t *testing.T, logContent string) *harness {
	t.Helper()
	dir := t.TempDir()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	logs := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: logs})

	h := &harness{
		analyzer: New(Options{
			Logger:         logger,
			TracerProvider: provider,
			Now:            func() time.Time { return reportTime },
		}),
		recorder: recorder,
		logs:     logs,
		req: Request{
			LogPath:    filepath.Join(dir, "workflow.log"),
			ReportPath: filepath.Join(dir, "out", "benchmark-report.md"),
			JSONPath:   filepath.Join(dir, "out", "benchmark-data.json"),
		},
	}
	if logContent != "" {
		require.NoError(t, os.WriteFile(h.req.LogPath, []byte(logContent), 0644))
	}
	return h
}

func (h *harness) spanNames() []string {
	var names []string
	for _, s := range h.recorder.Ended() {
		names = append(names, s.Name())
	}
	return names
}

// ============================================================================
// Run Tests
// ============================================================================

func TestRun_WritesReportAndSnapshot(t *testing.T) {
	h := newHarness(t, hugoLog)

	outcome, err := h.analyzer.Run(context.Background(), h.req)
	require.NoError(t, err)

	assert.Equal(t, hugoReport, outcome.Report)
	assert.Equal(t, reportTime, outcome.GeneratedAt)
	assert.InDelta(t, 40.0/30.0, outcome.MeanTotalRatio, 1e-9)

	report, err := os.ReadFile(h.req.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, hugoReport, string(report))

	snapshot, err := ReadSnapshot(h.req.JSONPath)
	require.NoError(t, err)
	assert.Equal(t, outcome.Snapshot, snapshot)
}

func TestRun_MissingLogWritesNothing(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.MkdirAll(filepath.Dir(h.req.ReportPath), 0755))
	require.NoError(t, os.WriteFile(h.req.ReportPath, []byte("previous"), 0644))

	outcome, err := h.analyzer.Run(context.Background(), h.req)

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, ErrLogNotFound)
	assert.NoFileExists(t, h.req.JSONPath)

	report, readErr := os.ReadFile(h.req.ReportPath)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(report))
}

func TestRun_NoMarkers(t *testing.T) {
	h := newHarness(t, "just some build output\n")

	outcome, err := h.analyzer.Run(context.Background(), h.req)
	require.NoError(t, err)

	assert.Empty(t, outcome.Snapshot.Ratios)
	assert.Contains(t, outcome.Report, "| Redis | 0s | 0s | 0s | 0s | 0s | 0s | 0.00x |")

	snapshot, err := ReadSnapshot(h.req.JSONPath)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Ratios)
	assert.Len(t, snapshot.Results, len(AllProjects))
}

func TestRun_MetricsTextfile(t *testing.T) {
	h := newHarness(t, hugoLog)
	h.req.MetricsTextfile = filepath.Join(filepath.Dir(h.req.LogPath), "metrics", "archbench.prom")

	_, err := h.analyzer.Run(context.Background(), h.req)
	require.NoError(t, err)

	data, err := os.ReadFile(h.req.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `archbench_ratio{metric="total_time",project="hugo"}`)
	assert.Contains(t, h.spanNames(), "archbench.metrics")
}

func TestRun_WriteFailure(t *testing.T) {
	h := newHarness(t, hugoLog)
	blocker := filepath.Join(filepath.Dir(h.req.LogPath), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	h.req.JSONPath = filepath.Join(blocker, "data.json")

	_, err := h.analyzer.Run(context.Background(), h.req)

	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageWrite, aerr.Stage)
	// The report stage ran before the failure and is kept.
	assert.FileExists(t, h.req.ReportPath)
}

// ============================================================================
// Observability Tests
// ============================================================================

func TestRun_Spans(t *testing.T) {
	h := newHarness(t, hugoLog)

	_, err := h.analyzer.Run(context.Background(), h.req)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"archbench.parse",
		"archbench.compute",
		"archbench.render",
		"archbench.write",
		"archbench.run",
	}, h.spanNames())

	ended := h.recorder.Ended()
	root := ended[len(ended)-1]
	for _, s := range ended[:len(ended)-1] {
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID(), s.Name())
	}
}

func TestRun_FailedSpanStatus(t *testing.T) {
	h := newHarness(t, "")

	_, err := h.analyzer.Run(context.Background(), h.req)
	require.Error(t, err)

	ended := h.recorder.Ended()
	require.Len(t, ended, 2)
	for _, s := range ended {
		assert.Equal(t, codes.Error, s.Status().Code, s.Name())
	}
}

func TestRun_Logs(t *testing.T) {
	h := newHarness(t, hugoLog)

	_, err := h.analyzer.Run(context.Background(), h.req)
	require.NoError(t, err)

	logs := h.logs.String()
	assert.Contains(t, logs, "stage complete")
	assert.Contains(t, logs, "stage=parse")
	assert.Contains(t, logs, "stage=compute")
	assert.Contains(t, logs, "projects_compared=1")
	assert.Contains(t, logs, "report written")
}

func TestNew_Defaults(t *testing.T) {
	a := New(Options{})
	require.NotNil(t, a.logger)
	require.NotNil(t, a.tracer)
	assert.WithinDuration(t, time.Now(), a.now(), time.Minute)
}
