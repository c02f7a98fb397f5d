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
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_Observe(t *testing.T) {
	c := NewMetricsCollector()
	c.Observe(hugoSnapshot(t))

	assert.Equal(t, 4, testutil.CollectAndCount(c.phase))
	assert.Equal(t, 3, testutil.CollectAndCount(c.ratio))
	assert.InDelta(t, 15, testutil.ToFloat64(c.phase.WithLabelValues("hugo", "arm64", "build_time")), 1e-9)
	assert.InDelta(t, 1.5, testutil.ToFloat64(c.ratio.WithLabelValues("hugo", "build_time")), 1e-9)
	assert.InDelta(t, 40.0/30.0, testutil.ToFloat64(c.meanRatio), 1e-9)
}

func TestMetricsCollector_EmptySnapshot(t *testing.T) {
	c := NewMetricsCollector()
	c.Observe(Snapshot{Results: NewResults(), Ratios: Ratios{}})

	assert.Equal(t, 0, testutil.CollectAndCount(c.phase))
	assert.Equal(t, 0, testutil.CollectAndCount(c.ratio))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.meanRatio))
}

func TestMetricsCollector_PrivateRegistry(t *testing.T) {
	first := NewMetricsCollector()
	second := NewMetricsCollector()
	first.Observe(hugoSnapshot(t))

	families, err := second.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		assert.NotEqual(t, "archbench_phase_seconds", mf.GetName())
	}
}

func TestMetricsCollector_WriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "archbench.prom")
	c := NewMetricsCollector()
	c.Observe(hugoSnapshot(t))

	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# TYPE archbench_ratio gauge")
	assert.Contains(t, text, `archbench_ratio{metric="total_time",project="hugo"} 1.33`)
	assert.Contains(t, text, `archbench_phase_seconds{arch="x86_64",metric="test_time",project="hugo"} 20`)
	assert.Contains(t, text, "archbench_mean_total_ratio 1.33")
}

func TestMetricsCollector_WriteTextfileFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewMetricsCollector().WriteTextfile(filepath.Join(blocker, "archbench.prom"))
	require.Error(t, err)

	var aerr *AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageMetrics, aerr.Stage)
}
