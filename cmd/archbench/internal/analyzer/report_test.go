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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

const hugoReport = `# Cross-Architecture Benchmark Analysis Report
Generated: 2025-03-04 05:06:07

## Performance Summary

| Project | x86_64 Build | x86_64 Test | x86_64 Total | ARM64 Build | ARM64 Test | ARM64 Total | ARM64/x86_64 Ratio |
|---------|-------------|-------------|-------------|-------------|------------|-------------|-------------------|
| Hugo | 10s | 20s | 30s | 15s | 25s | 40s | 1.33x |
| Ripgrep | 0s | 0s | 0s | 0s | 0s | 0s | 0.00x |
| Redis | 0s | 0s | 0s | 0s | 0s | 0s | 0.00x |

## Performance Analysis

### Hugo
- **Overall**: ARM64 is 1.3x slower than x86_64
- **Build**: ARM64/x86_64 ratio = 1.50
- **Test**: ARM64/x86_64 ratio = 1.25

## Key Insights

- ARM64 runners show consistently slower performance across projects
- Performance differences may be attributed to:
  - Architecture-specific optimizations
  - Compiler toolchain differences
  - Memory hierarchy variations
  - Runner hardware specifications`

func TestGenerateReport_Hugo(t *testing.T) {
	results, err := ParseContent(hugoLog)
	require.NoError(t, err)

	report := GenerateReport(results, CalculateRatios(results), reportTime)

	assert.Equal(t, hugoReport, report)
	assert.False(t, strings.HasSuffix(report, "\n"))
}

func TestGenerateReport_NoMarkers(t *testing.T) {
	results := NewResults()
	report := GenerateReport(results, CalculateRatios(results), reportTime)

	for _, p := range AllProjects {
		assert.Contains(t, report, "| "+p.Title()+" | 0s | 0s | 0s | 0s | 0s | 0s | 0.00x |")
		assert.NotContains(t, report, "### "+p.Title())
	}
	// The mean of no projects is 0.
	assert.Contains(t, report, "- ARM64 runners demonstrate superior performance across projects")
}

func TestGenerateReport_SkipsZeroPhaseRatios(t *testing.T) {
	results := NewResults()
	ratios := Ratios{ProjectRedis: {RatioTotalTime: 0.5}}

	report := GenerateReport(results, ratios, reportTime)

	assert.Contains(t, report, "### Redis\n- **Overall**: ARM64 is 2.0x faster than x86_64\n\n## Key Insights")
	assert.NotContains(t, report, "**Build**")
	assert.NotContains(t, report, "**Test**")
}

func TestGenerateReport_ProjectOrder(t *testing.T) {
	ratios := Ratios{
		ProjectRedis:   {RatioTotalTime: 1},
		ProjectHugo:    {RatioTotalTime: 1},
		ProjectRipgrep: {RatioTotalTime: 1},
	}

	report := GenerateReport(NewResults(), ratios, reportTime)

	hugo := strings.Index(report, "### Hugo")
	ripgrep := strings.Index(report, "### Ripgrep")
	redis := strings.Index(report, "### Redis")
	assert.True(t, hugo < ripgrep && ripgrep < redis, "sections must follow hugo, ripgrep, redis")
}

// ============================================================================
// Narrative Tests
// ============================================================================

func TestDescribeOverall(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"slower", 1.33, "ARM64 is 1.3x slower than x86_64"},
		{"faster", 0.5, "ARM64 is 2.0x faster than x86_64"},
		{"exactly one", 1.0, "ARM64 and x86_64 have similar performance"},
		{"zero", 0, "ARM64 is faster than x86_64 (no measurable ARM64 time)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeOverall(tt.ratio))
		})
	}
}

func TestGenerateReport_SimilarBranch(t *testing.T) {
	results := resultsWith(map[Project]map[Arch]Measurements{
		ProjectRipgrep: {
			ArchX86_64: {MetricBuildTime: 10, MetricTestTime: 10},
			ArchARM64:  {MetricBuildTime: 12, MetricTestTime: 8},
		},
	})
	ratios := CalculateRatios(results)
	require.Equal(t, 1.0, ratios[ProjectRipgrep][RatioTotalTime])

	report := GenerateReport(results, ratios, reportTime)

	assert.Contains(t, report, "- **Overall**: ARM64 and x86_64 have similar performance")
	assert.NotContains(t, report, "slower than x86_64")
	assert.NotContains(t, report, "faster than x86_64")
	assert.Contains(t, report, "- ARM64 and x86_64 runners show comparable performance")
}

func TestDescribeMean(t *testing.T) {
	tests := []struct {
		mean float64
		want string
	}{
		{1.5, "ARM64 runners show consistently slower performance across projects"},
		{1.1, "ARM64 and x86_64 runners show comparable performance"},
		{1.0, "ARM64 and x86_64 runners show comparable performance"},
		{0.9, "ARM64 and x86_64 runners show comparable performance"},
		{0.89, "ARM64 runners demonstrate superior performance across projects"},
		{0, "ARM64 runners demonstrate superior performance across projects"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeMean(tt.mean), "mean %v", tt.mean)
	}
}
