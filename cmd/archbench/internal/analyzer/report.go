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
	"fmt"
	"strings"
	"time"
)

// Insight thresholds applied to MeanTotalRatio.
const (
	slowerThreshold = 1.1
	fasterThreshold = 0.9
)

// TimestampLayout is the layout of the "Generated:" line.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	summaryHeader    = "| Project | x86_64 Build | x86_64 Test | x86_64 Total | ARM64 Build | ARM64 Test | ARM64 Total | ARM64/x86_64 Ratio |"
	summaryDelimiter = "|---------|-------------|-------------|-------------|-------------|------------|-------------|-------------------|"
)

var possibleCauses = []string{
	"Architecture-specific optimizations",
	"Compiler toolchain differences",
	"Memory hierarchy variations",
	"Runner hardware specifications",
}

// GenerateReport renders the Markdown report.
//
// # Description
//
// The report has four parts: a title with the generation time, a summary
// table with one row per project (absent values shown as 0), a narrative
// per compared project, and a key insights section driven by the mean
// total ratio. Lines are joined with "\n" and there is no trailing
// newline.
//
// # Inputs
//
//   - results: Parsed measurements.
//   - ratios: Output of CalculateRatios for the same results.
//   - now: Time printed on the "Generated:" line.
//
// # Outputs
//
//   - string: The Markdown document.
func GenerateReport(results Results, ratios Ratios, now time.Time) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Cross-Architecture Benchmark Analysis Report")
	add("Generated: %s", now.Format(TimestampLayout))
	add("")

	// -------------------------------------------------------------------------
	// Summary table
	// -------------------------------------------------------------------------
	add("## Performance Summary")
	add("")
	add(summaryHeader)
	add(summaryDelimiter)
	for _, p := range AllProjects {
		x86 := results.Get(p, ArchX86_64)
		arm := results.Get(p, ArchARM64)
		add("| %s | %ds | %ds | %ds | %ds | %ds | %ds | %.2fx |",
			p.Title(),
			x86[MetricBuildTime], x86[MetricTestTime], x86.Total(),
			arm[MetricBuildTime], arm[MetricTestTime], arm.Total(),
			ratios[p][RatioTotalTime],
		)
	}
	add("")

	// -------------------------------------------------------------------------
	// Per-project narrative
	// -------------------------------------------------------------------------
	add("## Performance Analysis")
	add("")
	for _, p := range AllProjects {
		projectRatios, ok := ratios[p]
		if !ok {
			continue
		}
		add("### %s", p.Title())
		add("- **Overall**: %s", describeOverall(projectRatios[RatioTotalTime]))
		if build := projectRatios[RatioBuildTime]; build > 0 {
			add("- **Build**: ARM64/x86_64 ratio = %.2f", build)
		}
		if test := projectRatios[RatioTestTime]; test > 0 {
			add("- **Test**: ARM64/x86_64 ratio = %.2f", test)
		}
		add("")
	}

	// -------------------------------------------------------------------------
	// Insights
	// -------------------------------------------------------------------------
	add("## Key Insights")
	add("")
	add("- %s", describeMean(MeanTotalRatio(ratios)))
	add("- Performance differences may be attributed to:")
	for _, cause := range possibleCauses {
		add("  - %s", cause)
	}

	return strings.Join(lines, "\n")
}

// describeOverall classifies a total ratio.
//
// The faster case is inverted so it reads as "N.Nx faster". A ratio of
// exactly 0 (arm64 reported no time at all) has no finite inverse and is
// reported without a factor.
func describeOverall(ratio float64) string {
	switch {
	case ratio > 1:
		return fmt.Sprintf("ARM64 is %.1fx slower than x86_64", ratio)
	case ratio > 0 && ratio < 1:
		return fmt.Sprintf("ARM64 is %.1fx faster than x86_64", 1/ratio)
	case ratio <= 0:
		return "ARM64 is faster than x86_64 (no measurable ARM64 time)"
	default:
		return "ARM64 and x86_64 have similar performance"
	}
}

// describeMean picks the key insight for the mean total ratio.
func describeMean(mean float64) string {
	switch {
	case mean > slowerThreshold:
		return "ARM64 runners show consistently slower performance across projects"
	case mean < fasterThreshold:
		return "ARM64 runners demonstrate superior performance across projects"
	default:
		return "ARM64 and x86_64 runners show comparable performance"
	}
}
