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

// CalculateRatios derives arm64/x86_64 ratios from parsed results.
//
// # Description
//
// A project is considered only when both of its architecture buckets
// hold at least one metric. For each metric present on both sides with a
// non-zero x86_64 value the ratio arm64/x86_64 is recorded. The total
// ratio uses build_time + test_time on each side (missing metrics count
// as 0) and is recorded when the x86_64 total is non-zero.
//
// A zero or missing baseline silently omits the ratio. A project that
// ends up with no ratio at all is left out of the returned map.
//
// # Outputs
//
//   - Ratios: Never nil; empty when no project could be compared.
func CalculateRatios(results Results) Ratios {
	ratios := make(Ratios)

	for _, p := range AllProjects {
		x86 := results.Get(p, ArchX86_64)
		arm := results.Get(p, ArchARM64)
		if len(x86) == 0 || len(arm) == 0 {
			continue
		}

		projectRatios := make(map[RatioKind]float64)
		for _, m := range AllMetrics {
			base, okBase := x86[m]
			value, okValue := arm[m]
			if !okBase || !okValue || base <= 0 {
				continue
			}
			projectRatios[ratioKindFor(m)] = float64(value) / float64(base)
		}

		if baseTotal := x86.Total(); baseTotal > 0 {
			projectRatios[RatioTotalTime] = float64(arm.Total()) / float64(baseTotal)
		}

		if len(projectRatios) > 0 {
			ratios[p] = projectRatios
		}
	}

	return ratios
}

// MeanTotalRatio returns the unweighted mean of the total_time ratios.
//
// Every project in ratios counts once; a project without a total ratio
// contributes 0. The mean of an empty map is 0.
func MeanTotalRatio(ratios Ratios) float64 {
	if len(ratios) == 0 {
		return 0
	}
	// Fixed order keeps the float sum identical between runs.
	var sum float64
	for _, p := range AllProjects {
		if projectRatios, ok := ratios[p]; ok {
			sum += projectRatios[RatioTotalTime]
		}
	}
	return sum / float64(len(ratios))
}
