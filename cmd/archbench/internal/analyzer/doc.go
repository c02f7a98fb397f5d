// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analyzer turns a CI workflow log into a cross-architecture
// benchmark comparison.
//
// The log is scanned for one section per project/architecture pair
// (for example "hugo-arm64"). Each section runs from the marker to the
// next line starting with "##", or to the end of the log, and may carry
// a BUILD_TIME=<seconds> and a TEST_TIME=<seconds> line.
//
// # Pipeline
//
//	┌──────────┐     ┌───────────────┐     ┌──────────────┐     ┌──────────┐
//	│ ParseLog │────▶│ CalculateRatio│────▶│GenerateReport│────▶│  Write   │
//	│ Results  │     │ Ratios        │     │ Markdown     │     │ .md/.json│
//	└──────────┘     └───────────────┘     └──────────────┘     └──────────┘
//
// Every stage is a pure function except the first and the last, so the
// same log always yields the same report apart from the timestamp line.
//
// # Closed Sets
//
// Projects (hugo, ripgrep, redis), architectures (x86_64, arm64) and
// metrics (build_time, test_time) are enumerations. Adding one means
// adding a constant, not passing a different string.
//
// # Ratios
//
// A ratio is arm64 / x86_64. Values above 1 mean arm64 was slower. A
// ratio is omitted when its x86_64 baseline is missing or zero, and a
// project without any ratio is omitted from [Ratios] altogether.
package analyzer
