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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// sectionTerminator ends a section: a newline followed by a "##" heading.
const sectionTerminator = "\n##"

// ParseLog reads the workflow log at path and extracts the measurements.
//
// # Description
//
// Reads the whole file and delegates to ParseContent.
//
// # Inputs
//
//   - path: Path to the workflow log.
//
// # Outputs
//
//   - Results: Measurements for every project/architecture pair.
//   - error: Wraps ErrLogNotFound when path does not exist, otherwise an
//     *AnalysisError for read or number conversion failures.
func ParseLog(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &AnalysisError{Stage: StageParse, Path: path, Err: fmt.Errorf("%w: %w", ErrLogNotFound, err)}
		}
		return nil, &AnalysisError{Stage: StageParse, Path: path, Err: err}
	}
	results, err := ParseContent(string(data))
	if err != nil {
		return nil, wrapStage(StageParse, path, err)
	}
	return results, nil
}

// ParseContent extracts measurements from log text.
//
// # Description
//
// For every project/architecture pair the first occurrence of the marker
// "<project>-<arch>" opens a section that ends right before the next
// line starting with "##" (or at the end of content). Within the section
// the first BUILD_TIME=<n> and TEST_TIME=<n> are recorded. Later
// occurrences of the same marker are ignored.
//
// Missing markers and missing metrics are not errors; they leave the
// corresponding entry unset.
//
// # Outputs
//
//   - Results: Always contains every project with both arch buckets.
//   - error: Non-nil only when a matched number does not fit in an int.
func ParseContent(content string) (Results, error) {
	results := NewResults()

	for _, p := range AllProjects {
		for _, a := range AllArches {
			section, ok := findSection(content, marker(p, a))
			if !ok {
				continue
			}
			for _, m := range AllMetrics {
				match := metricPatterns[m].FindStringSubmatch(section)
				if match == nil {
					continue
				}
				value, err := strconv.Atoi(match[1])
				if err != nil {
					return nil, &AnalysisError{
						Stage: StageParse,
						Err:   fmt.Errorf("%s %s for %s: %w", m, match[1], marker(p, a), err),
					}
				}
				results[p][a][m] = value
			}
		}
	}

	return results, nil
}

// findSection returns the text from the first occurrence of marker up to
// the next "\n##", or to the end of content.
func findSection(content, marker string) (string, bool) {
	start := strings.Index(content, marker)
	if start < 0 {
		return "", false
	}
	rest := content[start:]
	if end := strings.Index(rest, sectionTerminator); end >= 0 {
		return rest[:end], true
	}
	return rest, true
}
