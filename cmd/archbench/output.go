// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/internal/analyzer"
)

// Exit codes for the CLI.
const (
	ExitSuccess = 0 // Artifacts written (and uploaded, if configured)
	ExitFailure = 1 // Any failure, including a missing log
)

// errorMessage maps a command error to the line printed for the user.
//
// # Description
//
// A missing log gets its own message naming the path. Failures inside
// the analysis or upload are reported as analysis errors. Anything else
// (flags, config) is printed as is.
func errorMessage(err error) string {
	if errors.Is(err, analyzer.ErrLogNotFound) {
		var aerr *analyzer.AnalysisError
		if errors.As(err, &aerr) && aerr.Path != "" {
			return fmt.Sprintf("Error: Log file '%s' not found", aerr.Path)
		}
		return "Error: Log file not found"
	}
	var rerr *runError
	if errors.As(err, &rerr) {
		return fmt.Sprintf("Error analyzing results: %v", rerr.Err)
	}
	return fmt.Sprintf("Error: %v", err)
}
