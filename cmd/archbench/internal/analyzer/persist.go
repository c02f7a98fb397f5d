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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File permissions for written artifacts.
const (
	artifactPerm = 0644
	dirPerm      = 0755
)

// WriteReport writes the Markdown report to path, replacing any existing
// file. Missing parent directories are created.
func WriteReport(path, report string) error {
	return writeArtifact(path, []byte(report))
}

// WriteSnapshot writes results and ratios as indented JSON to path.
//
// # Description
//
// The document has exactly two top-level keys, "results" and "ratios".
// Map keys are encoded through the enum names and sorted by
// encoding/json, so equal snapshots always produce equal bytes.
//
// # Inputs
//
//   - path: Destination file. Overwritten, not replaced atomically.
//   - snapshot: Results and ratios to persist.
//
// # Outputs
//
//   - error: *AnalysisError on encoding or write failure.
func WriteSnapshot(path string, snapshot Snapshot) error {
	if snapshot.Results == nil {
		snapshot.Results = Results{}
	}
	if snapshot.Ratios == nil {
		snapshot.Ratios = Ratios{}
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return &AnalysisError{Stage: StageWrite, Path: path, Err: fmt.Errorf("encode snapshot: %w", err)}
	}
	return writeArtifact(path, data)
}

// ReadSnapshot loads a snapshot previously written by WriteSnapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	var snapshot Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return &AnalysisError{Stage: StageWrite, Path: path, Err: fmt.Errorf("create directory: %w", err)}
		}
	}
	if err := os.WriteFile(path, data, artifactPerm); err != nil {
		return &AnalysisError{Stage: StageWrite, Path: path, Err: err}
	}
	return nil
}
