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
)

// Sentinel errors for analysis.
var (
	// ErrLogNotFound means the input log path does not resolve to a file.
	ErrLogNotFound = errors.New("log file not found")

	// Enumeration errors
	ErrUnknownProject = errors.New("unknown project")
	ErrUnknownArch    = errors.New("unknown architecture")
	ErrUnknownMetric  = errors.New("unknown metric")
)

// Stage names used in AnalysisError.
const (
	StageParse   = "parse"
	StageCompute = "compute"
	StageRender  = "render"
	StageWrite   = "write"
	StageMetrics = "metrics"
)

// AnalysisError wraps a failure in one stage of the pipeline.
//
// # Description
//
// Carries the stage that failed and the file involved, if any. It
// implements Unwrap, so errors.Is(err, ErrLogNotFound) sees through it.
//
// # Example
//
//	var aerr *AnalysisError
//	if errors.As(err, &aerr) {
//	    fmt.Println(aerr.Stage) // "write"
//	}
type AnalysisError struct {
	// Stage is one of the Stage* constants.
	Stage string

	// Path is the file being read or written ("" when none).
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// wrapStage wraps err in an AnalysisError unless it already is one.
func wrapStage(stage, path string, err error) error {
	if err == nil {
		return nil
	}
	var aerr *AnalysisError
	if errors.As(err, &aerr) {
		return err
	}
	return &AnalysisError{Stage: stage, Path: path, Err: err}
}
