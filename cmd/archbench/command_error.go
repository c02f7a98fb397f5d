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

// runError marks a failure that happened after the inputs were accepted:
// while analyzing, writing or uploading.
//
// # Example
//
//	var rerr *runError
//	if errors.As(err, &rerr) {
//	    fmt.Println(rerr.Err)
//	}
type runError struct {
	// Err is the underlying error.
	Err error
}

// Error returns the underlying message.
func (e *runError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
//
// Enables errors.Is() and errors.As() to work through the error chain.
func (e *runError) Unwrap() error {
	return e.Err
}
