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
	"regexp"
	"strings"
)

// =============================================================================
// Projects
// =============================================================================

// Project identifies one of the benchmarked open source projects.
//
// The set is closed: the zero value is ProjectHugo and anything outside
// AllProjects is invalid.
type Project int

const (
	// ProjectHugo is the Hugo static site generator (Go).
	ProjectHugo Project = iota

	// ProjectRipgrep is the ripgrep search tool (Rust).
	ProjectRipgrep

	// ProjectRedis is the Redis server (C).
	ProjectRedis
)

// AllProjects lists every project in report order.
var AllProjects = []Project{ProjectHugo, ProjectRipgrep, ProjectRedis}

var projectNames = [...]string{
	ProjectHugo:    "hugo",
	ProjectRipgrep: "ripgrep",
	ProjectRedis:   "redis",
}

// String returns the lower-case name used in log markers and JSON.
func (p Project) String() string {
	if !p.Valid() {
		return fmt.Sprintf("project(%d)", int(p))
	}
	return projectNames[p]
}

// Title returns the name with its first letter upper-cased ("Hugo").
func (p Project) Title() string {
	name := p.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Valid reports whether p is a member of AllProjects.
func (p Project) Valid() bool {
	return p >= ProjectHugo && p <= ProjectRedis
}

// MarshalText implements encoding.TextMarshaler.
func (p Project) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProject, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Project) UnmarshalText(text []byte) error {
	parsed, err := ParseProject(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseProject converts a project name to a Project.
//
// # Inputs
//
//   - name: "hugo", "ripgrep" or "redis" (exact, lower-case).
//
// # Outputs
//
//   - Project: The matching project.
//   - error: ErrUnknownProject for any other name.
func ParseProject(name string) (Project, error) {
	for _, p := range AllProjects {
		if projectNames[p] == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProject, name)
}

// =============================================================================
// Architectures
// =============================================================================

// Arch identifies a runner CPU architecture.
type Arch int

const (
	// ArchX86_64 is the baseline architecture.
	ArchX86_64 Arch = iota

	// ArchARM64 is compared against the baseline.
	ArchARM64
)

// AllArches lists every architecture, baseline first.
var AllArches = []Arch{ArchX86_64, ArchARM64}

var archNames = [...]string{
	ArchX86_64: "x86_64",
	ArchARM64:  "arm64",
}

func (a Arch) String() string {
	if !a.Valid() {
		return fmt.Sprintf("arch(%d)", int(a))
	}
	return archNames[a]
}

// Valid reports whether a is a member of AllArches.
func (a Arch) Valid() bool {
	return a == ArchX86_64 || a == ArchARM64
}

// MarshalText implements encoding.TextMarshaler.
func (a Arch) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArch, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arch) UnmarshalText(text []byte) error {
	parsed, err := ParseArch(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseArch converts "x86_64" or "arm64" to an Arch.
func ParseArch(name string) (Arch, error) {
	for _, a := range AllArches {
		if archNames[a] == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArch, name)
}

// marker returns the log substring that opens the section for p on a.
func marker(p Project, a Arch) string {
	return p.String() + "-" + a.String()
}

// =============================================================================
// Metrics
// =============================================================================

// Metric identifies a timed phase reported in the log.
type Metric int

const (
	// MetricBuildTime is the compile phase, reported as BUILD_TIME=<seconds>.
	MetricBuildTime Metric = iota

	// MetricTestTime is the test phase, reported as TEST_TIME=<seconds>.
	MetricTestTime
)

// AllMetrics lists every metric in extraction order.
var AllMetrics = []Metric{MetricBuildTime, MetricTestTime}

var metricNames = [...]string{
	MetricBuildTime: "build_time",
	MetricTestTime:  "test_time",
}

// metricPatterns holds the extraction regex for each metric.
var metricPatterns = [...]*regexp.Regexp{
	MetricBuildTime: regexp.MustCompile(`BUILD_TIME=(\d+)`),
	MetricTestTime:  regexp.MustCompile(`TEST_TIME=(\d+)`),
}

func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// Valid reports whether m is a member of AllMetrics.
func (m Metric) Valid() bool {
	return m == MetricBuildTime || m == MetricTestTime
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	for _, candidate := range AllMetrics {
		if metricNames[candidate] == string(text) {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMetric, string(text))
}

// RatioKind identifies a computed arm64/x86_64 ratio.
type RatioKind int

const (
	// RatioBuildTime compares build_time.
	RatioBuildTime RatioKind = iota

	// RatioTestTime compares test_time.
	RatioTestTime

	// RatioTotalTime compares build_time + test_time.
	RatioTotalTime
)

// AllRatioKinds lists every ratio kind.
var AllRatioKinds = []RatioKind{RatioBuildTime, RatioTestTime, RatioTotalTime}

var ratioNames = [...]string{
	RatioBuildTime: "build_time",
	RatioTestTime:  "test_time",
	RatioTotalTime: "total_time",
}

func (k RatioKind) String() string {
	if k < RatioBuildTime || k > RatioTotalTime {
		return fmt.Sprintf("ratio(%d)", int(k))
	}
	return ratioNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k RatioKind) MarshalText() ([]byte, error) {
	if k < RatioBuildTime || k > RatioTotalTime {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RatioKind) UnmarshalText(text []byte) error {
	for _, candidate := range AllRatioKinds {
		if ratioNames[candidate] == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMetric, string(text))
}

// ratioKindFor maps a per-phase metric to its ratio kind.
func ratioKindFor(m Metric) RatioKind {
	if m == MetricTestTime {
		return RatioTestTime
	}
	return RatioBuildTime
}

// =============================================================================
// Result Containers
// =============================================================================

// Measurements maps a metric to its value in seconds.
//
// A metric that was not found in the log has no key; it is not zero.
type Measurements map[Metric]int

// Total returns build_time + test_time, counting missing metrics as 0.
func (m Measurements) Total() int {
	return m[MetricBuildTime] + m[MetricTestTime]
}

// Results holds the parsed measurements per project and architecture.
//
// Results produced by this package always hold every project with both
// architecture buckets, even when a bucket is empty.
type Results map[Project]map[Arch]Measurements

// NewResults returns Results with an empty bucket for every
// project/architecture pair.
func NewResults() Results {
	results := make(Results, len(AllProjects))
	for _, p := range AllProjects {
		results[p] = make(map[Arch]Measurements, len(AllArches))
		for _, a := range AllArches {
			results[p][a] = Measurements{}
		}
	}
	return results
}

// Get returns the measurements for p on a, or nil when absent.
func (r Results) Get(p Project, a Arch) Measurements {
	return r[p][a]
}

// Ratios holds the computed arm64/x86_64 ratios per project.
type Ratios map[Project]map[RatioKind]float64

// Snapshot is the JSON document persisted next to the report.
type Snapshot struct {
	Results Results `json:"results"`
	Ratios  Ratios  `json:"ratios"`
}
