// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Defaults mirrored by the CLI flags.
const (
	DefaultReportPath   = "results/benchmark-analysis.md"
	DefaultJSONPath     = "results/benchmark-results.json"
	DefaultUploadPrefix = "archbench"
	DefaultLogLevel     = "warn"
)

// ArchbenchConfig is the optional YAML configuration file.
//
// Every field has a default, so an empty file is valid. Command line
// flags that are set explicitly take precedence over the file.
type ArchbenchConfig struct {
	// Paths: where the report and snapshot are written
	Paths PathsConfig `yaml:"paths"`

	// Logging: structured logs on stderr and optionally a log directory
	Logging LoggingConfig `yaml:"logging"`

	// Console: styling of the user-facing summary
	Console ConsoleConfig `yaml:"console"`

	// Metrics: Prometheus textfile export
	Metrics MetricsConfig `yaml:"metrics"`

	// Upload: publishing the artifacts to Google Cloud Storage
	Upload UploadConfig `yaml:"upload"`

	// Tracing: OpenTelemetry span export
	Tracing TracingConfig `yaml:"tracing"`
}

// PathsConfig locates the report and the JSON snapshot.
type PathsConfig struct {
	Report string `yaml:"report" validate:"required"` // e.g. results/benchmark-analysis.md
	JSON   string `yaml:"json" validate:"required"`   // e.g. results/benchmark-results.json
}

// LoggingConfig controls the structured log on stderr and in Dir.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet,omitempty"` // file logging in Dir still applies
	Dir   string `yaml:"dir,omitempty"`
}

// ConsoleConfig controls the user-facing summary.
type ConsoleConfig struct {
	// Personality is "full", "minimal" or "machine"; empty means detect
	// from the terminal.
	Personality string `yaml:"personality,omitempty" validate:"omitempty,oneof=full minimal machine"`
}

// MetricsConfig enables the Prometheus textfile when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// UploadConfig publishes the artifacts to a GCS bucket.
type UploadConfig struct {
	// Bucket enables the upload when non-empty.
	Bucket string `yaml:"bucket,omitempty" validate:"omitempty,gcsbucket"`

	// Prefix is prepended to every object name.
	Prefix string `yaml:"prefix"`

	// CredentialsFile is a service account key. Empty means Application
	// Default Credentials.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// TracingConfig selects the span exporter ("none" or "stdout").
type TracingConfig struct {
	Exporter string `yaml:"exporter" validate:"required,oneof=none stdout"`
}

// Enabled reports whether artifacts should be uploaded.
func (u UploadConfig) Enabled() bool {
	return u.Bucket != ""
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() ArchbenchConfig {
	return ArchbenchConfig{
		Paths: PathsConfig{
			Report: DefaultReportPath,
			JSON:   DefaultJSONPath,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Upload: UploadConfig{
			Prefix: DefaultUploadPrefix,
		},
		Tracing: TracingConfig{
			Exporter: "none",
		},
	}
}

// =============================================================================
// Validation
// =============================================================================

// bucketNamePattern follows the GCS naming rules for non-domain buckets.
var bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{1,61}[a-z0-9]$`)

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("gcsbucket", validateBucketName)
}

func validateBucketName(fl validator.FieldLevel) bool {
	return bucketNamePattern.MatchString(fl.Field().String())
}

// Validate checks the configuration against its struct tags.
//
// # Outputs
//
//   - error: Nil when valid; otherwise one line per failing field.
func (c *ArchbenchConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("invalid config: %s", describe(verrs))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
	}
	return msg
}
