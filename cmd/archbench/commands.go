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
	"io"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/config"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/ux"
	"github.com/spf13/cobra"
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	logPath         string
	reportPath      string
	jsonPath        string
	configPath      string
	metricsTextfile string
	uploadBucket    string
	uploadPrefix    string
	credentialsFile string
	logLevel        string
	logJSON         bool
	trace           bool
	plain           bool
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state from leaking between invocations.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "archbench --log <workflow.log>",
		Short: "Compare x86_64 and ARM64 GitHub Actions benchmark timings",
		Long: `archbench reads a GitHub Actions workflow log containing build and test
timings for hugo, ripgrep and redis on x86_64 and ARM64 runners, and writes
a Markdown report plus a JSON snapshot of the parsed results and ratios.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.logPath, "log", "", "Path to the workflow log file")
	flags.StringVar(&opts.reportPath, "output", config.DefaultReportPath, "Output path for the Markdown report")
	flags.StringVar(&opts.jsonPath, "json", config.DefaultJSONPath, "Output path for the JSON results")
	flags.StringVar(&opts.configPath, "config", "", "Optional YAML config file; explicit flags override it")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write a Prometheus textfile to this path")
	flags.StringVar(&opts.uploadBucket, "upload-bucket", "", "Upload the artifacts to this GCS bucket")
	flags.StringVar(&opts.uploadPrefix, "upload-prefix", config.DefaultUploadPrefix, "Object prefix for uploaded artifacts")
	flags.StringVar(&opts.credentialsFile, "credentials", "", "Service account key for GCS (default: Application Default Credentials)")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write logs to stderr as JSON")
	flags.BoolVar(&opts.trace, "trace", false, "Print OpenTelemetry spans to stderr")
	flags.BoolVar(&opts.plain, "plain", false, "Plain console output (default when stdout is not a terminal)")
	_ = rootCmd.MarkFlagRequired("log")

	rootCmd.AddCommand(newInitConfigCmd())
	return rootCmd
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	personality := ux.GetPersonality()
	personality.Out = stdout
	personality.Err = stderr
	ux.SetPersonality(personality)
	ux.InitPersonality()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		ux.Error(errorMessage(err))
		return ExitFailure
	}
	return ExitSuccess
}
