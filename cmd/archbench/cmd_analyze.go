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
	"context"
	"fmt"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/config"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/gcs"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/internal/analyzer"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/logging"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/telemetry"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/ux"
	"github.com/spf13/cobra"
)

// runAnalyze is the root command: analyze the log, write the artifacts
// and optionally upload them.
func runAnalyze(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	if cfg.Console.Personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(cfg.Console.Personality))
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "archbench",
		JSON:    cfg.Logging.JSON,
		Quiet:   cfg.Logging.Quiet,
		Output:  cmd.ErrOrStderr(),
	})
	defer logger.Close()

	ctx := cmd.Context()

	traceCfg := telemetry.DefaultConfig()
	traceCfg.Writer = cmd.ErrOrStderr()
	// An explicit --trace wins over OTEL_TRACES_EXPORTER either way.
	if cmd.Flags().Changed("trace") || cfg.Tracing.Exporter != telemetry.ExporterNone {
		traceCfg.TraceExporter = cfg.Tracing.Exporter
	}
	provider, shutdown, err := telemetry.Init(ctx, traceCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			ux.Warning(fmt.Sprintf("trace shutdown failed: %v", err))
		}
	}()

	req := analyzer.Request{
		LogPath:         opts.logPath,
		ReportPath:      cfg.Paths.Report,
		JSONPath:        cfg.Paths.JSON,
		MetricsTextfile: cfg.Metrics.Textfile,
	}
	ux.Title("Cross-architecture benchmark analysis")
	logger.Debug("starting analysis", "log", req.LogPath, "report", req.ReportPath, "json", req.JSONPath)

	a := analyzer.New(analyzer.Options{
		Logger:         logger,
		TracerProvider: provider,
	})
	outcome, err := a.Run(ctx, req)
	if err != nil {
		logger.Debug("analysis failed", "error", err)
		return &runError{Err: err}
	}

	ux.Success("Analysis complete!")
	ux.KeyValue("Report saved to", req.ReportPath)
	ux.KeyValue("JSON data saved to", req.JSONPath)
	if req.MetricsTextfile != "" {
		ux.KeyValue("Metrics saved to", req.MetricsTextfile)
	}
	logger.Info("analysis finished",
		"projects_compared", len(outcome.Snapshot.Ratios),
		"mean_total_ratio", outcome.MeanTotalRatio,
	)

	if !cfg.Upload.Enabled() {
		return nil
	}
	return uploadArtifacts(ctx, logger, cfg.Upload, req)
}

// uploadArtifacts copies the written files to GCS.
func uploadArtifacts(ctx context.Context, logger *logging.Logger, upload config.UploadConfig, req analyzer.Request) error {
	client, err := gcs.NewClient(ctx, upload.Bucket, upload.CredentialsFile)
	if err != nil {
		return &runError{Err: fmt.Errorf("upload: %w", err)}
	}
	defer client.Close()

	paths := []string{req.ReportPath, req.JSONPath}
	if req.MetricsTextfile != "" {
		paths = append(paths, req.MetricsTextfile)
	}

	urls, err := client.UploadArtifacts(ctx, upload.Prefix, paths...)
	for _, url := range urls {
		logger.Info("artifact uploaded", "url", url)
		ux.Info("Uploaded: " + url)
	}
	if err != nil {
		return &runError{Err: fmt.Errorf("upload: %w", err)}
	}
	return nil
}

// resolveConfig loads the config file and applies the flags the user
// set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.ArchbenchConfig, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Paths.Report = opts.reportPath
	}
	if flags.Changed("json") {
		cfg.Paths.JSON = opts.jsonPath
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}
	if flags.Changed("upload-bucket") {
		cfg.Upload.Bucket = opts.uploadBucket
	}
	if flags.Changed("upload-prefix") {
		cfg.Upload.Prefix = opts.uploadPrefix
	}
	if flags.Changed("credentials") {
		cfg.Upload.CredentialsFile = opts.credentialsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Logging.JSON = opts.logJSON
	}
	if flags.Changed("trace") {
		cfg.Tracing.Exporter = telemetry.ExporterNone
		if opts.trace {
			cfg.Tracing.Exporter = telemetry.ExporterStdout
		}
	}
	if flags.Changed("plain") && opts.plain {
		cfg.Console.Personality = string(ux.PersonalityMachine)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
