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
	"fmt"

	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/cmd/archbench/config"
	"github.com/PastaPastaPasta/github-actions-arch-benchmarks/pkg/ux"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "archbench.yaml"

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a config file with the default settings",
		Long: fmt.Sprintf(`Writes the default configuration as YAML to path (default %s).
An existing file is never overwritten.`, defaultConfigPath),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			ux.Success("Config written to: " + path)
			return nil
		},
	}
}
