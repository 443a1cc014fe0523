// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
	"github.com/stratalabs/evalsample/pkg/logging"
	"github.com/stratalabs/evalsample/pkg/ux"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// --- Global Command Variables ---
var (
	planPath    string
	datasetURL  string // CLI override for plan.dataset_url
	sampleSize  int    // CLI override for plan.sample_size (0 = keep plan value)
	seed        int64
	outputDir   string
	baseName    string
	logLevel    string
	logDir      string
	noColor     bool
	maxAttempts int

	logger = logging.Default()

	rootCmd = &cobra.Command{
		Use:     "evalsample",
		Short:   "Draw reproducible stratified samples from evaluation datasets",
		Long: `evalsample downloads an obfuscated benchmark test set, decodes it,
and draws a seeded random sample whose category mix mirrors the full
dataset. Identical plans produce identical samples.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ux.SetPlain(true)
			}
			logger = logging.New(logging.Config{
				Level:   logging.ParseLevel(logLevel),
				LogDir:  logDir,
				Service: "evalsample",
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
	}

	drawCmd = &cobra.Command{
		Use:   "draw",
		Short: "Fetch the dataset and write a stratified sample (CSV, JSON, TXT)",
		RunE:  runDraw, // Defined in cmd_draw.go
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Preview the per-category quotas a plan would allocate (no network)",
		RunE:  runPlan, // Defined in cmd_plan.go
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Fetch and decode the dataset, then compare its distribution to the plan's reference",
		RunE:  runInspect, // Defined in cmd_inspect.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&planPath, "plan", "", "Path to a plan file (YAML); omit for the built-in BrowseComp plan")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for JSON log files (disabled when empty)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled terminal output")

	rootCmd.AddCommand(drawCmd)
	drawCmd.Flags().StringVar(&datasetURL, "url", "", "Override the plan's dataset URL")
	drawCmd.Flags().IntVarP(&sampleSize, "size", "n", 0, "Override the plan's sample size")
	drawCmd.Flags().Int64Var(&seed, "seed", 0, "Override the plan's random seed")
	drawCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory for the sample files")
	drawCmd.Flags().StringVar(&baseName, "name", "", "Filename stem (default: sample_{size}_seed{seed})")
	drawCmd.Flags().IntVar(&maxAttempts, "attempts", 3, "Download attempts before giving up")

	rootCmd.AddCommand(planCmd)
	planCmd.Flags().IntVarP(&sampleSize, "size", "n", 0, "Override the plan's sample size")

	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&datasetURL, "url", "", "Override the plan's dataset URL")
	inspectCmd.Flags().IntVar(&maxAttempts, "attempts", 3, "Download attempts before giving up")
}
