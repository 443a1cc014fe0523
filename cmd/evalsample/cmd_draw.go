// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/dataset"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/export"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
	"github.com/stratalabs/evalsample/pkg/ux"
)

func runDraw(cmd *cobra.Command, _ []string) error {
	p, err := loadPlan(cmd)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	ux.Title("Stratified Sample Draw")
	ux.KeyValue("Run ID", runID)
	ux.KeyValue("Dataset", p.DatasetURL)
	ux.KeyValue("Sample size", fmt.Sprintf("%d", p.SampleSize))
	ux.KeyValue("Seed", fmt.Sprintf("%d", p.Seed))
	if p.ReserveThrough >= 0 {
		ux.KeyValue("Reserved rows", fmt.Sprintf("0..%d", p.ReserveThrough))
	}
	fmt.Println()

	// 1. Download the encrypted dataset.
	spinner := NewSpinner(SpinnerConfig{Message: "Downloading dataset..."})
	spinner.Start()

	rows, err := dataset.Fetch(ctx, dataset.FetchConfig{
		URL:              p.DatasetURL,
		MaxAttempts:      maxAttempts,
		FallbackCategory: p.FallbackCategory,
	}, log)
	if err != nil {
		spinner.StopFailure("Download failed")
		ux.Error(err.Error())
		return err
	}
	spinner.StopSuccess(fmt.Sprintf("Downloaded %d rows", len(rows)))

	// 2. Decode each row with its embedded key.
	spinner = NewSpinner(SpinnerConfig{Message: "Decoding records..."})
	spinner.Start()

	pool, stats := dataset.DecodePool(rows, log, func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Decoding records... %d/%d", done, total))
	})
	if len(pool) == 0 {
		spinner.StopFailure("No records decoded")
		err := fmt.Errorf("no usable records in dataset (%d rows skipped)", stats.Skipped)
		ux.Error(err.Error())
		return err
	}
	spinner.StopSuccess(fmt.Sprintf("Decoded %d records", stats.Processed))
	if stats.Skipped > 0 {
		ux.Warning(fmt.Sprintf("%d rows skipped (undecodable)", stats.Skipped))
	}

	// 3. Allocate quotas from the plan's reference distribution.
	quota, warnings, err := sampling.Allocate(p.ReferenceHistogram(), p.SampleSize)
	if err != nil {
		ux.Error(err.Error())
		return err
	}
	printWarnings(warnings)

	// 4. Draw the sample.
	result := sampling.Draw(pool, quota, p.ExcludedIndices(), p.Seed)
	log.Info("sample drawn",
		"requested", result.Requested,
		"drawn", len(result.Records),
		"eligible", result.Eligible,
		"backfilled", result.Backfilled,
	)

	fmt.Println()
	quotaTable(quota, result.PerCategory)
	fmt.Println()

	if result.Backfilled > 0 {
		ux.Warning(fmt.Sprintf("%d records backfilled outside category quotas", result.Backfilled))
		for _, s := range result.Shortfalls {
			ux.Muted(fmt.Sprintf("  %s: requested %d, available %d", s.Category, s.Requested, s.Available))
		}
	}
	if short := result.Short(); short > 0 {
		ux.Warning(fmt.Sprintf("pool exhausted: sample is %d records short of %d", short, result.Requested))
	}

	// 5. Export CSV, JSON and TXT.
	stem := baseName
	if stem == "" {
		stem = defaultBaseName(p)
	}
	writer := export.Writer{Dir: outputDir, BaseName: stem}
	files, err := writer.WriteAll(ctx, result, export.Meta{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Title:       fmt.Sprintf("Randomized Sample of %d Questions", len(result.Records)),
	})
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	ux.Success(fmt.Sprintf("Sample of %d records written", len(result.Records)))
	ux.Muted("  " + files.CSV)
	ux.Muted("  " + files.JSON)
	ux.Muted("  " + files.TXT)
	return nil
}
