// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/plan"
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
	"github.com/stratalabs/evalsample/pkg/ux"
)

// loadPlan resolves the run plan: the --plan file when given, the built-in
// BrowseComp plan otherwise, with CLI flag overrides applied on top.
func loadPlan(cmd *cobra.Command) (plan.Plan, error) {
	p := plan.Default()
	if planPath != "" {
		loaded, err := plan.Load(planPath)
		if err != nil {
			return plan.Plan{}, err
		}
		p = loaded
	}

	if datasetURL != "" {
		p.DatasetURL = datasetURL
	}
	if sampleSize > 0 {
		p.SampleSize = sampleSize
	}
	if cmd.Flags().Changed("seed") {
		p.Seed = seed
	}

	if err := p.Validate(); err != nil {
		return plan.Plan{}, fmt.Errorf("plan invalid after flag overrides: %w", err)
	}
	return p, nil
}

// defaultBaseName derives the filename stem when --name is not given.
func defaultBaseName(p plan.Plan) string {
	return fmt.Sprintf("sample_%d_seed%d", p.SampleSize, p.Seed)
}

// printWarnings surfaces allocator warnings to the terminal and the log.
func printWarnings(warnings []sampling.Warning) {
	for _, w := range warnings {
		ux.Warning(w.String())
		logger.Warn("allocation adjusted", "category", w.Category, "reason", w.Reason)
	}
}

// quotaTable renders a quota histogram, optionally next to drawn counts.
func quotaTable(quota *sampling.Histogram, drawn *sampling.Histogram) {
	header := ux.TableRow{Label: "Category", Cells: []string{"Quota"}}
	if drawn != nil {
		header.Cells = append(header.Cells, "Drawn")
	}

	rows := make([]ux.TableRow, 0, quota.Len())
	for _, category := range quota.Categories() {
		row := ux.TableRow{
			Label: category,
			Cells: []string{fmt.Sprintf("%d", quota.Get(category))},
		}
		if drawn != nil {
			row.Cells = append(row.Cells, fmt.Sprintf("%d", drawn.Get(category)))
		}
		rows = append(rows, row)
	}
	ux.Table(header, rows)
}
