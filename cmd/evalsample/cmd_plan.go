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
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
	"github.com/stratalabs/evalsample/pkg/ux"
)

// runPlan previews the quota allocation without touching the network.
func runPlan(cmd *cobra.Command, _ []string) error {
	p, err := loadPlan(cmd)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	reference := p.ReferenceHistogram()
	quota, warnings, err := sampling.Allocate(reference, p.SampleSize)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	ux.Title("Quota Preview")
	ux.KeyValue("Dataset", p.DatasetURL)
	ux.KeyValue("Reference total", fmt.Sprintf("%d", reference.Sum()))
	ux.KeyValue("Sample size", fmt.Sprintf("%d", p.SampleSize))
	ux.KeyValue("Seed", fmt.Sprintf("%d", p.Seed))
	fmt.Println()

	printWarnings(warnings)
	quotaTable(quota, nil)
	fmt.Println()
	ux.Muted(fmt.Sprintf("quotas sum to %d across %d categories", quota.Sum(), quota.Len()))
	return nil
}
