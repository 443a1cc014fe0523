// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/cipher"
	"github.com/stratalabs/evalsample/pkg/logging"
)

// ProgressFunc receives decode progress. done counts rows attempted so far
// (including skips), total is the row count. May be nil.
type ProgressFunc func(done, total int)

// DecodePool decrypts every row into a Record, building the sampling pool.
//
// Decode failures are per-record and non-fatal: the row is logged at warn
// level, counted in LoadStats.Skipped, and the rest of the pool is still
// processed. A missing answer cell is not a failure - it decodes to the
// empty string, matching how these datasets are published.
//
// The returned slice preserves source-table order, which downstream
// deterministic sampling relies on.
func DecodePool(rows []Row, logger *logging.Logger, progress ProgressFunc) ([]Record, LoadStats) {
	records := make([]Record, 0, len(rows))
	var stats LoadStats

	for i, row := range rows {
		if progress != nil {
			progress(i+1, len(rows))
		}

		question, err := cipher.Decrypt(row.Problem, row.Canary)
		if err != nil {
			logger.Warn("skipping row: question decode failed", "index", row.Index, "error", err.Error())
			stats.Skipped++
			continue
		}

		answer := ""
		if row.Answer != "" {
			answer, err = cipher.Decrypt(row.Answer, row.Canary)
			if err != nil {
				logger.Warn("skipping row: answer decode failed", "index", row.Index, "error", err.Error())
				stats.Skipped++
				continue
			}
		}

		records = append(records, Record{
			Index:    row.Index,
			Question: question,
			Answer:   answer,
			Category: row.Topic,
		})
		stats.Processed++
	}

	return records, stats
}
