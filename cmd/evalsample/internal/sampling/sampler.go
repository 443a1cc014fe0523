// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sampling

import (
	"math/rand"

	"github.com/stratalabs/evalsample/cmd/evalsample/internal/dataset"
)

// RankedRecord is a sampled record annotated with its 1-based position in
// the final shuffled order.
type RankedRecord struct {
	dataset.Record
	Rank int
}

// Shortfall reports a category whose sub-pool could not cover its quota.
// Available == 0 means the category had no eligible records at all.
type Shortfall struct {
	Category  string
	Requested int
	Available int
}

// Result is the outcome of one stratified draw. Records is the final
// shuffled sample; the remaining fields are the run's accounting, returned
// to the caller instead of being printed from inside the algorithm.
type Result struct {
	// Records in final shuffled order, ranks 1..len(Records).
	Records []RankedRecord

	// Requested is the target sample size (the quota sum).
	Requested int

	// Backfilled is how many records phase 3 drew outside their category
	// quota to make up per-category shortfalls.
	Backfilled int

	// Shortfalls lists categories whose sub-pools were smaller than their
	// quotas, in quota order.
	Shortfalls []Shortfall

	// PerCategory counts the selected records per category, ordered by
	// first selection.
	PerCategory *Histogram

	// Eligible is the pool size after removing excluded indices.
	Eligible int
}

// Short reports how many records the draw fell short of the target. A pool
// smaller than the target is not an error; callers report the smaller
// sample.
func (r *Result) Short() int {
	return r.Requested - len(r.Records)
}

// Draw produces a stratified random sample satisfying quota as closely as
// the pool allows.
//
// # Phases
//
//  1. Records whose Index is in exclude are filtered out, and the remainder
//     is partitioned into per-category sub-pools (pool order preserved).
//  2. For each quota category, in quota insertion order, min(quota, |sub-pool|)
//     records are drawn uniformly without replacement. Empty sub-pools
//     contribute nothing and do not fail the draw.
//  3. If the running total is below the target, the difference is backfilled
//     from the not-yet-selected remainder of the pool, irrespective of
//     category.
//  4. The accumulated sample is shuffled and ranks are assigned.
//
// All randomness comes from one generator seeded once with seed and consumed
// in the fixed phase order above, so identical inputs reproduce the identical
// sample, bit for bit, including rank order.
func Draw(pool []dataset.Record, quota *Histogram, exclude map[int]struct{}, seed int64) *Result {
	rng := rand.New(rand.NewSource(seed))

	filtered := make([]dataset.Record, 0, len(pool))
	for _, r := range pool {
		if _, reserved := exclude[r.Index]; reserved {
			continue
		}
		filtered = append(filtered, r)
	}

	subPools := make(map[string][]dataset.Record)
	for _, r := range filtered {
		subPools[r.Category] = append(subPools[r.Category], r)
	}

	result := &Result{
		Requested:   quota.Sum(),
		PerCategory: NewHistogram(),
		Eligible:    len(filtered),
	}

	// Phase 2: per-category draw.
	var sample []dataset.Record
	for _, category := range quota.Categories() {
		want := quota.Get(category)
		if want <= 0 {
			continue
		}
		subPool := subPools[category]
		if len(subPool) < want {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				Category:  category,
				Requested: want,
				Available: len(subPool),
			})
		}
		if len(subPool) == 0 {
			continue
		}
		sample = append(sample, drawWithoutReplacement(rng, subPool, min(want, len(subPool)))...)
	}

	// Phase 3: backfill shortfalls from the unselected remainder.
	if missing := result.Requested - len(sample); missing > 0 {
		selected := make(map[int]struct{}, len(sample))
		for _, r := range sample {
			selected[r.Index] = struct{}{}
		}
		var unselected []dataset.Record
		for _, r := range filtered {
			if _, ok := selected[r.Index]; !ok {
				unselected = append(unselected, r)
			}
		}
		extra := drawWithoutReplacement(rng, unselected, min(missing, len(unselected)))
		sample = append(sample, extra...)
		result.Backfilled = len(extra)
	}

	// Phase 4: final shuffle and ranking.
	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	result.Records = make([]RankedRecord, len(sample))
	for i, r := range sample {
		result.Records[i] = RankedRecord{Record: r, Rank: i + 1}
		result.PerCategory.Add(r.Category, 1)
	}
	return result
}

// drawWithoutReplacement selects k records uniformly at random from pool
// without replacement via a partial Fisher-Yates pass. The input slice is
// not modified. k must be <= len(pool).
func drawWithoutReplacement(rng *rand.Rand, pool []dataset.Record, k int) []dataset.Record {
	scratch := make([]dataset.Record, len(pool))
	copy(scratch, pool)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:k]
}
