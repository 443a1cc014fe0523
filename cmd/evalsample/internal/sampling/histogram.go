// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package sampling implements category-proportional sampling of decoded
// evaluation records: a proportional quota allocator and a deterministic
// seeded stratified sampler. Both are pure computations over in-memory
// values; all I/O lives in the dataset and export packages.
package sampling

import (
	"github.com/stratalabs/evalsample/cmd/evalsample/internal/dataset"
)

// Histogram is a mapping from category name to a non-negative count that
// preserves insertion order. Order matters twice in this package: quota
// iteration must follow the order categories were inserted, and "largest
// category" ties break toward the earliest-inserted one. A plain Go map
// cannot provide either guarantee.
type Histogram struct {
	keys   []string
	counts map[string]int
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[string]int)}
}

// Distribution builds a histogram of record counts per category, ordered by
// first appearance in the slice.
func Distribution(records []dataset.Record) *Histogram {
	h := NewHistogram()
	for _, r := range records {
		h.Add(r.Category, 1)
	}
	return h
}

// Set assigns count to category, registering the category on first use.
func (h *Histogram) Set(category string, count int) {
	if _, ok := h.counts[category]; !ok {
		h.keys = append(h.keys, category)
	}
	h.counts[category] = count
}

// Add increments category by delta, registering the category on first use.
func (h *Histogram) Add(category string, delta int) {
	h.Set(category, h.counts[category]+delta)
}

// Get returns the count for category, or 0 if absent.
func (h *Histogram) Get(category string) int {
	return h.counts[category]
}

// Has reports whether category was ever inserted.
func (h *Histogram) Has(category string) bool {
	_, ok := h.counts[category]
	return ok
}

// Categories returns the category names in insertion order. The returned
// slice is a copy.
func (h *Histogram) Categories() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Sum returns the total of all counts.
func (h *Histogram) Sum() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Len returns the number of distinct categories.
func (h *Histogram) Len() int {
	return len(h.keys)
}

// largest returns the earliest-inserted category holding the maximum count.
// Returns "" for an empty histogram.
func (h *Histogram) largest() string {
	best := ""
	bestCount := 0
	for _, k := range h.keys {
		if best == "" || h.counts[k] > bestCount {
			best = k
			bestCount = h.counts[k]
		}
	}
	return best
}

// largestPositive returns the earliest-inserted category with the maximum
// strictly positive count, or "" if every count is zero or the histogram is
// empty.
func (h *Histogram) largestPositive() string {
	best := ""
	bestCount := 0
	for _, k := range h.keys {
		if h.counts[k] > bestCount {
			best = k
			bestCount = h.counts[k]
		}
	}
	return best
}
