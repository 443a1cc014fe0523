// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browseCompReference mirrors the topic distribution of the published
// BrowseComp test set, the canonical input for this tool.
func browseCompReference() *Histogram {
	h := NewHistogram()
	h.Set("TV shows & movies", 205)
	h.Set("Other", 197)
	h.Set("Science & technology", 173)
	h.Set("Art", 127)
	h.Set("History", 125)
	h.Set("Sports", 123)
	h.Set("Music", 116)
	h.Set("Video games", 71)
	h.Set("Geography", 70)
	h.Set("Politics", 59)
	return h
}

func TestAllocateBrowseCompTable(t *testing.T) {
	quota, warnings, err := Allocate(browseCompReference(), 60)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 60, quota.Sum())

	// Proportional rounding leaves the table one short; the drift lands on
	// the largest category.
	assert.Equal(t, 11, quota.Get("TV shows & movies"))
	assert.Equal(t, 9, quota.Get("Other"))
	assert.Equal(t, 8, quota.Get("Science & technology"))
	assert.Equal(t, 6, quota.Get("Art"))
	assert.Equal(t, 6, quota.Get("History"))
	assert.Equal(t, 6, quota.Get("Sports"))
	assert.Equal(t, 5, quota.Get("Music"))
	assert.Equal(t, 3, quota.Get("Video games"))
	assert.Equal(t, 3, quota.Get("Geography"))
	assert.Equal(t, 3, quota.Get("Politics"))

	// Quota iteration order follows the reference order.
	assert.Equal(t, browseCompReference().Categories(), quota.Categories())
}

func TestAllocateSumInvariant(t *testing.T) {
	references := []*Histogram{
		browseCompReference(),
		func() *Histogram { h := NewHistogram(); h.Set("only", 7); return h }(),
		func() *Histogram {
			h := NewHistogram()
			h.Set("a", 1)
			h.Set("b", 1)
			h.Set("c", 998)
			return h
		}(),
		func() *Histogram {
			h := NewHistogram()
			for _, c := range []string{"a", "b", "c", "d", "e", "f", "g"} {
				h.Set(c, 10)
			}
			return h
		}(),
	}

	for _, reference := range references {
		for _, n := range []int{1, 2, 3, 5, 10, 59, 60, 61, 500} {
			quota, _, err := Allocate(reference, n)
			require.NoError(t, err)
			assert.Equal(t, n, quota.Sum(), "n=%d categories=%v", n, reference.Categories())
			for _, cat := range quota.Categories() {
				assert.GreaterOrEqual(t, quota.Get(cat), 0, "n=%d category=%s", n, cat)
			}
		}
	}
}

func TestAllocateFloorOfOne(t *testing.T) {
	// "tiny" would round to 0 proportionally; the floor keeps it at 1.
	reference := NewHistogram()
	reference.Set("huge", 10000)
	reference.Set("tiny", 1)

	quota, warnings, err := Allocate(reference, 10)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, quota.Get("tiny"))
	assert.Equal(t, 9, quota.Get("huge"))
	assert.Equal(t, 10, quota.Sum())
}

func TestAllocateZeroCountCategoryWarns(t *testing.T) {
	reference := NewHistogram()
	reference.Set("present", 50)
	reference.Set("ghost", 0)

	quota, warnings, err := Allocate(reference, 10)
	require.NoError(t, err)
	assert.False(t, quota.Has("ghost"))
	assert.Equal(t, 10, quota.Sum())

	require.Len(t, warnings, 1)
	assert.Equal(t, "ghost", warnings[0].Category)
}

func TestAllocateSampleSizeBelowCategoryCount(t *testing.T) {
	// Five categories but only a two-record budget: the floor-of-1 rule
	// overshoots and drift correction must clamp and redistribute.
	reference := NewHistogram()
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		reference.Set(c, 20)
	}

	quota, warnings, err := Allocate(reference, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, quota.Sum())
	for _, cat := range quota.Categories() {
		assert.GreaterOrEqual(t, quota.Get(cat), 0)
	}
	assert.NotEmpty(t, warnings, "clamped redistribution must be surfaced")
}

func TestAllocateErrors(t *testing.T) {
	_, _, err := Allocate(browseCompReference(), 0)
	assert.Error(t, err)

	empty := NewHistogram()
	_, _, err = Allocate(empty, 10)
	assert.ErrorIs(t, err, ErrEmptyReference)

	allZero := NewHistogram()
	allZero.Set("a", 0)
	_, _, err = Allocate(allZero, 10)
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestHistogramOrderAndCounts(t *testing.T) {
	h := NewHistogram()
	h.Set("b", 2)
	h.Set("a", 1)
	h.Add("c", 3)
	h.Add("b", 1)

	assert.Equal(t, []string{"b", "a", "c"}, h.Categories())
	assert.Equal(t, 3, h.Get("b"))
	assert.Equal(t, 6, h.Sum())
	assert.Equal(t, 3, h.Len())
	assert.True(t, h.Has("a"))
	assert.False(t, h.Has("zzz"))
	assert.Equal(t, 0, h.Get("zzz"))
}

func TestHistogramLargestTieBreak(t *testing.T) {
	h := NewHistogram()
	h.Set("first", 5)
	h.Set("second", 5)
	h.Set("third", 1)

	assert.Equal(t, "first", h.largest())
	assert.Equal(t, "first", h.largestPositive())

	h.Set("first", 0)
	h.Set("second", 0)
	h.Set("third", 0)
	assert.Equal(t, "first", h.largest())
	assert.Equal(t, "", h.largestPositive())
}
