// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sampling

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyReference is returned when the reference histogram has no
// category with a positive count, so proportions cannot be computed.
var ErrEmptyReference = errors.New("reference histogram has no positive counts")

// Warning reports an allocation anomaly that was handled rather than
// failed: a zero-count reference category, or drift correction forcing a
// quota below 1. Callers surface these to the user; the quota is still valid.
type Warning struct {
	Category string
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Category, w.Reason)
}

// Allocate converts a reference category histogram into a per-category
// quota that sums to exactly sampleSize.
//
// # Algorithm
//
//  1. Each category with a positive reference count gets
//     max(1, round(count/total*sampleSize)) - the floor of 1 guarantees
//     every represented category appears in the quota.
//  2. Rounding drift (sampleSize - sum) is absorbed by the single largest
//     quota, ties broken toward the earliest category in reference order.
//  3. If the correction would push that quota below zero (only possible
//     when sampleSize is smaller than the number of categories), it is
//     clamped at zero and the remainder is redistributed by repeatedly
//     decrementing the current largest positive quota.
//
// The returned quota always sums to sampleSize, every value is >= 0, and
// iteration order matches the reference histogram's insertion order. Every
// anomaly handled along the way is reported as a Warning naming the
// affected category.
func Allocate(reference *Histogram, sampleSize int) (*Histogram, []Warning, error) {
	if sampleSize < 1 {
		return nil, nil, fmt.Errorf("sample size must be >= 1, got %d", sampleSize)
	}
	total := reference.Sum()
	if total <= 0 {
		return nil, nil, ErrEmptyReference
	}

	var warnings []Warning
	quota := NewHistogram()

	for _, category := range reference.Categories() {
		count := reference.Get(category)
		if count <= 0 {
			warnings = append(warnings, Warning{
				Category: category,
				Reason:   "zero reference count, excluded from quota",
			})
			continue
		}
		share := int(math.Round(float64(count) / float64(total) * float64(sampleSize)))
		if share < 1 {
			share = 1
		}
		quota.Set(category, share)
	}

	drift := sampleSize - quota.Sum()
	if drift == 0 {
		return quota, warnings, nil
	}

	target := quota.largest()
	adjusted := quota.Get(target) + drift

	if adjusted >= 0 {
		quota.Set(target, adjusted)
		if adjusted < 1 {
			warnings = append(warnings, Warning{
				Category: target,
				Reason:   fmt.Sprintf("drift correction reduced quota to %d", adjusted),
			})
		}
		return quota, warnings, nil
	}

	// The full correction would drive the largest quota negative, which can
	// only happen when sampleSize < number of categories and the floor-of-1
	// rule overshot. Clamp at zero and walk the remainder off the largest
	// positive quotas one decrement at a time.
	quota.Set(target, 0)
	warnings = append(warnings, Warning{
		Category: target,
		Reason:   "drift correction drove quota below zero, clamped to 0 and redistributed",
	})

	for remainder := -adjusted; remainder > 0; remainder-- {
		next := quota.largestPositive()
		if next == "" {
			// Unreachable while sampleSize >= 1: total quota stays above
			// sampleSize until the remainder is exhausted.
			return nil, warnings, fmt.Errorf("quota redistribution failed: no positive quota left with remainder %d", remainder)
		}
		quota.Add(next, -1)
		if quota.Get(next) == 0 {
			warnings = append(warnings, Warning{
				Category: next,
				Reason:   "quota reduced to 0 during drift redistribution",
			})
		}
	}
	return quota, warnings, nil
}
