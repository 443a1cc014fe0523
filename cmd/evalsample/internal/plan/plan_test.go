// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultPlanIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	assert.Equal(t, 60, p.SampleSize)
	assert.Equal(t, int64(60), p.Seed)
	assert.Equal(t, 59, p.ReserveThrough)
	assert.Equal(t, "Other", p.FallbackCategory)
	assert.Len(t, p.Reference, 10)
	assert.Equal(t, 1266, p.ReferenceHistogram().Sum())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writePlan(t, `
sample_size: 25
seed: 7
reference:
  - {category: "A", count: 80}
  - {category: "B", count: 20}
`)

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, p.SampleSize)
	assert.Equal(t, int64(7), p.Seed)
	// Omitted fields keep their defaults.
	assert.Equal(t, 59, p.ReserveThrough)
	assert.Equal(t, Default().DatasetURL, p.DatasetURL)
	// The reference table is replaced, not merged.
	assert.Equal(t, []string{"A", "B"}, p.ReferenceHistogram().Categories())
}

func TestLoadRejectsInvalidPlan(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative sample size", "sample_size: -3"},
		{"bad url", `dataset_url: "not a url"`},
		{"reserve below -1", "reserve_through: -2"},
		{"negative reference count", "reference:\n  - {category: \"A\", count: -1}"},
		{"unnamed category", "reference:\n  - {count: 5}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writePlan(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExcludedIndices(t *testing.T) {
	p := Default()
	excluded := p.ExcludedIndices()
	assert.Len(t, excluded, 60)
	_, has59 := excluded[59]
	_, has60 := excluded[60]
	assert.True(t, has59)
	assert.False(t, has60)

	p.ReserveThrough = -1
	assert.Empty(t, p.ExcludedIndices())
}
