// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package plan defines the sampling plan: the yaml document that configures
// a run (dataset URL, sample size, seed, reserved split, reference category
// distribution). A compiled-in default plan targets the published BrowseComp
// test set so the tool works with no configuration at all.
package plan

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
)

// CategoryCount is one reference histogram entry. Entry order in the plan
// file is significant: it fixes quota iteration order and largest-category
// tie-breaking, so plans are lists rather than maps.
type CategoryCount struct {
	Category string `yaml:"category" validate:"required"`
	Count    int    `yaml:"count" validate:"gte=0"`
}

// Plan configures one sampling run.
//
// Example plan file:
//
//	dataset_url: "https://example.com/benchmark_test_set.csv"
//	sample_size: 60
//	seed: 60
//	reserve_through: 59
//	fallback_category: "Other"
//	reference:
//	  - {category: "History", count: 125}
//	  - {category: "Sports", count: 123}
type Plan struct {
	// DatasetURL locates the encrypted CSV.
	DatasetURL string `yaml:"dataset_url" validate:"required,url"`

	// SampleSize is the target number of records N.
	SampleSize int `yaml:"sample_size" validate:"required,min=1"`

	// Seed feeds the run's single random generator. Runs with the same
	// plan and dataset reproduce the same sample bit for bit.
	Seed int64 `yaml:"seed"`

	// ReserveThrough excludes source indices 0..ReserveThrough from the
	// pool (a training/reference split). -1 reserves nothing.
	ReserveThrough int `yaml:"reserve_through" validate:"gte=-1"`

	// FallbackCategory labels rows without a topic cell.
	FallbackCategory string `yaml:"fallback_category" validate:"required"`

	// Reference is the category distribution the sample should mirror.
	Reference []CategoryCount `yaml:"reference" validate:"required,min=1,dive"`
}

// Default returns the built-in plan for the BrowseComp test set: a 60-record
// sample, seed 60, the first 60 rows reserved, and the dataset's published
// topic distribution as the reference histogram.
func Default() Plan {
	return Plan{
		DatasetURL:       "https://openaipublic.blob.core.windows.net/simple-evals/browse_comp_test_set.csv",
		SampleSize:       60,
		Seed:             60,
		ReserveThrough:   59,
		FallbackCategory: "Other",
		Reference: []CategoryCount{
			{Category: "TV shows & movies", Count: 205},
			{Category: "Other", Count: 197},
			{Category: "Science & technology", Count: 173},
			{Category: "Art", Count: 127},
			{Category: "History", Count: 125},
			{Category: "Sports", Count: 123},
			{Category: "Music", Count: 116},
			{Category: "Video games", Count: 71},
			{Category: "Geography", Count: 70},
			{Category: "Politics", Count: 59},
		},
	}
}

// Load reads a plan file over the defaults: fields omitted from the yaml
// keep their Default() values, then the merged plan is validated.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the plan against its struct tags.
func (p Plan) Validate() error {
	return validator.New().Struct(p)
}

// ReferenceHistogram converts the plan's reference table into an ordered
// histogram for the allocator.
func (p Plan) ReferenceHistogram() *sampling.Histogram {
	h := sampling.NewHistogram()
	for _, entry := range p.Reference {
		h.Set(entry.Category, entry.Count)
	}
	return h
}

// ExcludedIndices materializes the reserved split as an index set.
func (p Plan) ExcludedIndices() map[int]struct{} {
	if p.ReserveThrough < 0 {
		return nil
	}
	excluded := make(map[int]struct{}, p.ReserveThrough+1)
	for i := 0; i <= p.ReserveThrough; i++ {
		excluded[i] = struct{}{}
	}
	return excluded
}
