// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package export serializes a drawn sample to its three output formats:
// CSV for analysis pipelines, JSON for programmatic consumers, and a plain
// text report for humans. The sampling core only returns values; everything
// that touches the filesystem lives here.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stratalabs/evalsample/cmd/evalsample/internal/sampling"
)

// Meta carries run identification into the exported artifacts.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	Title       string
}

// Files lists the paths written by WriteAll.
type Files struct {
	CSV  string
	JSON string
	TXT  string
}

// Writer exports samples under Dir using BaseName as the filename stem.
type Writer struct {
	// Dir is the output directory, created if needed.
	Dir string

	// BaseName is the filename without extension,
	// e.g. "browsecomp_randomized_sample_60".
	BaseName string
}

// jsonRecord is the wire shape of one sampled record.
type jsonRecord struct {
	Rank     int    `json:"rank"`
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// WriteAll writes the CSV, JSON and TXT artifacts. The three files are
// independent, so they are written concurrently; the first failure cancels
// the run and is returned.
func (w Writer) WriteAll(ctx context.Context, result *sampling.Result, meta Meta) (Files, error) {
	if err := os.MkdirAll(w.Dir, 0750); err != nil {
		return Files{}, fmt.Errorf("create output directory: %w", err)
	}

	files := Files{
		CSV:  filepath.Join(w.Dir, w.BaseName+".csv"),
		JSON: filepath.Join(w.Dir, w.BaseName+".json"),
		TXT:  filepath.Join(w.Dir, w.BaseName+".txt"),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return w.writeCSV(files.CSV, result) })
	g.Go(func() error { return w.writeJSON(files.JSON, result) })
	g.Go(func() error { return w.writeTXT(files.TXT, result, meta) })

	if err := g.Wait(); err != nil {
		return Files{}, err
	}
	return files, nil
}

func (w Writer) writeCSV(path string, result *sampling.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}

	writer := csv.NewWriter(f)
	writeErr := writer.Write([]string{"rank", "index", "question", "answer", "category"})
	for _, r := range result.Records {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write([]string{
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.Index),
			r.Question,
			r.Answer,
			r.Category,
		})
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("write csv export: %w", writeErr)
	}
	return nil
}

func (w Writer) writeJSON(path string, result *sampling.Result) error {
	records := make([]jsonRecord, len(result.Records))
	for i, r := range result.Records {
		records[i] = jsonRecord{
			Rank:     r.Rank,
			Index:    r.Index,
			Question: r.Question,
			Answer:   r.Answer,
			Category: r.Category,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json export: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write json export: %w", err)
	}
	return nil
}

func (w Writer) writeTXT(path string, result *sampling.Result, meta Meta) error {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	title := meta.Title
	if title == "" {
		title = fmt.Sprintf("Stratified Random Sample (%d records)", len(result.Records))
	}
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Maintaining source category proportions\n")
	if meta.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", meta.RunID)
	}
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", meta.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "%s\n\n", rule)

	b.WriteString("Category Distribution:\n")
	for _, category := range result.PerCategory.Categories() {
		fmt.Fprintf(&b, "  %s: %d records\n", category, result.PerCategory.Get(category))
	}
	fmt.Fprintf(&b, "\n%s\n\n", rule)

	divider := strings.Repeat("-", 70)
	for _, r := range result.Records {
		fmt.Fprintf(&b, "Rank %2d | Category: %s\n", r.Rank, r.Category)
		fmt.Fprintf(&b, "Question: %s\n", r.Question)
		fmt.Fprintf(&b, "Answer: %s\n", r.Answer)
		fmt.Fprintf(&b, "%s\n\n", divider)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write txt export: %w", err)
	}
	return nil
}
