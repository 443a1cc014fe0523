// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Column names expected in the source CSV header.
const (
	colProblem = "problem"
	colAnswer  = "answer"
	colCanary  = "canary"
	colTopic   = "problem_topic"
)

// ParseRows reads the dataset CSV and returns its rows in table order.
//
// Columns are resolved by header name, not position, so the source table may
// carry extra columns in any order. "problem" and "canary" are mandatory;
// "answer" and "problem_topic" are optional. A row with an empty or missing
// topic cell is labeled with fallbackCategory so that every record lands in
// some stratum.
//
// Any CSV-level error is fatal to the whole run; only per-record decode
// failures are survivable.
func ParseRows(r io.Reader, fallbackCategory string) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled per-cell below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colProblem, colCanary} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", required)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv row %d: %w", len(rows), err)
		}

		topic := cell(record, colTopic)
		if topic == "" {
			topic = fallbackCategory
		}

		rows = append(rows, Row{
			Index:   len(rows),
			Problem: cell(record, colProblem),
			Answer:  cell(record, colAnswer),
			Canary:  cell(record, colCanary),
			Topic:   topic,
		})
	}
	return rows, nil
}
