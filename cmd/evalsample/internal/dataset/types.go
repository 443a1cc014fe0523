// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset retrieves and decodes encrypted evaluation datasets.
//
// The input is a CSV table with one encoded question per row: the "problem"
// and "answer" columns hold base64 ciphertext, "canary" holds the per-record
// secret, and "problem_topic" carries the category label. This package owns
// the I/O side of a sampling run - downloading the table, parsing rows, and
// decoding them into plaintext records - so the sampling core can stay a
// pure function over in-memory values.
package dataset

// Row is one raw, still-encoded dataset row as read from the CSV.
//
// Rows are immutable once parsed; Index is the zero-based position of the
// row in the source table and identifies the record throughout a run.
type Row struct {
	Index   int
	Problem string // base64 ciphertext, required
	Answer  string // base64 ciphertext, may be empty
	Canary  string // per-record secret
	Topic   string // category label, already defaulted by the parser
}

// Record is a fully decoded, categorized dataset row. Created one-to-one
// from a Row; no merging or re-indexing happens during decode.
type Record struct {
	Index    int
	Question string
	Answer   string
	Category string
}

// LoadStats summarizes a pool decode. It replaces ad hoc per-row progress
// printing: callers receive the counts and decide how to report them.
type LoadStats struct {
	// Processed is the number of rows successfully decoded into Records.
	Processed int

	// Skipped is the number of rows dropped because a field failed to
	// decode. Skips are logged individually at warn level.
	Skipped int
}
