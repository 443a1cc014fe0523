// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func withPlain(t *testing.T, plain bool) {
	t.Helper()
	orig := Plain()
	SetPlain(plain)
	t.Cleanup(func() { SetPlain(orig) })
}

func TestIcon_Render_NonEmpty(t *testing.T) {
	withPlain(t, false)
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconPending} {
		if icon.Render() == "" {
			t.Errorf("expected non-empty render for %q", icon)
		}
	}
}

func TestIcon_Render_Default(t *testing.T) {
	withPlain(t, false)
	for _, icon := range []Icon{IconArrow, IconBullet, IconDice} {
		if icon.Render() != string(icon) {
			t.Errorf("expected %q unchanged, got %q", icon, icon.Render())
		}
	}
}

func TestSuccess_Plain(t *testing.T) {
	withPlain(t, true)
	output := captureStdout(func() {
		Success("sample written")
	})
	if output != "OK: sample written\n" {
		t.Errorf("expected 'OK: sample written', got %q", output)
	}
}

func TestWarning_PlainGoesToStderr(t *testing.T) {
	withPlain(t, true)
	output := captureStderr(func() {
		Warning("category exhausted")
	})
	if output != "WARN: category exhausted\n" {
		t.Errorf("expected 'WARN: category exhausted', got %q", output)
	}
}

func TestError_PlainGoesToStderr(t *testing.T) {
	withPlain(t, true)
	output := captureStderr(func() {
		Error("fetch failed")
	})
	if output != "ERROR: fetch failed\n" {
		t.Errorf("expected 'ERROR: fetch failed', got %q", output)
	}
}

func TestInfo_Plain(t *testing.T) {
	withPlain(t, true)
	output := captureStdout(func() {
		Info("loading dataset")
	})
	if output != "loading dataset\n" {
		t.Errorf("expected plain 'loading dataset', got %q", output)
	}
}

func TestKeyValue_PlainAlignment(t *testing.T) {
	withPlain(t, true)
	output := captureStdout(func() {
		KeyValue("Seed", "60")
	})
	if !strings.HasPrefix(output, "Seed:") || !strings.HasSuffix(output, "60\n") {
		t.Errorf("unexpected key/value output %q", output)
	}
}

func TestTable_PlainOutput(t *testing.T) {
	withPlain(t, true)
	output := captureStdout(func() {
		Table(
			TableRow{Label: "Category", Cells: []string{"Quota", "Drawn"}},
			[]TableRow{
				{Label: "History", Cells: []string{"6", "6"}},
				{Label: "TV shows & movies", Cells: []string{"11", "11"}},
			},
		)
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, rule, 2 rows), got %d: %q", len(lines), output)
	}
	if !strings.Contains(lines[0], "Category") || !strings.Contains(lines[0], "Quota") {
		t.Errorf("header missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[3], "TV shows & movies") || !strings.Contains(lines[3], "11") {
		t.Errorf("row missing cells: %q", lines[3])
	}
}

func TestSetPlainOverride(t *testing.T) {
	withPlain(t, false)
	if Plain() {
		t.Error("expected styled mode after SetPlain(false)")
	}
	SetPlain(true)
	if !Plain() {
		t.Error("expected plain mode after SetPlain(true)")
	}
}
