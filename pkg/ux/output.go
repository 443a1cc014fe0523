// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides styled terminal output for the evalsample CLI.
package ux

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Strata color palette - desert sandstone and basalt
var (
	// Primary palette (brightest to darkest)
	ColorAmberBright  = lipgloss.Color("#F5A623") // Bright amber - highlights
	ColorAmberPrimary = lipgloss.Color("#D98E24") // Primary amber - main brand color
	ColorCopper       = lipgloss.Color("#B87333") // Copper - interactive elements
	ColorRust         = lipgloss.Color("#9C5A2D") // Rust - secondary accents

	// Dark palette (backgrounds, muted elements)
	ColorBasalt   = lipgloss.Color("#3B3A36") // Basalt - muted text, borders
	ColorObsidian = lipgloss.Color("#1C1B18") // Obsidian - near black

	// Semantic colors
	ColorSuccess = lipgloss.Color("#7FB069") // Sage green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted   = lipgloss.Color("#8A867C") // Stone gray for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAmberBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorAmberPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorAmberBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorCopper).
		Padding(0, 1),
}

// plainMode disables all styling when set. Stored atomically because the
// spinner goroutine reads it concurrently with flag parsing.
var plainMode atomic.Bool

func init() {
	plainMode.Store(detectPlain())
}

func detectPlain() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetPlain forces styling on or off, overriding terminal detection.
func SetPlain(plain bool) {
	plainMode.Store(plain)
}

// Plain reports whether styled output is disabled.
func Plain() bool {
	return plainMode.Load()
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconDice    Icon = "⚄"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	if Plain() {
		return string(i)
	}
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Title prints a styled title
func Title(text string) {
	if Plain() {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	if Plain() {
		fmt.Printf("OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Warning prints a warning message
func Warning(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints an error message
func Error(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconError.Render(), Styles.Error.Render(text))
}

// Info prints an informational message
func Info(text string) {
	if Plain() {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints muted/secondary text
func Muted(text string) {
	if Plain() {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Muted.Render(text))
}

// KeyValue prints an aligned label/value pair
func KeyValue(key, value string) {
	if Plain() {
		fmt.Printf("%-18s %s\n", key+":", value)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render(fmt.Sprintf("%-18s", key+":")), value)
}

// TableRow is one line of a Table: a label and a set of numeric columns.
type TableRow struct {
	Label string
	Cells []string
}

// Table prints aligned rows under a header. Column widths adapt to the
// widest cell; the label column is left-aligned, the rest right-aligned.
func Table(header TableRow, rows []TableRow) {
	labelWidth := len([]rune(header.Label))
	widths := make([]int, len(header.Cells))
	for i, c := range header.Cells {
		widths[i] = len([]rune(c))
	}
	for _, r := range rows {
		if w := len([]rune(r.Label)); w > labelWidth {
			labelWidth = w
		}
		for i, c := range r.Cells {
			if i < len(widths) && len([]rune(c)) > widths[i] {
				widths[i] = len([]rune(c))
			}
		}
	}

	printRow := func(r TableRow, styled bool) {
		var b strings.Builder
		b.WriteString(pad(r.Label, labelWidth, false))
		for i, c := range r.Cells {
			b.WriteString("  ")
			b.WriteString(pad(c, widths[i], true))
		}
		line := b.String()
		if styled && !Plain() {
			line = Styles.Subtitle.Render(line)
		}
		fmt.Println("  " + line)
	}

	printRow(header, true)
	total := labelWidth
	for _, w := range widths {
		total += w + 2
	}
	rule := strings.Repeat("─", total)
	if Plain() {
		fmt.Println("  " + strings.Repeat("-", total))
	} else {
		fmt.Println("  " + Styles.Muted.Render(rule))
	}
	for _, r := range rows {
		printRow(r, false)
	}
}

func pad(s string, width int, right bool) string {
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
