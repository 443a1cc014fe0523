// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/stratalabs/evalsample/pkg/ux"
)

// SpinnerConfig configures spinner behavior.
type SpinnerConfig struct {
	// Message is the text displayed next to the spinner.
	Message string

	// Interval is the time between frame updates.
	// Default: 100ms
	Interval time.Duration

	// Frames are the animation characters.
	// Default: Braille dots (⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏)
	Frames []string

	// Writer is where output is written.
	// Default: os.Stderr
	Writer io.Writer
}

// Spinner provides animated progress feedback during downloads and decoding.
//
// # Description
//
// Spinner displays an animated character sequence with a message so a
// multi-second fetch does not look like a hang. In plain mode (piped
// output, NO_COLOR, --no-color) the animation is suppressed and only the
// start and stop messages are printed.
//
// # Thread Safety
//
// Spinner is safe for concurrent use. Start/Stop/SetMessage can be called
// from different goroutines.
//
// # Limitations
//
//   - Requires an ANSI-capable terminal for the animation
//   - Concurrent writes to the same Writer may garble output
type Spinner struct {
	config  SpinnerConfig
	frame   int
	running bool
	plain   bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
}

// NewSpinner creates a new spinner with the given configuration. Nothing is
// displayed until Start is called.
func NewSpinner(config SpinnerConfig) *Spinner {
	if config.Interval <= 0 {
		config.Interval = 100 * time.Millisecond
	}
	if len(config.Frames) == 0 {
		config.Frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	return &Spinner{
		config: config,
		plain:  ux.Plain(),
	}
}

// Start begins the spinner animation. Safe to call multiple times
// (subsequent calls are no-ops).
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	if s.plain {
		fmt.Fprintf(s.config.Writer, "%s\n", s.config.Message)
		close(s.doneCh)
		return
	}

	// Hide cursor while animating
	fmt.Fprint(s.config.Writer, "\033[?25l")

	go s.spin()
}

// StopSuccess stops the spinner and displays a success line.
func (s *Spinner) StopSuccess(message string) {
	s.stop(ux.IconSuccess, message)
}

// StopFailure stops the spinner and displays a failure line.
func (s *Spinner) StopFailure(message string) {
	s.stop(ux.IconError, message)
}

func (s *Spinner) stop(icon ux.Icon, message string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	if !s.plain {
		close(s.stopCh)
	}
	s.mu.Unlock()

	<-s.doneCh

	if s.plain {
		fmt.Fprintf(s.config.Writer, "%s %s\n", icon, message)
		return
	}

	s.clearLine()
	fmt.Fprintf(s.config.Writer, "\r%s %s\n", icon.Render(), message)
	fmt.Fprint(s.config.Writer, "\033[?25h")
}

// SetMessage updates the displayed message. Safe to call while the spinner
// is running.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.config.Message = message
	s.mu.Unlock()
}

// IsRunning returns whether the spinner is active.
func (s *Spinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// spin is the main animation loop.
func (s *Spinner) spin() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.render()
		case <-s.stopCh:
			return
		}
	}
}

// render draws the current frame.
func (s *Spinner) render() {
	s.mu.Lock()
	frame := s.config.Frames[s.frame%len(s.config.Frames)]
	message := s.config.Message
	s.frame++
	s.mu.Unlock()

	fmt.Fprintf(s.config.Writer, "\r%s %s", frame, message)
}

// clearLine clears the current line.
func (s *Spinner) clearLine() {
	fmt.Fprint(s.config.Writer, "\r\033[K")
}
