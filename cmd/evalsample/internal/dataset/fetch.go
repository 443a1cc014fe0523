// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/stratalabs/evalsample/pkg/logging"
)

// FetchConfig controls dataset retrieval.
type FetchConfig struct {
	// URL of the dataset CSV.
	URL string

	// Timeout for a single HTTP attempt.
	// Default: 2 minutes (published benchmark tables run to tens of MB).
	Timeout time.Duration

	// MaxAttempts bounds the number of download attempts.
	// Default: 3
	MaxAttempts int

	// RetryEvery is the minimum spacing between attempts, enforced with a
	// rate limiter so a flaky mirror is not hammered in a tight loop.
	// Default: 2 seconds
	RetryEvery time.Duration

	// FallbackCategory labels rows whose topic cell is empty.
	FallbackCategory string
}

func (c *FetchConfig) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryEvery <= 0 {
		c.RetryEvery = 2 * time.Second
	}
	if c.FallbackCategory == "" {
		c.FallbackCategory = "Other"
	}
}

// Fetch downloads the dataset CSV and parses it into rows.
//
// Failed attempts (transport errors or non-2xx statuses) are retried up to
// MaxAttempts times with rate-limited spacing. A body that downloads but
// fails to parse is NOT retried: the mirror is serving a malformed table and
// another attempt would fetch the same bytes.
//
// Any error returned here is fatal to the sampling run.
func Fetch(ctx context.Context, cfg FetchConfig, logger *logging.Logger) ([]Row, error) {
	cfg.applyDefaults()

	client := &http.Client{Timeout: cfg.Timeout}
	limiter := rate.NewLimiter(rate.Every(cfg.RetryEvery), 1)

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}

		rows, retryable, err := fetchOnce(ctx, client, cfg)
		if err == nil {
			logger.Info("dataset downloaded", "url", cfg.URL, "rows", len(rows), "attempt", attempt)
			return rows, nil
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		logger.Warn("dataset download failed",
			"url", cfg.URL,
			"attempt", attempt,
			"max_attempts", cfg.MaxAttempts,
			"error", err.Error(),
		)
	}
	return nil, fmt.Errorf("fetch dataset after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// fetchOnce performs a single download attempt. The second return value
// reports whether the failure is worth retrying.
func fetchOnce(ctx context.Context, client *http.Client, cfg FetchConfig) ([]Row, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 4xx responses won't improve on retry; 5xx and others might.
		retryable := resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("download dataset: unexpected status %s", resp.Status)
	}

	rows, err := ParseRows(resp.Body, cfg.FallbackCategory)
	if err != nil {
		return nil, false, err
	}
	return rows, false, nil
}
