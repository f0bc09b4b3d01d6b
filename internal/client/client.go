// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client fetches protocol message batches from the remote
// agent endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/loom-tui/internal/config"
	"github.com/jeranaias/loom-tui/internal/protocol"
)

// Configuration constants for the agent endpoint.
const (
	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion from a
	// runaway endpoint.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Error variables for common fetch failures.
var (
	// ErrNotConfigured indicates no endpoint is set.
	ErrNotConfigured = errors.New("agent endpoint not configured")

	// ErrAuthFailed indicates the endpoint rejected the API key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the endpoint returned 429.
	ErrRateLimited = errors.New("rate limited by agent endpoint")

	// ErrServerError indicates a 5xx after all retries.
	ErrServerError = errors.New("agent endpoint error")
)

// sharedHTTPClient pools connections across fetches.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the agent endpoint that turns user prompts into
// protocol message batches.
type Client struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	httpClient *http.Client
}

// New creates a client from agent configuration.
func New(cfg config.AgentConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout(),
		maxRetries: cfg.MaxRetries,
		limiter:    limiter,
		httpClient: sharedHTTPClient,
	}
}

// promptRequest is the wire shape of one fetch.
type promptRequest struct {
	Prompt string `json:"prompt"`
}

// FetchMessages sends the user's text to the endpoint and returns the
// ordered message batch it produced. Transient failures (network
// errors, 5xx) retry with exponential backoff inside the caller's
// context; a batch that arrives is decoded all-or-nothing.
func (c *Client) FetchMessages(ctx context.Context, userText string) ([]protocol.Message, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(promptRequest{Prompt: userText})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			log.Printf("client: retrying fetch in %v (attempt %d/%d): %v", delay, attempt, c.maxRetries, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		batch, retryable, err := c.fetchOnce(ctx, body)
		if err == nil {
			return batch, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

// fetchOnce performs one round trip. The second return reports whether
// the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, body []byte) ([]protocol.Message, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, ErrAuthFailed
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateForLog(payload))
	}

	batch, err := protocol.DecodeBatch(payload)
	if err != nil {
		// The endpoint answered but with garbage; retrying won't help.
		return nil, false, err
	}
	return batch, false, nil
}

// backoffDelay computes the exponential backoff for an attempt.
func backoffDelay(attempt int) time.Duration {
	delay := retryBaseDelay << (attempt - 1)
	if delay > retryMaxDelay {
		return retryMaxDelay
	}
	return delay
}

func truncateForLog(payload []byte) string {
	const max = 200
	if len(payload) > max {
		return string(payload[:max]) + "..."
	}
	return string(payload)
}
