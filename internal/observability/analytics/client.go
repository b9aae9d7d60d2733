package analytics

// Package analytics delivers product events to an HTTP collector.
// Delivery is best-effort; callers fire and forget.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/pagekeep/digest-api/internal/ports"
)

// Config captures the subset of collector behaviour we need.
type Config struct {
	CaptureURL string
	APIKey     string
	Source     string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client

	// Projection is an optional JMESPath expression applied to event
	// properties before forwarding.
	Projection string
}

// Client posts events to the configured capture endpoint with bounded retry.
type Client struct {
	captureURL string
	apiKey     string
	source     string
	retryLimit int
	projection string
	client     *http.Client
}

var _ ports.EventSink = (*Client)(nil)

// NewClient builds a collector client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	captureURL := strings.TrimSpace(cfg.CaptureURL)
	if captureURL == "" {
		return nil, errors.New("analytics capture url is required")
	}

	if cfg.Projection != "" {
		if _, err := jmespath.Compile(cfg.Projection); err != nil {
			return nil, fmt.Errorf("invalid analytics projection: %w", err)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		captureURL: captureURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		source:     strings.TrimSpace(cfg.Source),
		retryLimit: retries,
		projection: strings.TrimSpace(cfg.Projection),
		client:     hc,
	}, nil
}

// Capture posts the event to the collector.
func (c *Client) Capture(ctx context.Context, ev ports.Event) error {
	body, err := json.Marshal(c.formatEvent(ev))
	if err != nil {
		return fmt.Errorf("encode analytics event: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return lastErr
}

func (c *Client) formatEvent(ev ports.Event) map[string]any {
	properties := any(ev.Properties)
	if c.projection != "" {
		// The expression was validated at construction; on evaluation
		// failure fall back to the unprojected properties.
		if projected, err := jmespath.Search(c.projection, properties); err == nil {
			properties = projected
		}
	}

	msg := map[string]any{
		"event":       ev.Name,
		"distinct_id": ev.UserID,
		"properties":  properties,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}
	if c.apiKey != "" {
		msg["api_key"] = c.apiKey
	}
	if c.source != "" {
		msg["source"] = c.source
	}
	return msg
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.captureURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post analytics event: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analytics collector returned status %d", resp.StatusCode)
	}

	return nil
}
