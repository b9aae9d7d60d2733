package config

import (
	"strings"
	"time"
)

const defaultObservabilityName = "digest-api"

// ObservabilityConfig groups configuration that controls metrics and analytics fan-out.
type ObservabilityConfig struct {
	Metrics   ObservabilityMetricsConfig
	Analytics AnalyticsConfig `envPrefix:"ANALYTICS_"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
	c.Analytics.Sanitize()
}

// ObservabilityMetricsConfig controls emission of metrics to external sinks such as StatsD.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}

// AnalyticsConfig controls the event collector used for product analytics.
// Events are forwarded fire-and-forget; collector failures never surface to callers.
type AnalyticsConfig struct {
	Enabled    bool          `env:"ENABLED"     envDefault:"false"`
	CaptureURL string        `env:"CAPTURE_URL"`
	APIKey     string        `env:"API_KEY"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"5s"`
	RetryLimit int           `env:"RETRY_LIMIT" envDefault:"3"`
	Source     string        `env:"SOURCE"      envDefault:"digest-api"`

	// Projection is an optional JMESPath expression applied to event
	// properties before forwarding, letting operators reshape or narrow
	// the payload without a code change.
	Projection string `env:"PROJECTION"`
}

// Sanitize normalises analytics configuration values.
func (c *AnalyticsConfig) Sanitize() {
	c.CaptureURL = strings.TrimSpace(c.CaptureURL)
	c.Projection = strings.TrimSpace(c.Projection)
	if c.Source = strings.TrimSpace(c.Source); c.Source == "" {
		c.Source = defaultObservabilityName
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
	if c.Enabled && c.CaptureURL == "" {
		c.Enabled = false
	}
}
