package sfclient

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*config)

type config struct {
	httpClient *http.Client
	apiVersion string
	maxRetries int
	backoff    func(int) time.Duration
}

func defaultConfig() *config {
	return &config{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiVersion: DefaultAPIVersion,
		maxRetries: 0,
	}
}

func applyOptions(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *config) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithAPIVersion sets the platform API version, e.g. "59.0".
func WithAPIVersion(v string) Option {
	return func(c *config) {
		if v != "" {
			c.apiVersion = v
		}
	}
}

// WithRetry retries transient failures (network errors and gateway
// statuses) up to maxRetries extra times.
func WithRetry(maxRetries int, backoff func(attempt int) time.Duration) Option {
	return func(c *config) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		c.backoff = backoff
	}
}

// ConstantBackoff returns a backoff function that always returns the same duration.
func ConstantBackoff(d time.Duration) func(int) time.Duration {
	return func(_ int) time.Duration {
		return d
	}
}

// ExponentialBackoff returns a backoff function that increases the duration exponentially.
// backoff = initial * 2^(attempt-1)
func ExponentialBackoff(initial time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt <= 1 {
			return initial
		}
		return initial * time.Duration(1<<(attempt-1))
	}
}
