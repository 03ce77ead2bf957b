package httpapi

import (
	"github.com/aretw0/introspection"
	"golang.org/x/time/rate"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	BaseURL   string  `json:"base_url"`
	Requests  int64   `json:"requests"`
	Failures  int64   `json:"failures"`
	RateLimit float64 `json:"rate_limit,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	var limit float64
	if l := c.limiter.Limit(); l != rate.Inf {
		limit = float64(l)
	}
	return ClientState{
		BaseURL:   c.baseURL.String(),
		Requests:  c.requests.Load(),
		Failures:  c.failures.Load(),
		RateLimit: limit,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "http"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
