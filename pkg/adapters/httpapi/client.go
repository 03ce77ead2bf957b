// Package httpapi implements core.NoteAPI against the note board REST backend.
//
// Endpoints:
//
//	GET  {base}/api/notes  -> {"success":true,"data":[note...]}
//	POST {base}/api/notes  -> {"success":true,"data":note}
//
// Failures carry {"success":false,"message":"..."}; the message is surfaced
// verbatim through core.BackendError.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aretw0/noteboard/pkg/core"
)

const (
	// DefaultBaseURL is the public note board backend.
	DefaultBaseURL = "https://to-you-anonymously-backend.onrender.com"

	// DefaultTimeout bounds a single request when the config sets none.
	DefaultTimeout = 30 * time.Second

	// NotesPath is the collection endpoint.
	NotesPath = "/api/notes"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20

	defaultUserAgent = "noteboard"
)

var errMissingNote = errors.New("response did not include the created note")

// Config holds configuration for creating a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RateLimit is the maximum requests per second. Zero disables limiting.
	RateLimit float64
	Burst     int

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the note board backend. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger

	requests atomic.Int64
	failures atomic.Int64
}

// New creates a Client from cfg, applying defaults for unset fields.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// ListNotes implements core.NoteAPI.
func (c *Client) ListNotes(ctx context.Context) ([]core.Note, error) {
	var env envelope[[]wireNote]
	if err := c.do(ctx, "list notes", http.MethodGet, nil, &env); err != nil {
		return nil, err
	}

	notes := make([]core.Note, 0, len(env.Data))
	for _, w := range env.Data {
		notes = append(notes, w.toCore())
	}
	return notes, nil
}

// CreateNote implements core.NoteAPI.
func (c *Client) CreateNote(ctx context.Context, p core.NotePayload) (core.Note, error) {
	var env envelope[*wireNote]
	if err := c.do(ctx, "create note", http.MethodPost, p, &env); err != nil {
		return core.Note{}, err
	}

	if env.Data == nil || env.Data.id() == "" {
		c.failures.Add(1)
		return core.Note{}, &core.BackendError{Op: "create note", Err: errMissingNote}
	}
	return env.Data.toCore(), nil
}

// do performs one request against the notes endpoint and decodes a successful
// envelope into out. out must point to an envelope.
func (c *Client) do(ctx context.Context, op, method string, body any, out successEnvelope) error {
	if err := c.limiter.Wait(ctx); err != nil {
		c.failures.Add(1)
		return &core.NetworkError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL.JoinPath(NotesPath).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.requests.Add(1)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug("api request failed", "op", op, "request_id", requestID, "error", err)
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.logger.Debug("api request",
		"op", op,
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)
	if err != nil {
		c.failures.Add(1)
		return &core.NetworkError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.failures.Add(1)
		var failure envelope[json.RawMessage]
		_ = json.Unmarshal(data, &failure)
		return &core.BackendError{Op: op, StatusCode: resp.StatusCode, Message: failure.Message}
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.failures.Add(1)
		return &core.BackendError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if !out.ok() {
		c.failures.Add(1)
		return &core.BackendError{Op: op, StatusCode: resp.StatusCode, Message: out.message()}
	}
	return nil
}

var _ core.NoteAPI = (*Client)(nil)
