package platform

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/noteboard/pkg/core"
)

// options holds the internal configuration for a noteboard App.
type options struct {
	baseURL   string
	timeout   time.Duration
	rateLimit float64
	burst     int
	userAgent string

	storageDir string
	likesKey   string

	requireRecipient bool
	anonymousLabel   string
	width            int

	api     core.NoteAPI
	store   core.LocalStore
	display core.Display
	output  io.Writer
	logger  *slog.Logger
}

// Option defines a functional option for configuring noteboard.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		likesKey:         core.DefaultLikesKey,
		requireRecipient: true,
	}
}

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithTimeout bounds each backend request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRateLimit caps backend requests per second. Zero disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = rps
		o.burst = burst
	}
}

// WithUserAgent sets the User-Agent sent to the backend.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithStorageDir sets the directory holding persisted client state.
// Defaults to the user config directory.
func WithStorageDir(dir string) Option {
	return func(o *options) {
		o.storageDir = dir
	}
}

// WithLikesKey sets the storage key for liked note IDs.
func WithLikesKey(key string) Option {
	return func(o *options) {
		o.likesKey = key
	}
}

// WithRecipientRequired controls whether notes must name a recipient.
func WithRecipientRequired(required bool) Option {
	return func(o *options) {
		o.requireRecipient = required
	}
}

// WithAnonymousLabel sets the label shown for unsigned notes.
func WithAnonymousLabel(label string) Option {
	return func(o *options) {
		o.anonymousLabel = label
	}
}

// WithWidth sets the card width of the terminal display.
func WithWidth(width int) Option {
	return func(o *options) {
		o.width = width
	}
}

// WithAPI injects a custom backend client (e.g. a mock).
// If provided, the HTTP adapter is skipped.
func WithAPI(api core.NoteAPI) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithStore injects a custom LocalStore.
// If provided, the filesystem adapter is skipped.
func WithStore(store core.LocalStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithDisplay injects a custom display.
// If provided, the terminal display is skipped.
func WithDisplay(display core.Display) Option {
	return func(o *options) {
		o.display = display
	}
}

// WithOutput sets where the terminal display writes. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
