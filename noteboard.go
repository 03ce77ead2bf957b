package noteboard

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/noteboard/internal/platform"
	"github.com/aretw0/noteboard/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.3.0"

// --- Types ---

// Board is the note board controller.
type Board = core.Board

// Note is a single addressed message.
type Note = core.Note

// App bundles a Board with its adapters.
type App = platform.App

// --- Configuration ---

// Option defines a functional option for configuring noteboard.
type Option = platform.Option

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithTimeout bounds each backend request.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithRateLimit caps backend requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return platform.WithRateLimit(rps, burst)
}

// WithUserAgent sets the User-Agent sent to the backend.
func WithUserAgent(ua string) Option {
	return platform.WithUserAgent(ua)
}

// WithStorageDir sets the directory holding persisted likes.
func WithStorageDir(dir string) Option {
	return platform.WithStorageDir(dir)
}

// WithLikesKey sets the storage key for liked note IDs.
func WithLikesKey(key string) Option {
	return platform.WithLikesKey(key)
}

// WithRecipientRequired controls whether notes must name a recipient.
func WithRecipientRequired(required bool) Option {
	return platform.WithRecipientRequired(required)
}

// WithAnonymousLabel sets the label shown for unsigned notes.
func WithAnonymousLabel(label string) Option {
	return platform.WithAnonymousLabel(label)
}

// WithAPI allows injecting a custom backend client.
func WithAPI(api core.NoteAPI) Option {
	return platform.WithAPI(api)
}

// WithStore allows injecting a custom LocalStore.
func WithStore(store core.LocalStore) Option {
	return platform.WithStore(store)
}

// WithDisplay allows injecting a custom display.
func WithDisplay(display core.Display) Option {
	return platform.WithDisplay(display)
}

// WithOutput sets where the terminal display writes.
func WithOutput(w io.Writer) Option {
	return platform.WithOutput(w)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// --- Factory ---

// New creates a new Board. Call Init on it to load likes and notes.
func New(opts ...Option) (*core.Board, error) {
	return platform.New(opts...)
}

// Open creates a new Board and returns it together with its adapters.
func Open(opts ...Option) (*platform.App, error) {
	return platform.Open(opts...)
}

// FindRoot recursively looks upwards for a noteboard project root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
