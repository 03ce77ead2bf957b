// Package fs implements core.LocalStore on the local filesystem.
// Each key is a file inside a single directory; writes are atomic.
package fs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/noteboard/pkg/core"
)

// Config holds the configuration for a Store.
type Config struct {
	Dir      string
	Logger   *slog.Logger
	Debounce time.Duration // Watch coalescing window. Zero means 50ms.
}

// Store is a directory-backed key/value store.
type Store struct {
	Dir    string
	config Config

	mu        sync.RWMutex
	watchers  int
	lastWrite *time.Time
}

// NewStore creates a Store rooted at cfg.Dir. The directory is created on first write.
func NewStore(cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 50 * time.Millisecond
	}
	return &Store{Dir: cfg.Dir, config: cfg}
}

// Initialize ensures the store directory exists.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Get implements core.LocalStore. A missing file reads as absent.
func (s *Store) Get(key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements core.LocalStore.
func (s *Store) Set(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.Initialize(); err != nil {
		return err
	}
	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return err
	}

	s.recordWrite()
	s.config.Logger.Debug("store value written", "key", key, "bytes", len(value))
	return nil
}

// path maps a key to its file, rejecting keys that would escape the directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) ||
		isTempFile(key) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key), nil
}

var _ core.LocalStore = (*Store)(nil)
