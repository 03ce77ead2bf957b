package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watch emits the value stored under key whenever another writer changes it.
// Bursts of filesystem events are coalesced. The channel is closed when ctx ends.
func (s *Store) Watch(ctx context.Context, key string) (<-chan string, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Atomic writes replace the file, so the directory is watched instead.
	if err := watcher.Add(s.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Dir, err)
	}

	out := make(chan string)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatching(-1)
		defer close(out)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, key, filepath.Base(path), out)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("store watcher stopped", "key", key, "error", err)
	}))

	return out, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, key, name string, out chan<- string) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			s.config.Logger.Debug("store change detected", "key", key, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(s.config.Debounce)
			} else {
				timer.Reset(s.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			value, ok, err := s.Get(key)
			if err != nil {
				s.config.Logger.Warn("failed to read changed value", "key", key, "error", err)
				continue
			}
			if !ok {
				continue
			}
			select {
			case out <- value:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.config.Logger.Error("fsnotify error", "error", err)
		}
	}
}
