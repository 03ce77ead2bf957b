package core

import (
	"context"
	"errors"

	"github.com/aretw0/lifecycle"
)

// WatchLikes reloads the like state whenever the store reports that another
// process changed it. It returns once the watch is running.
func (b *Board) WatchLikes(ctx context.Context) error {
	w, ok := b.store.(Watchable)
	if !ok {
		return errors.New("store does not support watching")
	}
	changes, err := w.Watch(ctx, b.likesKey)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for range changes {
			b.logger.Debug("likes changed externally, reloading")
			b.ReloadLikes()
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		b.logger.Error("likes watcher failed", "error", err)
	}))
	return nil
}
