// Package lifecycle bridges periodic board refreshes to the generic
// lifecycle event model.
package lifecycle

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"
)

// RefreshDue is emitted each time the board should reload its notes.
type RefreshDue struct {
	At time.Time
}

func (e RefreshDue) String() string {
	return "refresh due at " + e.At.Format(time.RFC3339)
}

type refreshSource struct {
	interval time.Duration
	out      chan lifecycle.Event
}

// NewRefreshSource creates a lifecycle.Source that emits a RefreshDue event
// every interval. A non-positive interval emits nothing; the events channel
// is closed when the context passed to Start ends.
func NewRefreshSource(interval time.Duration) lifecycle.Source {
	return &refreshSource{
		interval: interval,
		out:      make(chan lifecycle.Event),
	}
}

func (s *refreshSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *refreshSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		if s.interval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case at := <-ticker.C:
				// Ticks that arrive while the consumer is busy are dropped by the ticker.
				select {
				case s.out <- RefreshDue{At: at}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
