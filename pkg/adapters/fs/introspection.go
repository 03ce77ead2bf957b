package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Dir       string     `json:"dir"`
	Watchers  int        `json:"watchers"`
	LastWrite *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Dir:       s.Dir,
		Watchers:  s.watchers,
		LastWrite: s.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
}
