package core

import (
	"github.com/aretw0/introspection"
)

// BoardState exposes internal state for observability.
type BoardState struct {
	Notes      int    `json:"notes"`
	Liked      int    `json:"liked"`
	Term       string `json:"term,omitempty"`
	Loaded     bool   `json:"loaded"`
	Submitting bool   `json:"submitting"`
	LastError  string `json:"last_error,omitempty"`
	APIType    string `json:"api_type"`
	StoreType  string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (b *Board) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BoardState{
		Notes:      len(b.notes),
		Liked:      b.likes.Len(),
		Term:       b.term,
		Loaded:     b.loaded,
		Submitting: b.submitting.Load(),
		LastError:  b.lastErr,
		APIType:    componentType(b.api, "api"),
		StoreType:  componentType(b.store, "store"),
	}
}

// ComponentType implements introspection.Component.
func (b *Board) ComponentType() string {
	return "board"
}

// componentType reports the collaborator's type if it implements introspection.Component.
func componentType(v any, fallback string) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Board)(nil)
var _ introspection.Component = (*Board)(nil)
