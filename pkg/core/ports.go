package core

import "context"

// NoteAPI defines the contract for the remote note backend.
// Adhering to this interface keeps the board independent of the transport.
type NoteAPI interface {
	// ListNotes returns the full note collection in server order.
	ListNotes(ctx context.Context) ([]Note, error)

	// CreateNote submits a new note and returns the backend's acknowledged copy.
	CreateNote(ctx context.Context, p NotePayload) (Note, error)
}

// LocalStore is a small durable key/value store for client-side state.
type LocalStore interface {
	// Get returns the stored value and true, or false if the key was never set.
	Get(key string) (string, bool, error)

	// Set replaces the value stored under key.
	Set(key, value string) error
}

// Display presents a View. Implementations own all formatting.
type Display interface {
	Render(v View)
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(View)

// Render calls f(v).
func (f DisplayFunc) Render(v View) { f(v) }

// Watchable is implemented by stores that can report changes made by
// other processes.
type Watchable interface {
	// Watch emits the new value stored under key each time it changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan string, error)
}
