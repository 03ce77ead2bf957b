package core

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/singleflight"
)

// Board handles the business logic of the note board.
// It owns the note cache, the local like state and the active filter,
// and mediates between the NoteAPI and the Display.
type Board struct {
	api     NoteAPI
	store   LocalStore
	display Display
	logger  *slog.Logger

	likesKey         string
	requireRecipient bool

	mu      sync.RWMutex
	notes   []Note
	likes   *LikeState
	term    string
	match   func(Note) bool
	loaded  bool
	lastErr string

	loads      singleflight.Group
	submitting atomic.Bool
}

// NewBoard creates a new Board. A nil store keeps likes in memory only;
// a nil display discards renders.
func NewBoard(api NoteAPI, store LocalStore, display Display, opts ...BoardOption) *Board {
	if store == nil {
		store = NewMemoryStore()
	}
	if display == nil {
		display = DisplayFunc(func(View) {})
	}
	b := &Board{
		api:              api,
		store:            store,
		display:          display,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		likesKey:         DefaultLikesKey,
		requireRecipient: true,
		likes:            NewLikeState(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init loads the persisted like state and performs the initial Load.
func (b *Board) Init(ctx context.Context) error {
	b.mu.Lock()
	b.likes = b.readLikes()
	b.mu.Unlock()
	return b.Load(ctx)
}

// Load replaces the cache with the backend's note collection and renders it.
// On failure the cache is emptied and an error view is rendered.
// Concurrent calls share a single request.
func (b *Board) Load(ctx context.Context) error {
	v, err, shared := b.loads.Do("notes", func() (any, error) {
		return b.api.ListNotes(ctx)
	})
	if shared {
		b.logger.Debug("load coalesced with in-flight request")
	}

	b.mu.Lock()
	b.term, b.match = "", nil
	if err != nil {
		b.notes = nil
		b.loaded = false
		b.lastErr = MsgLoadFailed
		b.mu.Unlock()

		b.logger.Error("failed to load notes", "error", err)
		b.display.Render(View{State: ViewError, Message: MsgLoadFailed})
		return &LoadError{Message: MsgLoadFailed, Err: err}
	}

	notes, _ := v.([]Note)
	b.notes = slices.Clone(notes)
	b.loaded = true
	b.lastErr = ""
	view, _ := b.project()
	b.mu.Unlock()

	b.logger.Debug("notes loaded", "count", len(notes))
	b.display.Render(view)
	return nil
}

// Submit validates and sends a new note. The acknowledged note is prepended
// to the cache; nothing is cached unless the backend accepted it.
// A Submit issued while another is in flight returns ErrSubmitInProgress.
func (b *Board) Submit(ctx context.Context, recipient, sender, message string) (Note, error) {
	p := NotePayload{
		RecipientName: strings.TrimSpace(recipient),
		SenderName:    strings.TrimSpace(sender),
		Message:       strings.TrimSpace(message),
	}
	if p.Message == "" {
		return Note{}, &ValidationError{Field: "message", Reason: "is required"}
	}
	if b.requireRecipient && p.RecipientName == "" {
		return Note{}, &ValidationError{Field: "recipientName", Reason: "is required"}
	}

	if !b.submitting.CompareAndSwap(false, true) {
		return Note{}, ErrSubmitInProgress
	}
	defer b.submitting.Store(false)

	n, err := b.api.CreateNote(ctx, p)
	if err != nil {
		msg := backendMessage(err)
		if msg == "" {
			msg = MsgCreateFailed
		}
		b.logger.Warn("note submission failed", "error", err)
		return Note{}, &SubmissionError{Message: msg, Err: err}
	}

	b.mu.Lock()
	b.notes = append([]Note{n}, b.notes...)
	b.term, b.match = "", nil
	b.lastErr = ""
	view, _ := b.project()
	b.mu.Unlock()

	b.logger.Info("note created", "id", n.ID)
	b.display.Render(view)
	return n, nil
}

// Search filters the cache by a case-insensitive substring of the recipient,
// sender or message. An empty term clears the filter. The cache is not modified.
func (b *Board) Search(term string) []Note {
	var match func(Note) bool
	if needle := strings.ToLower(term); needle != "" {
		match = func(n Note) bool {
			return containsFold(n.RecipientName, needle) ||
				containsFold(n.SenderName, needle) ||
				containsFold(n.Message, needle)
		}
	}
	return b.filter(term, match)
}

// SearchPattern filters the cache by a glob pattern matched against the
// recipient and sender names, ignoring case. An empty pattern clears the filter.
func (b *Board) SearchPattern(pattern string) ([]Note, error) {
	if pattern == "" {
		return b.filter("", nil), nil
	}
	pat := strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pat) {
		return nil, &ValidationError{Field: "pattern", Reason: "is not a valid glob"}
	}
	match := func(n Note) bool {
		for _, name := range []string{n.RecipientName, n.SenderName} {
			if name == "" {
				continue
			}
			if ok, _ := doublestar.Match(pat, strings.ToLower(name)); ok {
				return true
			}
		}
		return false
	}
	return b.filter(pattern, match), nil
}

func (b *Board) filter(term string, match func(Note) bool) []Note {
	b.mu.Lock()
	b.term, b.match = term, match
	view, result := b.project()
	b.mu.Unlock()

	b.display.Render(view)
	return result
}

// ToggleLike flips the local like flag of a note and persists the full set.
// It never contacts the backend. A persistence failure keeps the toggle and
// is returned as a *StorageError.
func (b *Board) ToggleLike(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, &ValidationError{Field: "id", Reason: "is required"}
	}

	b.mu.Lock()
	liked := b.likes.Toggle(id)
	storeErr := b.writeLikes()
	view, _ := b.project()
	b.mu.Unlock()

	if storeErr != nil {
		b.logger.Warn("failed to persist likes", "error", storeErr)
	}
	b.display.Render(view)
	return liked, storeErr
}

// ReloadLikes re-reads the like state from the store and re-renders.
// Unreadable data yields an empty like state.
func (b *Board) ReloadLikes() {
	b.mu.Lock()
	b.likes = b.readLikes()
	view, _ := b.project()
	b.mu.Unlock()

	b.display.Render(view)
}

// DisplayedLikes returns the like count shown for n.
func (b *Board) DisplayedLikes(n Note) int {
	return DisplayedLikes(n, b.Liked(n.ID))
}

// Liked reports whether the note is locally liked.
func (b *Board) Liked(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.likes.Has(id)
}

// LikedIDs returns the locally liked note IDs, sorted.
func (b *Board) LikedIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.likes.IDs()
}

// Notes returns a snapshot of the cache.
func (b *Board) Notes() []Note {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.notes)
}

// Find returns the cached note with the given ID.
func (b *Board) Find(id string) (Note, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := slices.IndexFunc(b.notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return Note{}, false
	}
	return b.notes[i], true
}

// View returns the current projection without rendering it.
func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lastErr != "" {
		return View{State: ViewError, Message: b.lastErr}
	}
	view, _ := b.project()
	return view
}

// project builds the view of the cache under the active filter.
// Callers must hold b.mu.
func (b *Board) project() (View, []Note) {
	result := make([]Note, 0, len(b.notes))
	views := make([]NoteView, 0, len(b.notes))
	for _, n := range b.notes {
		if b.match != nil && !b.match(n) {
			continue
		}
		liked := b.likes.Has(n.ID)
		result = append(result, n)
		views = append(views, NoteView{Note: n, Liked: liked, Likes: DisplayedLikes(n, liked)})
	}

	state := ViewNotes
	switch {
	case len(b.notes) == 0:
		state = ViewEmpty
	case len(result) == 0:
		state = ViewNoResults
	}
	return View{State: state, Notes: views, Term: b.term}, result
}

// readLikes loads the persisted like state, failing open to an empty set.
// Callers must hold b.mu.
func (b *Board) readLikes() *LikeState {
	raw, ok, err := b.store.Get(b.likesKey)
	if err != nil {
		b.logger.Warn("ignoring unreadable likes", "error", &StorageError{Op: "read", Key: b.likesKey, Err: err})
		return NewLikeState()
	}
	if !ok || raw == "" {
		return NewLikeState()
	}
	likes := NewLikeState()
	if err := json.Unmarshal([]byte(raw), likes); err != nil {
		b.logger.Warn("ignoring malformed likes", "error", &StorageError{Op: "decode", Key: b.likesKey, Err: err})
		return NewLikeState()
	}
	return likes
}

// writeLikes persists the full like state. Callers must hold b.mu.
func (b *Board) writeLikes() error {
	data, err := json.Marshal(b.likes)
	if err == nil {
		err = b.store.Set(b.likesKey, string(data))
	}
	if err != nil {
		return &StorageError{Op: "write", Key: b.likesKey, Err: err}
	}
	return nil
}

func containsFold(field, lowerNeedle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerNeedle)
}
