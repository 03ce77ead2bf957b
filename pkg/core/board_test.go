package core_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/noteboard/pkg/core"
)

// MockAPI implements core.NoteAPI in memory.
type MockAPI struct {
	mu          sync.Mutex
	notes       []core.Note
	listErr     error
	createErr   error
	created     core.Note
	listCalls   int
	createCalls int
	payloads    []core.NotePayload

	// block, when set, is awaited inside CreateNote after entered is signalled.
	entered chan struct{}
	block   chan struct{}

	// listBlock, when set, is awaited inside the first ListNotes call after
	// listEntered is signalled.
	listEntered chan struct{}
	listBlock   chan struct{}
}

func (m *MockAPI) ListNotes(ctx context.Context) ([]core.Note, error) {
	m.mu.Lock()
	m.listCalls++
	entered, block := m.listEntered, m.listBlock
	m.listEntered, m.listBlock = nil, nil
	m.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.notes, nil
}

func (m *MockAPI) calls() (list, create int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.createCalls
}

func (m *MockAPI) CreateNote(ctx context.Context, p core.NotePayload) (core.Note, error) {
	m.mu.Lock()
	m.createCalls++
	m.payloads = append(m.payloads, p)
	entered, block := m.entered, m.block
	m.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}
	if m.createErr != nil {
		return core.Note{}, m.createErr
	}
	return m.created, nil
}

// FailingStore is a LocalStore whose reads and writes can be made to fail.
type FailingStore struct {
	*core.MemoryStore
	getErr error
	setErr error
}

func (s *FailingStore) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.MemoryStore.Get(key)
}

func (s *FailingStore) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(key, value)
}

// recorder captures rendered views.
type recorder struct {
	views []core.View
}

func (r *recorder) Render(v core.View) { r.views = append(r.views, v) }

func (r *recorder) last(t *testing.T) core.View {
	t.Helper()
	require.NotEmpty(t, r.views, "nothing was rendered")
	return r.views[len(r.views)-1]
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: "3", RecipientName: "Alex", SenderName: "Jo", Message: "See you at the lake", LikeCount: 0, CreatedAt: ts("2024-01-03T00:00:00Z")},
		{ID: "2", RecipientName: "Sam", Message: "Thanks for the Book", LikeCount: 5, CreatedAt: ts("2024-01-02T00:00:00Z")},
		{ID: "1", SenderName: "Maria", Message: "hello world", LikeCount: 1, CreatedAt: ts("2024-01-01T00:00:00Z")},
	}
}

func newBoard(t *testing.T, api *MockAPI, store core.LocalStore) (*core.Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b := core.NewBoard(api, store, rec)
	require.NoError(t, b.Init(context.Background()))
	return b, rec
}

func ids(notes []core.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestBoard_Load(t *testing.T) {
	t.Run("Replaces cache in server order", func(t *testing.T) {
		api := &MockAPI{notes: sampleNotes()}
		b, rec := newBoard(t, api, nil)

		assert.Equal(t, []string{"3", "2", "1"}, ids(b.Notes()))
		view := rec.last(t)
		assert.Equal(t, core.ViewNotes, view.State)
		assert.Len(t, view.Notes, 3)

		api.notes = []core.Note{{ID: "9", Message: "only"}}
		require.NoError(t, b.Load(context.Background()))
		assert.Equal(t, []string{"9"}, ids(b.Notes()))
	})

	t.Run("Empty collection renders empty state", func(t *testing.T) {
		b, rec := newBoard(t, &MockAPI{}, nil)
		assert.Empty(t, b.Notes())
		assert.Equal(t, core.ViewEmpty, rec.last(t).State)
	})

	t.Run("Failure empties cache and renders error", func(t *testing.T) {
		api := &MockAPI{notes: sampleNotes()}
		b, rec := newBoard(t, api, nil)

		api.listErr = &core.NetworkError{Op: "list notes", Err: errors.New("connection refused")}
		err := b.Load(context.Background())
		require.Error(t, err)

		var loadErr *core.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, core.MsgLoadFailed, loadErr.Message)

		var netErr *core.NetworkError
		assert.ErrorAs(t, err, &netErr)

		assert.Empty(t, b.Notes())
		view := rec.last(t)
		assert.Equal(t, core.ViewError, view.State)
		assert.Equal(t, core.MsgLoadFailed, view.Message)
		assert.Equal(t, core.ViewError, b.View().State)
	})

	t.Run("Concurrent loads share one request", func(t *testing.T) {
		for _, tc := range []struct {
			name    string
			listErr error
		}{
			{"success", nil},
			{"failure", &core.NetworkError{Op: "list notes", Err: errors.New("timeout")}},
		} {
			t.Run(tc.name, func(t *testing.T) {
				api := &MockAPI{notes: sampleNotes(), listErr: tc.listErr}
				b := core.NewBoard(api, nil, nil)

				entered, release := make(chan struct{}), make(chan struct{})
				api.listEntered, api.listBlock = entered, release

				errs := make([]error, 2)
				var wg sync.WaitGroup
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs[0] = b.Load(context.Background())
				}()
				<-entered

				wg.Add(1)
				go func() {
					defer wg.Done()
					errs[1] = b.Load(context.Background())
				}()
				// Give the second caller time to join the in-flight request.
				time.Sleep(50 * time.Millisecond)
				close(release)
				wg.Wait()

				list, _ := api.calls()
				assert.Equal(t, 1, list)
				if tc.listErr == nil {
					assert.NoError(t, errs[0])
					assert.NoError(t, errs[1])
					assert.Equal(t, []string{"3", "2", "1"}, ids(b.Notes()))
					return
				}
				for _, err := range errs {
					var loadErr *core.LoadError
					require.ErrorAs(t, err, &loadErr)
					assert.ErrorIs(t, err, tc.listErr)
				}
				assert.Empty(t, b.Notes())
			})
		}
	})

	t.Run("Submit after a failed load clears the error", func(t *testing.T) {
		api := &MockAPI{
			listErr: &core.NetworkError{Op: "list notes", Err: errors.New("connection refused")},
			created: core.Note{ID: "7", RecipientName: "Sam", Message: "hi"},
		}
		rec := &recorder{}
		b := core.NewBoard(api, nil, rec)
		require.Error(t, b.Init(context.Background()))
		require.Equal(t, core.ViewError, b.View().State)

		_, err := b.Submit(context.Background(), "Sam", "", "hi")
		require.NoError(t, err)

		assert.Equal(t, core.ViewNotes, rec.last(t).State)
		assert.Equal(t, core.ViewNotes, b.View().State)
		assert.Empty(t, b.State().(core.BoardState).LastError)

		_, err = b.ToggleLike("7")
		require.NoError(t, err)
		view := b.View()
		assert.Equal(t, core.ViewNotes, view.State)
		require.Len(t, view.Notes, 1)
		assert.True(t, view.Notes[0].Liked)
	})

	t.Run("Cache does not alias the API slice", func(t *testing.T) {
		notes := sampleNotes()
		b, _ := newBoard(t, &MockAPI{notes: notes}, nil)
		notes[0].Message = "mutated"
		n, ok := b.Find("3")
		require.True(t, ok)
		assert.Equal(t, "See you at the lake", n.Message)
	})
}

func TestBoard_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Prepends acknowledged note", func(t *testing.T) {
		api := &MockAPI{
			notes: sampleNotes(),
			created: core.Note{
				ID: "4", RecipientName: "Sam", SenderName: "Anonymous", Message: "Hello",
				LikeCount: 0, CreatedAt: ts("2024-01-04T00:00:00Z"),
			},
		}
		b, rec := newBoard(t, api, nil)

		n, err := b.Submit(ctx, "  Sam ", "", " Hello\n")
		require.NoError(t, err)
		assert.Equal(t, "4", n.ID)

		require.Len(t, api.payloads, 1)
		assert.Equal(t, core.NotePayload{RecipientName: "Sam", Message: "Hello"}, api.payloads[0])

		notes := b.Notes()
		require.Len(t, notes, 4)
		assert.Equal(t, "4", notes[0].ID)
		assert.Equal(t, []string{"4", "3", "2", "1"}, ids(notes))
		assert.Equal(t, core.ViewNotes, rec.last(t).State)
		assert.Len(t, rec.last(t).Notes, 4)
	})

	t.Run("Empty message never calls the API", func(t *testing.T) {
		for _, msg := range []string{"", "   ", "\t\n"} {
			api := &MockAPI{notes: sampleNotes()}
			b, _ := newBoard(t, api, nil)

			_, err := b.Submit(ctx, "Sam", "Jo", msg)
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "message", verr.Field)
			assert.Zero(t, api.createCalls)
			assert.Len(t, b.Notes(), 3)
		}
	})

	t.Run("Recipient required by default", func(t *testing.T) {
		api := &MockAPI{}
		b, _ := newBoard(t, api, nil)

		_, err := b.Submit(ctx, " ", "Jo", "hi")
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "recipientName", verr.Field)
		assert.Zero(t, api.createCalls)
	})

	t.Run("Recipient optional when configured", func(t *testing.T) {
		api := &MockAPI{created: core.Note{ID: "1", Message: "hi"}}
		b := core.NewBoard(api, nil, nil, core.WithRecipientRequired(false))

		_, err := b.Submit(ctx, "", "", "hi")
		require.NoError(t, err)
		assert.Equal(t, 1, api.createCalls)
	})

	t.Run("Backend message is surfaced verbatim", func(t *testing.T) {
		api := &MockAPI{
			notes:     sampleNotes(),
			createErr: &core.BackendError{Op: "create note", StatusCode: 400, Message: "Message too long"},
		}
		b, _ := newBoard(t, api, nil)

		_, err := b.Submit(ctx, "Sam", "", "Hello")
		var serr *core.SubmissionError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "Message too long", serr.Message)
		assert.Equal(t, "Message too long", err.Error())
		assert.Equal(t, []string{"3", "2", "1"}, ids(b.Notes()))
	})

	t.Run("Fallback message without backend message", func(t *testing.T) {
		api := &MockAPI{createErr: &core.NetworkError{Op: "create note", Err: errors.New("timeout")}}
		b, _ := newBoard(t, api, nil)

		_, err := b.Submit(ctx, "Sam", "", "Hello")
		var serr *core.SubmissionError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, core.MsgCreateFailed, serr.Message)
		assert.Empty(t, b.Notes())
	})

	t.Run("Overlapping submit is rejected", func(t *testing.T) {
		api := &MockAPI{
			created: core.Note{ID: "1", RecipientName: "Sam", Message: "first"},
			entered: make(chan struct{}),
			block:   make(chan struct{}),
		}
		b := core.NewBoard(api, nil, nil)

		done := make(chan error, 1)
		go func() {
			_, err := b.Submit(ctx, "Sam", "", "first")
			done <- err
		}()
		<-api.entered

		_, err := b.Submit(ctx, "Sam", "", "second")
		assert.ErrorIs(t, err, core.ErrSubmitInProgress)

		close(api.block)
		require.NoError(t, <-done)
		assert.Equal(t, 1, api.createCalls)
		assert.Len(t, b.Notes(), 1)

		api.entered, api.block = nil, nil
		_, err = b.Submit(ctx, "Sam", "", "third")
		assert.NoError(t, err)
	})
}

func TestBoard_Search(t *testing.T) {
	t.Run("Empty term returns full cache in order", func(t *testing.T) {
		api := &MockAPI{notes: sampleNotes(), created: core.Note{ID: "4", RecipientName: "Kim", Message: "new"}}
		b, rec := newBoard(t, api, nil)
		_, err := b.Submit(context.Background(), "Kim", "", "new")
		require.NoError(t, err)

		got := b.Search("")
		assert.Equal(t, ids(b.Notes()), ids(got))
		assert.Equal(t, core.ViewNotes, rec.last(t).State)
	})

	t.Run("Matches any populated field ignoring case", func(t *testing.T) {
		b, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, nil)

		cases := map[string][]string{
			"ALEX":  {"3"},
			"jo":    {"3"},
			"book":  {"2"},
			"sam":   {"2"},
			"maria": {"1"},
			"o":     {"3", "2", "1"},
			"the":   {"3", "2"},
		}
		for term, want := range cases {
			assert.Equal(t, want, ids(b.Search(term)), "term %q", term)
		}
	})

	t.Run("Inclusion law over every note", func(t *testing.T) {
		notes := sampleNotes()
		b, _ := newBoard(t, &MockAPI{notes: notes}, nil)

		for _, term := range []string{"a", "lake", "x", "anonymous", "HELLO", " "} {
			got := map[string]bool{}
			for _, n := range b.Search(term) {
				got[n.ID] = true
			}
			needle := strings.ToLower(term)
			for _, n := range notes {
				want := strings.Contains(strings.ToLower(n.RecipientName), needle) ||
					strings.Contains(strings.ToLower(n.SenderName), needle) ||
					strings.Contains(strings.ToLower(n.Message), needle)
				assert.Equal(t, want, got[n.ID], "term %q note %s", term, n.ID)
			}
		}
	})

	t.Run("No results is distinct from empty", func(t *testing.T) {
		b, rec := newBoard(t, &MockAPI{notes: sampleNotes()}, nil)
		got := b.Search("zzz")
		assert.Empty(t, got)
		assert.Equal(t, core.ViewNoResults, rec.last(t).State)
		assert.Equal(t, "zzz", rec.last(t).Term)

		empty, rec2 := newBoard(t, &MockAPI{}, nil)
		assert.Empty(t, empty.Search("zzz"))
		assert.Equal(t, core.ViewEmpty, rec2.last(t).State)
	})

	t.Run("Idempotent and non-mutating", func(t *testing.T) {
		b, rec := newBoard(t, &MockAPI{notes: sampleNotes()}, nil)
		first := b.Search("o")
		v1 := rec.last(t)
		second := b.Search("o")
		v2 := rec.last(t)

		assert.Equal(t, first, second)
		assert.Equal(t, v1, v2)
		assert.Len(t, b.Notes(), 3)
	})
}

func TestBoard_SearchPattern(t *testing.T) {
	b, rec := newBoard(t, &MockAPI{notes: sampleNotes()}, nil)

	got, err := b.SearchPattern("s*")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))

	got, err = b.SearchPattern("{alex,maria}")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(got))

	got, err = b.SearchPattern("")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = b.SearchPattern("[a-")
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pattern", verr.Field)

	got, err = b.SearchPattern("nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, core.ViewNoResults, rec.last(t).State)
}

func TestBoard_ToggleLike(t *testing.T) {
	t.Run("Round trip returns to baseline", func(t *testing.T) {
		api := &MockAPI{notes: []core.Note{{ID: "1", Message: "Hi", RecipientName: "Sam", LikeCount: 2}}}
		store := core.NewMemoryStore()
		b, rec := newBoard(t, api, store)
		n, _ := b.Find("1")

		counts := []int{b.DisplayedLikes(n)}

		liked, err := b.ToggleLike("1")
		require.NoError(t, err)
		assert.True(t, liked)
		counts = append(counts, b.DisplayedLikes(n))
		assert.True(t, rec.last(t).Notes[0].Liked)
		assert.Equal(t, 3, rec.last(t).Notes[0].Likes)
		assert.Equal(t, 2, rec.last(t).Notes[0].LikeCount)

		liked, err = b.ToggleLike("1")
		require.NoError(t, err)
		assert.False(t, liked)
		counts = append(counts, b.DisplayedLikes(n))

		assert.Equal(t, []int{2, 3, 2}, counts)
		assert.False(t, b.Liked("1"))
		assert.Zero(t, api.listCalls-1, "toggling must not contact the backend")
	})

	t.Run("Persists full set after every toggle", func(t *testing.T) {
		store := core.NewMemoryStore()
		b, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, store)

		_, _ = b.ToggleLike("2")
		_, _ = b.ToggleLike("1")
		raw, ok, _ := store.Get(core.DefaultLikesKey)
		require.True(t, ok)
		assert.JSONEq(t, `["1","2"]`, raw)

		_, _ = b.ToggleLike("2")
		raw, _, _ = store.Get(core.DefaultLikesKey)
		assert.JSONEq(t, `["1"]`, raw)
	})

	t.Run("Restores persisted likes on init", func(t *testing.T) {
		store := core.NewMemoryStore()
		require.NoError(t, store.Set("custom", `["2","unknown"]`))

		rec := &recorder{}
		b := core.NewBoard(&MockAPI{notes: sampleNotes()}, store, rec, core.WithLikesKey("custom"))
		require.NoError(t, b.Init(context.Background()))

		assert.True(t, b.Liked("2"))
		assert.Equal(t, []string{"2", "unknown"}, b.LikedIDs())
		view := rec.last(t)
		assert.Equal(t, 6, view.Notes[1].Likes)
	})

	t.Run("Malformed or unreadable likes fail open", func(t *testing.T) {
		store := core.NewMemoryStore()
		require.NoError(t, store.Set(core.DefaultLikesKey, `{not json`))
		b, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, store)
		assert.Empty(t, b.LikedIDs())

		failing := &FailingStore{MemoryStore: core.NewMemoryStore(), getErr: errors.New("disk on fire")}
		b2, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, failing)
		assert.Empty(t, b2.LikedIDs())
	})

	t.Run("Write failure keeps the toggle", func(t *testing.T) {
		failing := &FailingStore{MemoryStore: core.NewMemoryStore(), setErr: errors.New("read-only")}
		b, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, failing)

		liked, err := b.ToggleLike("1")
		assert.True(t, liked)
		var serr *core.StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "write", serr.Op)
		assert.True(t, b.Liked("1"))
	})

	t.Run("Empty id is rejected", func(t *testing.T) {
		b := core.NewBoard(&MockAPI{}, nil, nil)
		_, err := b.ToggleLike(" ")
		var verr *core.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Keeps the active filter when re-rendering", func(t *testing.T) {
		b, rec := newBoard(t, &MockAPI{notes: sampleNotes()}, nil)
		b.Search("sam")
		_, err := b.ToggleLike("2")
		require.NoError(t, err)

		view := rec.last(t)
		require.Len(t, view.Notes, 1)
		assert.Equal(t, "2", view.Notes[0].ID)
		assert.Equal(t, "sam", view.Term)
	})
}

func TestBoard_ReloadLikes(t *testing.T) {
	store := core.NewMemoryStore()
	b, rec := newBoard(t, &MockAPI{notes: sampleNotes()}, store)

	require.NoError(t, store.Set(core.DefaultLikesKey, `["3"]`))
	b.ReloadLikes()
	assert.Equal(t, []string{"3"}, b.LikedIDs())
	assert.True(t, rec.last(t).Notes[0].Liked)

	require.NoError(t, store.Set(core.DefaultLikesKey, `garbage`))
	b.ReloadLikes()
	assert.Empty(t, b.LikedIDs())
}

func TestBoard_State(t *testing.T) {
	b, _ := newBoard(t, &MockAPI{notes: sampleNotes()}, core.NewMemoryStore())
	_, _ = b.ToggleLike("1")
	b.Search("o")

	state, ok := b.State().(core.BoardState)
	require.True(t, ok)
	assert.Equal(t, 3, state.Notes)
	assert.Equal(t, 1, state.Liked)
	assert.Equal(t, "o", state.Term)
	assert.True(t, state.Loaded)
	assert.Equal(t, "api", state.APIType)
	assert.Equal(t, "memory", state.StoreType)
	assert.Equal(t, "board", b.ComponentType())
}
