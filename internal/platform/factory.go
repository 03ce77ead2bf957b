package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/noteboard/pkg/adapters/fs"
	"github.com/aretw0/noteboard/pkg/adapters/httpapi"
	"github.com/aretw0/noteboard/pkg/adapters/terminal"
	"github.com/aretw0/noteboard/pkg/core"
)

// App bundles a Board with the adapters it was wired to.
type App struct {
	Board   *core.Board
	API     core.NoteAPI
	Store   core.LocalStore
	Display core.Display
	Logger  *slog.Logger
}

// Open wires the adapters selected by opts into a new Board.
// The Board is not initialized; call Board.Init to load likes and notes.
//
//	app, err := platform.Open(platform.WithBaseURL("https://notes.example"))
func Open(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	api := o.api
	if api == nil {
		client, err := httpapi.New(httpapi.Config{
			BaseURL:   o.baseURL,
			Timeout:   o.timeout,
			UserAgent: o.userAgent,
			RateLimit: o.rateLimit,
			Burst:     o.burst,
			Logger:    logger.With("component", "api"),
		})
		if err != nil {
			return nil, err
		}
		api = client
	}

	store := o.store
	if store == nil {
		dir := o.storageDir
		if dir == "" {
			dir = DefaultStorageDir()
		}
		store = fs.NewStore(fs.Config{
			Dir:    dir,
			Logger: logger.With("component", "store"),
		})
	}

	display := o.display
	if display == nil {
		out := o.output
		if out == nil {
			out = io.Discard
		}
		display = terminal.New(out,
			terminal.WithWidth(o.width),
			terminal.WithAnonymousLabel(o.anonymousLabel),
		)
	}

	board := core.NewBoard(api, store, display,
		core.WithLogger(logger.With("component", "board")),
		core.WithLikesKey(o.likesKey),
		core.WithRecipientRequired(o.requireRecipient),
	)

	return &App{
		Board:   board,
		API:     api,
		Store:   store,
		Display: display,
		Logger:  logger,
	}, nil
}

// New creates a Board wired to the adapters selected by opts.
func New(opts ...Option) (*core.Board, error) {
	app, err := Open(opts...)
	if err != nil {
		return nil, err
	}
	return app.Board, nil
}
