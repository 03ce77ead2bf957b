// Package noteboard is the Composition Root for the noteboard client.
//
// It connects the board controller (pkg/core) with the infrastructure
// adapters: the REST backend client, the filesystem store for likes and
// the terminal display.
//
// The board keeps an in-memory cache of the notes fetched from the backend,
// filters it for search, and layers a purely local "like" annotation on top
// of each note's server-side like count. Likes are persisted after every
// toggle and never sent to the backend.
//
// Usage:
//
//	board, err := noteboard.New(
//		noteboard.WithBaseURL("https://notes.example"),
//		noteboard.WithOutput(os.Stdout),
//	)
//	if err != nil {
//		return err
//	}
//	if err := board.Init(ctx); err != nil {
//		return err
//	}
//	board.Search("sam")
package noteboard
