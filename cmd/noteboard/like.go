package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/noteboard/pkg/core"
)

var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Toggle your like on a note",
	Long: `Toggle your like on a note. Likes are stored locally and never sent
to the board; running the command again removes the like.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		app, err := openApp(nil)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}
		if err := app.Board.Init(context.Background()); err != nil {
			slog.Warn("could not load notes, toggling like locally", "error", err)
		}

		liked, err := app.Board.ToggleLike(id)
		if err != nil {
			var serr *core.StorageError
			if !errors.As(err, &serr) {
				fatal("Could not toggle like", err)
			}
			fmt.Fprintf(os.Stderr, "Warning: like was not saved: %v\n", err)
		}

		n, ok := app.Board.Find(id)
		if !ok {
			verb := "Unliked"
			if liked {
				verb = "Liked"
			}
			fmt.Printf("%s note %s.\n", verb, id)
			return
		}
		fmt.Println(newDisplay().Format(core.View{
			State: core.ViewNotes,
			Notes: []core.NoteView{{Note: n, Liked: liked, Likes: app.Board.DisplayedLikes(n)}},
		}))
	},
}

var likesJSON bool

var likesCmd = &cobra.Command{
	Use:   "likes",
	Short: "List the notes you have liked",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := openApp(nil)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}
		app.Board.ReloadLikes()

		ids := app.Board.LikedIDs()
		if likesJSON {
			if err := writeJSON(os.Stdout, ids); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(likesCmd)
	likesCmd.Flags().BoolVar(&likesJSON, "json", false, "Output in JSON format")
}
