package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/noteboard/pkg/core"
)

var (
	postTo      string
	postFrom    string
	postMessage string
)

var postCmd = &cobra.Command{
	Use:   "post [message]",
	Short: "Leave a note for someone",
	Long: `Leave a note addressed to a recipient. The sender is optional;
unsigned notes are shown as anonymous.`,
	Example: `  noteboard post --to Sam "Thanks for the help!"
  noteboard post --to Sam --from Jo --message "See you soon"`,
	Run: func(cmd *cobra.Command, args []string) {
		message := postMessage
		if message == "" {
			message = strings.Join(args, " ")
		}

		app, err := openApp(nil)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}
		app.Board.ReloadLikes()

		n, err := app.Board.Submit(context.Background(), postTo, postFrom, message)
		if err != nil {
			var verr *core.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				_ = cmd.Usage()
				os.Exit(1)
			}
			fatal("Could not post note", err)
		}

		fmt.Println(newDisplay().Format(core.View{
			State: core.ViewNotes,
			Notes: []core.NoteView{{Note: n, Likes: app.Board.DisplayedLikes(n), Liked: app.Board.Liked(n.ID)}},
		}))
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.Flags().StringVarP(&postTo, "to", "t", "", "Recipient name")
	postCmd.Flags().StringVar(&postFrom, "from", "", "Sender name (default anonymous)")
	postCmd.Flags().StringVarP(&postMessage, "message", "m", "", "Note text")
}
