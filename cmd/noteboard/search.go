package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchGlob   bool
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search notes by recipient, sender or message",
	Long: `Search notes by a case-insensitive substring of the recipient, sender or message.
With --glob the term is a glob pattern matched against recipient and sender names.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := &lastView{}
		app, err := openApp(out)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}

		if err := app.Board.Init(context.Background()); err != nil {
			printView(out.view, searchFormat)
			os.Exit(1)
		}

		term := strings.Join(args, " ")
		if searchGlob {
			if _, err := app.Board.SearchPattern(term); err != nil {
				fatal("Invalid pattern", err)
			}
		} else {
			app.Board.Search(term)
		}
		printView(out.view, searchFormat)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVarP(&searchGlob, "glob", "g", false, "Treat the term as a glob pattern on names")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "text", "Output format: text, json or yaml")
}
