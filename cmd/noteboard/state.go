package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the internal state of the board and its adapters",
	Long: `Load the board and print a JSON snapshot of the board, the API client
and the like store. Useful when debugging configuration.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := openApp(nil)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}
		if err := app.Board.Init(context.Background()); err != nil {
			slog.Warn("board failed to load", "error", err)
		}

		snapshot := map[string]any{"board": app.Board.State()}
		for name, c := range map[string]any{"api": app.API, "store": app.Store} {
			if in, ok := c.(introspection.Introspectable); ok {
				snapshot[name] = in.State()
			}
		}
		if err := writeJSON(os.Stdout, snapshot); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
