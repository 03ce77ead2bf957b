package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/noteboard/pkg/adapters/lifecycle"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the board on screen and refresh it",
	Long: `Render the board and keep it up to date. Notes are reloaded on every
interval; likes are re-read whenever another process changes them.

Every reload shows the full board, so a search filter does not survive a
refresh. Use "noteboard search" for filtered output.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := openApp(newDisplay())
		if err != nil {
			fatal("Error initializing noteboard", err)
		}
		if err := app.Board.Init(ctx); err != nil {
			slog.Warn("initial load failed, will retry", "error", err)
		}

		if err := app.Board.WatchLikes(ctx); err != nil {
			slog.Warn("likes will not refresh automatically", "error", err)
		}

		refresh := lifecycleadapter.NewRefreshSource(watchInterval)
		if err := refresh.Start(ctx); err != nil {
			fatal("Error scheduling refresh", err)
		}

		slog.Debug("watching board", "interval", watchInterval)
		for ev := range refresh.Events() {
			slog.Debug("reloading notes", "event", ev)
			if err := app.Board.Load(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("refresh failed", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", time.Minute, "Reload interval for notes (0 disables)")
}
