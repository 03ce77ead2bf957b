package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/noteboard"
	"github.com/aretw0/noteboard/internal/platform"
	"github.com/aretw0/noteboard/pkg/adapters/terminal"
	"github.com/aretw0/noteboard/pkg/core"
)

var (
	verbose    bool
	configFile string

	v   = platform.NewViper()
	cfg *platform.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noteboard",
	Short: "Read, search and like notes on an anonymous note board",
	Long: `noteboard is a terminal client for an anonymous note-sharing board.
Notes are fetched from the board's API; likes are kept locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load(".env")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		loaded, err := platform.LoadConfig(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		slog.Debug("configuration loaded", "file", v.ConfigFileUsed(), "base_url", cfg.API.BaseURL)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (default: noteboard.yaml in project or user config dir)")
	flags.String("base-url", "", "Note board API base URL")
	flags.String("storage-dir", "", "Directory for persisted likes")
	flags.Duration("timeout", 0, "Request timeout")

	bindFlag("api.base_url", "base-url")
	bindFlag("storage.dir", "storage-dir")
	bindFlag("api.timeout", "timeout")
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// openApp wires a Board whose renders go to display.
func openApp(display core.Display) (*noteboard.App, error) {
	opts := append(cfg.Options(),
		noteboard.WithUserAgent("noteboard/"+noteboard.Version),
		noteboard.WithLogger(slog.Default()),
		noteboard.WithDisplay(display),
	)
	return noteboard.Open(opts...)
}

// newDisplay returns the terminal display for stdout.
func newDisplay() *terminal.Display {
	return terminal.New(os.Stdout,
		terminal.WithWidth(cfg.Display.Width),
		terminal.WithAnonymousLabel(cfg.Board.AnonymousLabel),
	)
}

// lastView is a display that keeps only the most recent view, so a command
// can print a single final result.
type lastView struct {
	view core.View
	set  bool
}

func (l *lastView) Render(view core.View) {
	l.view = view
	l.set = true
}
