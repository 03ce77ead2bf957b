package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/noteboard/pkg/core"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes on the board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := &lastView{}
		app, err := openApp(out)
		if err != nil {
			fatal("Error initializing noteboard", err)
		}

		loadErr := app.Board.Init(context.Background())
		printView(out.view, listFormat)
		if loadErr != nil {
			os.Exit(1)
		}
	},
}

// printView writes a view in the requested format.
func printView(view core.View, format string) {
	if err := writeView(os.Stdout, view, format); err != nil {
		fatal("Error writing output", err)
	}
}

func writeView(w io.Writer, view core.View, format string) error {
	notes := view.Notes
	if notes == nil {
		notes = []core.NoteView{}
	}

	switch format {
	case "json":
		if view.State == core.ViewError {
			return fmt.Errorf("%s", view.Message)
		}
		return writeJSON(w, notes)
	case "yaml":
		if view.State == core.ViewError {
			return fmt.Errorf("%s", view.Message)
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(notes)
	case "", "text":
		_, err := fmt.Fprintln(w, newDisplay().Format(view))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "Output format: text, json or yaml")
}
