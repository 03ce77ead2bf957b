package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/noteboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of noteboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("noteboard version %s\n", strings.TrimSpace(noteboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
