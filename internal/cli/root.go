// Package cli defines the ferry command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/ferry/internal/config"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "ferry",
	Short:   "A small aggregation service in front of a public JSON test API",
	Version: config.Version,
	Long: `Ferry is a small HTTP service that forwards requests to a public JSON
test API and reshapes the results into uniform envelopes. Its outbound
path can be routed through an HTTPS-intercepting debugging proxy via
explicit --proxy / --insecure flags, making the interception point
ordinary configuration rather than ambient process state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, print help
		return cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
