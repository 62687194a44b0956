// Package cli provides the Cobra command structure for mdbridge.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbridge/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdbridge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdbridge",
		Short: "Parse, inspect and render Markdown through a typed block model",
		Long: `mdbridge parses CommonMark and GitHub Flavored Markdown (GFM) into a
document tree, reads that tree into a typed block and inline model, builds
trees back from the model, and renders them as HTML, CommonMark XML,
CommonMark or LaTeX.

Use it to convert documents, inspect how a document is structured, or
verify that a document survives a trip through the block model unchanged.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
