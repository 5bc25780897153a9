package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for usertab.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usertab",
		Short: "Render delimited text files as aligned tables",
		Long: `usertab loads a delimited text file (first line = column names, one record
per line, single-character field separator) into an in-memory table and
renders it as aligned text in a selectable display format.

One column can be coerced to a numeric type, and per-column summary
statistics (count, min, max, mean, standard deviation) are available on
request. Each run is recorded in a local history database.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewFormatsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
