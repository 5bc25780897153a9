package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usertab/usertab/internal/render"
)

// NewFormatsCmd creates the formats command.
func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported display formats",
		Long: `Formats lists the display format tags accepted by 'show --format'
with a one-line description of each style.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, f := range render.Formats() {
				fmt.Fprintf(out, "  %-12s %s\n", f.String(), f.Description())
			}
		},
	}
}
