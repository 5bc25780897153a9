package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/usertab/usertab/internal/config"
)

//go:embed templates/usertab.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new usertab profile file",
		Long: `Init creates a new .usertab profile file in the current directory.

The generated file includes:
- Default settings for delimiter, numeric column, and display format
- Commented examples for per-file profiles
- Documentation for all available options

Examples:
  # Create .usertab in current directory
  usertab init

  # Create profile file at a specific path
  usertab init -o myprofiles.yaml

  # Force overwrite existing file
  usertab init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the profile file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing profile file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("profile file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/usertab.yaml")
	if err != nil {
		return fmt.Errorf("failed to read profile template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created profile file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure per-file settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Field delimiter and input encoding")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The column coerced to a numeric type")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The default display format")

	return nil
}
