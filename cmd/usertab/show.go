package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/usertab/usertab/internal/config"
	"github.com/usertab/usertab/internal/history"
	"github.com/usertab/usertab/internal/loader"
	ulog "github.com/usertab/usertab/internal/log"
	"github.com/usertab/usertab/internal/render"
	"github.com/usertab/usertab/internal/report"
	"github.com/usertab/usertab/internal/stats"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [file...]",
		Short: "Load a delimited text file and render it as a table",
		Long: `Show loads one or more delimited text files and renders each as an
aligned text table.

The first line of each file supplies the column names; every following line
is one record. Fields are separated by a single configurable character
(default ';'). One column (default "Identifier") is coerced to a numeric
type when it exists; cells that fail to parse keep their text and are
marked with '?' in the output.

Examples:
  # Render the default input file (username.csv) as a grid
  usertab show

  # Render a specific file in GitHub pipe-table format
  usertab show --format github users.csv

  # Append per-column statistics after the table
  usertab show --stats users.csv

  # Comma-separated file with a different numeric column
  usertab show -d ',' -n Age people.csv

  # JSON report written to a file
  usertab show --json -o report.json users.csv

Profile file (.usertab) example:
  defaults:
    delimiter: ";"
    format: grid
  profiles:
    username.csv:
      numericColumn: Identifier
      format: github`,
		Args: cobra.ArbitraryArgs,
		RunE: runShowCmd,
	}

	// Input flags
	cmd.Flags().StringP("delimiter", "d", config.DefaultDelimiter,
		"Single-character field delimiter")
	cmd.Flags().StringP("numeric-column", "n", config.DefaultNumericColumn,
		"Column coerced to a numeric type (empty disables coercion)")
	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Input charset: utf-8 or latin-1")
	cmd.Flags().Bool("skip-malformed", false,
		"Exclude lines whose field count does not match the header instead of failing")

	// Rendering flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Display format (see 'usertab formats')")
	cmd.Flags().BoolP("stats", "s", false,
		"Append per-column statistics after the table")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files loaded concurrently when multiple files are given")

	// Configuration
	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .usertab in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with privacy masking
	logger := ulog.NewMaskLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runShow(ctx, cfg, changedFlags(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// profileFlags are the flags that per-file profiles can also set. A profile
// value applies only when the flag was not explicitly given on the command
// line.
var profileFlags = []string{"delimiter", "numeric-column", "encoding", "format", "skip-malformed"}

// changedFlags records which profile-overridable flags were explicitly set.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool, len(profileFlags))
	for _, name := range profileFlags {
		changed[name] = cmd.Flags().Changed(name)
	}
	return changed
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Delimiter, err = cmd.Flags().GetString("delimiter")
	if err != nil {
		return nil, err
	}

	cfg.NumericColumn, err = cmd.Flags().GetString("numeric-column")
	if err != nil {
		return nil, err
	}

	cfg.Encoding, err = cmd.Flags().GetString("encoding")
	if err != nil {
		return nil, err
	}

	cfg.SkipMalformed, err = cmd.Flags().GetBool("skip-malformed")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.ShowStats, err = cmd.Flags().GetBool("stats")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.DBDir = config.XDGDataDir()

	// Load per-file profiles from the profile file.
	// If the user explicitly specified a path, error when it is missing.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("profile file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Profiles = &config.File{
			Profiles: make(map[string]config.Profile),
		}
	}

	// Positional arguments are input files; default to username.csv.
	cfg.Inputs = args
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{config.DefaultInputFile}
	}

	return cfg, nil
}

// runShow loads, renders, and reports every input file.
// With multiple inputs the loads run concurrently, but reports are written
// in argument order so the output stays deterministic.
func runShow(ctx context.Context, cfg *config.Config, changed map[string]bool, stdout, stderr io.Writer, logger *slog.Logger) error {
	// Open the history database; history is ancillary, so failure degrades
	// to a warning instead of aborting the run.
	var db *history.RunDB
	if cfg.SaveHistory {
		var err error
		db, err = history.Open(cfg.DBDir, history.DefaultOptions())
		if err != nil {
			logger.Warn("history disabled", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	out, closeOut, err := reportDestination(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	results := make([]*report.Result, len(cfg.Inputs))
	errs := make([]error, len(cfg.Inputs))

	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.BatchSize)
		for i, file := range cfg.Inputs {
			i, file := i, file
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i], errs[i] = processFile(cfg, changed, file, logger)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, file := range cfg.Inputs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i], errs[i] = processFile(cfg, changed, file, logger)
		}
	}

	failed := 0
	for i, file := range cfg.Inputs {
		if errs[i] != nil {
			failed++
			logger.Error("load failed", "file", file, "error", errs[i])
			fmt.Fprintf(stderr, "Error for %s: %v\n", file, errs[i])
			continue
		}

		if err := writeReport(cfg, out, results[i]); err != nil {
			return err
		}

		if err := saveRun(ctx, db, results[i], logger); err != nil {
			logger.Error("failed to save run", "file", file, "error", err)
		}
	}

	if failed > 0 {
		if failed == 1 && len(cfg.Inputs) == 1 {
			return errs[0]
		}
		return fmt.Errorf("%d of %d files failed", failed, len(cfg.Inputs))
	}
	return nil
}

// processFile loads one input file with its effective per-file options and
// computes statistics when requested.
func processFile(cfg *config.Config, changed map[string]bool, file string, logger *slog.Logger) (*report.Result, error) {
	opts, formatName := effectiveOptions(cfg, changed, file)

	// Fail before reading anything so an unsupported format produces no
	// partial output.
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := loader.Load(file, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	logger.Debug("file loaded",
		"file", file,
		"rows", ds.Rows(),
		"columns", len(ds.Columns),
		"elapsed", elapsed,
	)
	for _, warn := range ds.Warnings {
		logger.Warn("numeric coercion failed; cell left as text",
			"file", file,
			"line", warn.Line,
			"column", warn.Column,
			"value", warn.Value,
		)
	}
	if ds.Skipped > 0 {
		logger.Warn("malformed lines skipped", "file", file, "count", ds.Skipped)
	}

	result := &report.Result{
		Dataset: ds,
		Format:  format,
		Elapsed: elapsed,
	}
	if cfg.ShowStats {
		result.Stats = stats.Describe(ds)
	}
	return result, nil
}

// effectiveOptions merges built-in defaults, profile file values, and
// explicit CLI flags into the loader options and format for one file.
// Explicit flags always win; profile values beat built-in defaults.
func effectiveOptions(cfg *config.Config, changed map[string]bool, file string) (loader.Options, string) {
	var prof config.Profile
	if cfg.Profiles != nil {
		prof = cfg.Profiles.ProfileFor(file)
	}

	delimiter := cfg.Delimiter
	if !changed["delimiter"] && prof.Delimiter != "" {
		delimiter = prof.Delimiter
	}

	numericColumn := cfg.NumericColumn
	if !changed["numeric-column"] && prof.NumericColumn != "" {
		numericColumn = prof.NumericColumn
	}

	encoding := cfg.Encoding
	if !changed["encoding"] && prof.Encoding != "" {
		encoding = prof.Encoding
	}

	skipMalformed := cfg.SkipMalformed
	if !changed["skip-malformed"] && prof.SkipMalformed {
		skipMalformed = true
	}

	formatName := cfg.Format
	if !changed["format"] && prof.Format != "" {
		formatName = prof.Format
	}

	delim, _ := utf8.DecodeRuneInString(delimiter)

	return loader.Options{
		Delimiter:     delim,
		NumericColumn: numericColumn,
		Encoding:      encoding,
		SkipMalformed: skipMalformed,
	}, formatName
}

// reportDestination resolves where reports are written: stdout by default,
// or the --output file created with owner-only permissions.
func reportDestination(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// writeReport outputs one result in the requested report format.
func writeReport(cfg *config.Config, out io.Writer, result *report.Result) error {
	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(result)
	return err
}

// saveRun records the run in the history database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *history.RunDB, result *report.Result, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	run := &history.Run{
		File:    result.Dataset.Source,
		Rows:    result.Dataset.Rows(),
		Columns: len(result.Dataset.Columns),
		Format:  result.Format.String(),
		Stats:   result.Stats,
	}

	id, err := db.InsertRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	logger.Debug("run recorded", "id", id, "file", run.File)
	return nil
}
