package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/usertab/usertab/internal/config"
	"github.com/usertab/usertab/internal/history"
	"github.com/usertab/usertab/internal/model"
	"github.com/usertab/usertab/internal/render"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `History lists past 'show' runs recorded in the local database,
newest first.

Each entry holds the input file, the run time, the row and column counts,
and the display format used.

Examples:
  # List the most recent runs
  usertab history

  # List runs for one file only
  usertab history --file username.csv

  # Machine-readable output
  usertab history --json`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultHistoryLimit,
		"Maximum number of runs to list (0 = no limit)")
	cmd.Flags().String("file", "",
		"List runs for this input file only")
	cmd.Flags().BoolP("json", "j", false,
		"Output runs as JSON")
	cmd.Flags().String("data-dir", "",
		"Directory holding the history database (default: XDG data dir)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = config.XDGDataDir()
	}

	out := cmd.OutOrStdout()

	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := history.Open(dataDir, opts)
	if err != nil {
		if errors.Is(err, history.ErrDatabaseNotFound) {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), file, limit)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	// Present the history through the tool's own table renderer.
	table, err := render.Render(runsDataset(runs), render.FormatSimple)
	if err != nil {
		return err
	}
	fmt.Fprint(out, table)
	return nil
}

// runsDataset shapes recorded runs as a Dataset for rendering.
func runsDataset(runs []history.Run) *model.Dataset {
	columns := []string{"ID", "File", "Date", "Rows", "Columns", "Format"}
	ds := model.NewDataset("history", columns)
	for i, run := range runs {
		ds.Records = append(ds.Records, model.Record{
			Line: i + 1,
			Cells: map[string]model.Cell{
				"ID":      {Text: strconv.FormatInt(run.ID, 10)},
				"File":    {Text: run.File},
				"Date":    {Text: run.Timestamp.Format("2006-01-02 15:04:05")},
				"Rows":    {Text: strconv.Itoa(run.Rows)},
				"Columns": {Text: strconv.Itoa(run.Columns)},
				"Format":  {Text: run.Format},
			},
		})
	}
	return ds
}
