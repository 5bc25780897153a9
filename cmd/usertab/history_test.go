package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/usertab/usertab/internal/history"
)

// seedRuns creates a history database in a temp dir with the given runs and
// returns the directory.
func seedRuns(t *testing.T, runs ...history.Run) string {
	t.Helper()

	dir := t.TempDir()
	db, err := history.Open(dir, history.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for i := range runs {
		if _, err := db.InsertRun(context.Background(), &runs[i]); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
	}
	return dir
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, "history", "--data-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded yet.") {
			t.Errorf("expected empty-history notice:\n%s", stdout)
		}
	})

	t.Run("lists runs newest first", func(t *testing.T) {
		t.Parallel()

		dir := seedRuns(t,
			history.Run{File: "a.csv", Rows: 1, Columns: 2, Format: "grid"},
			history.Run{File: "b.csv", Rows: 3, Columns: 2, Format: "github"},
		)

		stdout, _, err := executeCommand(t, "history", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"ID", "File", "a.csv", "b.csv", "grid", "github"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("output missing %q:\n%s", want, stdout)
			}
		}
		if strings.Index(stdout, "b.csv") > strings.Index(stdout, "a.csv") {
			t.Errorf("expected newest run first:\n%s", stdout)
		}
	})

	t.Run("file filter", func(t *testing.T) {
		t.Parallel()

		dir := seedRuns(t,
			history.Run{File: "a.csv", Rows: 1, Columns: 2, Format: "grid"},
			history.Run{File: "b.csv", Rows: 3, Columns: 2, Format: "grid"},
		)

		stdout, _, err := executeCommand(t, "history", "--data-dir", dir, "--file", "a.csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "a.csv") {
			t.Errorf("expected filtered file listed:\n%s", stdout)
		}
		if strings.Contains(stdout, "b.csv") {
			t.Errorf("expected other files excluded:\n%s", stdout)
		}
	})

	t.Run("limit caps the listing", func(t *testing.T) {
		t.Parallel()

		dir := seedRuns(t,
			history.Run{File: "a.csv", Rows: 1, Columns: 2, Format: "grid"},
			history.Run{File: "b.csv", Rows: 1, Columns: 2, Format: "grid"},
			history.Run{File: "c.csv", Rows: 1, Columns: 2, Format: "grid"},
		)

		stdout, _, err := executeCommand(t, "history", "--data-dir", dir, "--limit", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, "a.csv") || strings.Contains(stdout, "b.csv") {
			t.Errorf("expected only the newest run:\n%s", stdout)
		}
		if !strings.Contains(stdout, "c.csv") {
			t.Errorf("expected newest run listed:\n%s", stdout)
		}
	})

	t.Run("json output parses", func(t *testing.T) {
		t.Parallel()

		dir := seedRuns(t, history.Run{File: "a.csv", Rows: 1, Columns: 2, Format: "grid"})

		stdout, _, err := executeCommand(t, "history", "--data-dir", dir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var runs []history.Run
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
		}
		if len(runs) != 1 || runs[0].File != "a.csv" {
			t.Errorf("unexpected runs: %+v", runs)
		}
	})
}
