package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/usertab/usertab/internal/config"
	"github.com/usertab/usertab/internal/loader"
	"github.com/usertab/usertab/internal/render"
)

// writeCSV writes a delimited test file and returns its path.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test input: %v", err)
	}
	return path
}

func TestShowCmd(t *testing.T) {
	t.Parallel()

	t.Run("renders the default grid table", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n2;Bob\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{"| Identifier | Name  |", "Alice", "Bob", "Total rows: 2"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("output missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("format flag selects the renderer", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", "--format", "github", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "|------------|") {
			t.Errorf("expected github-style header rule:\n%s", stdout)
		}
	})

	t.Run("stats flag appends the statistics section", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n2;Bob\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", "--stats", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "STATISTICS") {
			t.Fatalf("expected statistics section:\n%s", stdout)
		}
		if !strings.Contains(stdout, "Identifier: count=2 min=1 max=2 mean=1.5 std=0.5") {
			t.Errorf("unexpected statistics line:\n%s", stdout)
		}
	})

	t.Run("json report parses", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n2;Bob\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", "--json", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Columns []string `json:"columns"`
			Rows    [][]any  `json:"rows"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
		}
		if len(got.Rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(got.Rows))
		}
	})

	t.Run("markdown report", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", "--markdown", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Tabular Data Report") {
			t.Errorf("expected markdown report:\n%s", stdout)
		}
	})

	t.Run("json and markdown conflict", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		_, _, err := executeCommand(t, "show", "--no-history", "--json", "--markdown", path)
		if err == nil {
			t.Error("expected error for conflicting report formats")
		}
	})

	t.Run("output flag writes the report to a file", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		reportPath := filepath.Join(t.TempDir(), "out", "report.txt")

		stdout, _, err := executeCommand(t, "show", "--no-history", "-o", reportPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, "Alice") {
			t.Errorf("expected table in file, not stdout:\n%s", stdout)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if !strings.Contains(string(data), "Alice") {
			t.Errorf("report file missing table:\n%s", data)
		}
	})

	t.Run("unsupported format fails before output", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		stdout, _, err := executeCommand(t, "show", "--no-history", "--format", "latex", path)
		if !errors.Is(err, render.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if stdout != "" {
			t.Errorf("expected no output, got %q", stdout)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, "show", "--no-history", filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, loader.ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("multiple inputs are reported in argument order", func(t *testing.T) {
		t.Parallel()

		first := writeCSV(t, "a.csv", "Identifier;Name\n1;Alice\n")
		second := writeCSV(t, "b.csv", "Identifier;Name\n2;Bob\n")

		stdout, _, err := executeCommand(t, "show", "--no-history", first, second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Index(stdout, "Alice") > strings.Index(stdout, "Bob") {
			t.Errorf("expected reports in argument order:\n%s", stdout)
		}
	})

	t.Run("one failed file of several", func(t *testing.T) {
		t.Parallel()

		good := writeCSV(t, "good.csv", "Identifier;Name\n1;Alice\n")
		missing := filepath.Join(t.TempDir(), "nope.csv")

		stdout, stderr, err := executeCommand(t, "show", "--no-history", good, missing)
		if err == nil {
			t.Fatal("expected error when one file fails")
		}
		if !strings.Contains(err.Error(), "1 of 2 files failed") {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Alice") {
			t.Errorf("expected successful file still reported:\n%s", stdout)
		}
		if !strings.Contains(stderr, "Error for "+missing) {
			t.Errorf("expected per-file failure on the command's stderr:\n%s", stderr)
		}
	})

	t.Run("profile file overrides defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "export.csv")
		if err := os.WriteFile(path, []byte("Identifier,Name\n1,Alice\n"), 0600); err != nil {
			t.Fatalf("failed to write test input: %v", err)
		}
		profilePath := filepath.Join(dir, ".usertab")
		profile := "profiles:\n  export.csv:\n    delimiter: \",\"\n    format: github\n"
		if err := os.WriteFile(profilePath, []byte(profile), 0600); err != nil {
			t.Fatalf("failed to write profile file: %v", err)
		}

		stdout, _, err := executeCommand(t, "show", "--no-history", "-c", profilePath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "| Identifier | Name  |") {
			t.Errorf("expected comma-split github table:\n%s", stdout)
		}
		if !strings.Contains(stdout, "|------------|") {
			t.Errorf("expected github format from profile:\n%s", stdout)
		}
	})

	t.Run("explicit flag beats the profile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "export.csv")
		if err := os.WriteFile(path, []byte("Identifier;Name\n1;Alice\n"), 0600); err != nil {
			t.Fatalf("failed to write test input: %v", err)
		}
		profilePath := filepath.Join(dir, ".usertab")
		profile := "profiles:\n  export.csv:\n    format: github\n"
		if err := os.WriteFile(profilePath, []byte(profile), 0600); err != nil {
			t.Fatalf("failed to write profile file: %v", err)
		}

		stdout, _, err := executeCommand(t, "show", "--no-history", "-c", profilePath, "--format", "plain", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, "|") {
			t.Errorf("expected plain format to win over profile:\n%s", stdout)
		}
	})

	t.Run("missing explicit profile file is an error", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "users.csv", "Identifier;Name\n1;Alice\n")
		_, _, err := executeCommand(t, "show", "--no-history", "-c", filepath.Join(t.TempDir(), "nope"), path)
		if err == nil {
			t.Error("expected error for missing explicit profile file")
		}
	})
}

func TestEffectiveOptionsMerge(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Profiles = &config.File{
		Profiles: map[string]config.Profile{
			"export.csv": {Delimiter: "|", NumericColumn: "ID", Format: "github"},
		},
	}

	t.Run("profile beats defaults", func(t *testing.T) {
		t.Parallel()

		opts, format := effectiveOptions(cfg, map[string]bool{}, "export.csv")
		if opts.Delimiter != '|' {
			t.Errorf("expected profile delimiter, got %q", opts.Delimiter)
		}
		if opts.NumericColumn != "ID" {
			t.Errorf("expected profile numeric column, got %q", opts.NumericColumn)
		}
		if format != "github" {
			t.Errorf("expected profile format, got %q", format)
		}
	})

	t.Run("changed flag beats profile", func(t *testing.T) {
		t.Parallel()

		changed := map[string]bool{"delimiter": true, "format": true}
		opts, format := effectiveOptions(cfg, changed, "export.csv")
		if opts.Delimiter != ';' {
			t.Errorf("expected flag delimiter, got %q", opts.Delimiter)
		}
		if format != "grid" {
			t.Errorf("expected flag format, got %q", format)
		}
	})

	t.Run("unknown file gets the config values", func(t *testing.T) {
		t.Parallel()

		opts, format := effectiveOptions(cfg, map[string]bool{}, "other.csv")
		if opts.Delimiter != ';' || opts.NumericColumn != "Identifier" || format != "grid" {
			t.Errorf("unexpected merge result: %+v format %q", opts, format)
		}
	})
}
