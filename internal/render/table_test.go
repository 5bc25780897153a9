package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/usertab/usertab/internal/model"
)

// usersDataset builds the two-row dataset used by the exact-output tests.
func usersDataset() *model.Dataset {
	ds := model.NewDataset("users.csv", []string{"Identifier", "Name"})
	ds.NumericColumn = "Identifier"
	ds.Records = []model.Record{
		{Line: 2, Cells: map[string]model.Cell{
			"Identifier": {Text: "1", Number: 1, Numeric: true},
			"Name":       {Text: "Alice"},
		}},
		{Line: 3, Cells: map[string]model.Cell{
			"Identifier": {Text: "2", Number: 2, Numeric: true},
			"Name":       {Text: "Bob"},
		}},
	}
	return ds
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("grid", func(t *testing.T) {
		t.Parallel()

		want := "+------------+-------+\n" +
			"| Identifier | Name  |\n" +
			"+============+=======+\n" +
			"|          1 | Alice |\n" +
			"+------------+-------+\n" +
			"|          2 | Bob   |\n" +
			"+------------+-------+\n"

		got, err := Render(usersDataset(), FormatGrid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("unexpected grid output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("fancy_grid", func(t *testing.T) {
		t.Parallel()

		want := "╒════════════╤═══════╕\n" +
			"│ Identifier │ Name  │\n" +
			"╞════════════╪═══════╡\n" +
			"│          1 │ Alice │\n" +
			"├────────────┼───────┤\n" +
			"│          2 │ Bob   │\n" +
			"╘════════════╧═══════╛\n"

		got, err := Render(usersDataset(), FormatFancyGrid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("unexpected fancy_grid output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("github", func(t *testing.T) {
		t.Parallel()

		want := "| Identifier | Name  |\n" +
			"|------------|-------|\n" +
			"|          1 | Alice |\n" +
			"|          2 | Bob   |\n"

		got, err := Render(usersDataset(), FormatGitHub)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("unexpected github output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("simple", func(t *testing.T) {
		t.Parallel()

		want := "Identifier  Name\n" +
			"----------  -----\n" +
			"         1  Alice\n" +
			"         2  Bob\n"

		got, err := Render(usersDataset(), FormatSimple)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("unexpected simple output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		want := "Identifier  Name\n" +
			"         1  Alice\n" +
			"         2  Bob\n"

		got, err := Render(usersDataset(), FormatPlain)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("unexpected plain output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("markdown contains header and all rows", func(t *testing.T) {
		t.Parallel()

		got, err := Render(usersDataset(), FormatMarkdown)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Identifier", "Name", "Alice", "Bob"} {
			if !strings.Contains(got, want) {
				t.Errorf("markdown output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("unknown format returns ErrUnsupportedFormat and no output", func(t *testing.T) {
		t.Parallel()

		got, err := Render(usersDataset(), DisplayFormat("latex"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if got != "" {
			t.Errorf("expected no output, got %q", got)
		}
	})

	t.Run("rows render in dataset order", func(t *testing.T) {
		t.Parallel()

		got, err := Render(usersDataset(), FormatPlain)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Index(got, "Alice") > strings.Index(got, "Bob") {
			t.Errorf("expected Alice before Bob:\n%s", got)
		}
	})

	t.Run("unparsed numeric cell is flagged with a question mark", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("users.csv", []string{"Identifier", "Name"})
		ds.NumericColumn = "Identifier"
		ds.Records = []model.Record{
			{Line: 2, Cells: map[string]model.Cell{
				"Identifier": {Text: "abc"},
				"Name":       {Text: "Alice"},
			}},
		}

		got, err := Render(ds, FormatPlain)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "abc?") {
			t.Errorf("expected flagged cell 'abc?':\n%s", got)
		}
	})

	t.Run("empty numeric cell is not flagged", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("users.csv", []string{"Identifier", "Name"})
		ds.NumericColumn = "Identifier"
		ds.Records = []model.Record{
			{Line: 2, Cells: map[string]model.Cell{
				"Identifier": {Text: ""},
				"Name":       {Text: "Alice"},
			}},
		}

		got, err := Render(ds, FormatPlain)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, "?") {
			t.Errorf("expected no flag for empty cell:\n%s", got)
		}
	})

	t.Run("header-only dataset renders just the frame", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("users.csv", []string{"Identifier", "Name"})
		ds.NumericColumn = "Identifier"

		got, err := Render(ds, FormatGitHub)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "| Identifier | Name |\n" +
			"|------------|------|\n"
		if got != want {
			t.Errorf("unexpected output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("github output round-trips through its own delimiters", func(t *testing.T) {
		t.Parallel()

		got, err := Render(usersDataset(), FormatGitHub)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d", len(lines))
		}
		parse := func(line string) []string {
			trimmed := strings.Trim(line, "|")
			parts := strings.Split(trimmed, "|")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
		header := parse(lines[0])
		if header[0] != "Identifier" || header[1] != "Name" {
			t.Errorf("unexpected header: %v", header)
		}
		row := parse(lines[2])
		if row[0] != "1" || row[1] != "Alice" {
			t.Errorf("unexpected first row: %v", row)
		}
	})
}
