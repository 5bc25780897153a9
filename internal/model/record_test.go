package model

import (
	"strings"
	"testing"
)

// testDataset builds a two-column Dataset with the given records.
func testDataset(records ...Record) *Dataset {
	ds := NewDataset("users.csv", []string{"Identifier", "Name"})
	ds.NumericColumn = "Identifier"
	ds.Records = append(ds.Records, records...)
	return ds
}

func TestDatasetValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty dataset is valid", func(t *testing.T) {
		t.Parallel()
		ds := testDataset()
		if err := ds.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("matching records are valid", func(t *testing.T) {
		t.Parallel()
		ds := testDataset(Record{
			Line: 2,
			Cells: map[string]Cell{
				"Identifier": {Text: "1", Number: 1, Numeric: true},
				"Name":       {Text: "Alice"},
			},
		})
		if err := ds.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing column is invalid", func(t *testing.T) {
		t.Parallel()
		ds := testDataset(Record{
			Line: 2,
			Cells: map[string]Cell{
				"Identifier": {Text: "1"},
				"Surname":    {Text: "Smith"},
			},
		})
		err := ds.Validate()
		if err == nil {
			t.Fatal("expected error for record with wrong column set")
		}
		if !strings.Contains(err.Error(), "Name") {
			t.Errorf("expected error to name the missing column, got %v", err)
		}
	})

	t.Run("cell count mismatch is invalid", func(t *testing.T) {
		t.Parallel()
		ds := testDataset(Record{
			Line: 2,
			Cells: map[string]Cell{
				"Identifier": {Text: "1"},
			},
		})
		if err := ds.Validate(); err == nil {
			t.Fatal("expected error for record with too few cells")
		}
	})
}

func TestDatasetAccessors(t *testing.T) {
	t.Parallel()

	ds := testDataset(Record{
		Line: 2,
		Cells: map[string]Cell{
			"Identifier": {Text: "1", Number: 1, Numeric: true},
			"Name":       {Text: "Alice"},
		},
	})

	t.Run("rows and empty", func(t *testing.T) {
		t.Parallel()
		if ds.Rows() != 1 {
			t.Errorf("expected 1 row, got %d", ds.Rows())
		}
		if ds.Empty() {
			t.Error("expected dataset to be non-empty")
		}
		if !testDataset().Empty() {
			t.Error("expected header-only dataset to be empty")
		}
	})

	t.Run("has column", func(t *testing.T) {
		t.Parallel()
		if !ds.HasColumn("Identifier") {
			t.Error("expected HasColumn(Identifier) to be true")
		}
		if ds.HasColumn("Missing") {
			t.Error("expected HasColumn(Missing) to be false")
		}
	})

	t.Run("record get", func(t *testing.T) {
		t.Parallel()
		cell := ds.Records[0].Get("Name")
		if cell.Text != "Alice" {
			t.Errorf("expected cell text 'Alice', got %q", cell.Text)
		}
		if zero := ds.Records[0].Get("Missing"); zero.Text != "" || zero.Numeric {
			t.Errorf("expected zero cell for missing column, got %+v", zero)
		}
	})
}

func TestStatisticsByColumn(t *testing.T) {
	t.Parallel()

	s := &Statistics{
		Source: "users.csv",
		Rows:   2,
		Columns: []ColumnStats{
			{Column: "Identifier", Numeric: true, Count: 2, Min: 1, Max: 2, Mean: 1.5},
			{Column: "Name", Distinct: 2},
		},
	}

	t.Run("existing column", func(t *testing.T) {
		t.Parallel()
		cs, ok := s.ByColumn("Identifier")
		if !ok {
			t.Fatal("expected Identifier stats to exist")
		}
		if cs.Mean != 1.5 {
			t.Errorf("expected mean 1.5, got %v", cs.Mean)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()
		if _, ok := s.ByColumn("Missing"); ok {
			t.Error("expected lookup of missing column to fail")
		}
	})
}
