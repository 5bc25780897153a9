package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/usertab/usertab/internal/model"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "usertab.db"

// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is false
// and no database exists yet. The history command treats this as "no runs
// recorded" rather than a failure.
var ErrDatabaseNotFound = errors.New("history database not found")

// RunDB stores one row per rendered input file.
// It manages its own connection pool configuration; SQLite supports a
// single writer, so the pool is capped at one connection.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB under the specified directory.
// When CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of creating an empty one; the history command uses
// this to distinguish "no runs yet" from a real failure.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one record per rendered input file
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		rows INTEGER NOT NULL,
		columns INTEGER NOT NULL,
		format TEXT NOT NULL,
		stats_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run represents one recorded invocation for one input file.
type Run struct {
	ID        int64
	File      string
	Timestamp time.Time
	Rows      int
	Columns   int
	Format    string

	// Stats is the Describe output recorded with the run, nil when
	// statistics were not requested.
	Stats *model.Statistics
}

// InsertRun records a run and returns its database ID.
func (rdb *RunDB) InsertRun(ctx context.Context, run *Run) (int64, error) {
	var statsJSON sql.NullString
	if run.Stats != nil {
		data, err := json.Marshal(run.Stats)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize stats: %w", err)
		}
		statsJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
	INSERT INTO runs (file, rows, columns, format, stats_json)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		run.File,
		run.Rows,
		run.Columns,
		run.Format,
		statsJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns recorded runs newest-first.
// When file is non-empty only runs for that file are returned; limit caps
// the result size (0 means no cap).
func (rdb *RunDB) ListRuns(ctx context.Context, file string, limit int) ([]Run, error) {
	query := `
	SELECT id, file, timestamp, rows, columns, format, stats_json
	FROM runs
	`
	args := []any{}
	if file != "" {
		query += " WHERE file = ?"
		args = append(args, file)
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var timestamp string
		var statsJSON sql.NullString

		if err := rows.Scan(&run.ID, &run.File, &timestamp, &run.Rows, &run.Columns, &run.Format, &statsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Timestamp = parseTimestamp(timestamp)

		if statsJSON.Valid && statsJSON.String != "" {
			var stats model.Statistics
			if err := json.Unmarshal([]byte(statsJSON.String), &stats); err != nil {
				return nil, fmt.Errorf("failed to parse stats: %w", err)
			}
			run.Stats = &stats
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
