package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/claromes/waybacktweets/internal/model"
)

// dbFileName is the SQLite database file name inside the store directory.
const dbFileName = "waybacktweets.db"

// ReportDB provides SQLite-based storage for imported tweet records and
// generated report runs. It manages connection pooling and provides
// methods for CRUD operations.
//
// Design decision: We use a single database file for all usernames rather
// than one file per username. This keeps the history command a single
// query and simplifies backup/restore.
type ReportDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ReportDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ReportDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ReportDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string.
	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY churn for this workload
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ReportDB{
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
func (rdb *ReportDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ReportDB) createTables() error {
	schema := `
	-- Tweet records imported per username, deduplicated on snapshot URL
	CREATE TABLE IF NOT EXISTS tweet_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		archived_tweet_url TEXT NOT NULL,
		archived_timestamp TEXT,
		archived_digest TEXT,
		record_json TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(username, archived_tweet_url)
	);

	CREATE INDEX IF NOT EXISTS idx_records_username ON tweet_records(username);
	CREATE INDEX IF NOT EXISTS idx_records_timestamp ON tweet_records(archived_timestamp);

	-- One row per generated report
	CREATE TABLE IF NOT EXISTS report_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		format TEXT NOT NULL,
		output_path TEXT,
		record_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_username ON report_runs(username);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON report_runs(created_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRecords upserts the given records for a username.
// Records are keyed on the archived tweet URL, so re-importing the same
// input updates rows in place instead of duplicating them.
// Returns the number of records written.
func (rdb *ReportDB) SaveRecords(ctx context.Context, username string, records []model.TweetRecord) (int, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	query := `
	INSERT INTO tweet_records (username, archived_tweet_url, archived_timestamp, archived_digest, record_json)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(username, archived_tweet_url) DO UPDATE SET
		archived_timestamp = excluded.archived_timestamp,
		archived_digest = excluded.archived_digest,
		record_json = excluded.record_json,
		imported_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var saved int
	for i := range records {
		rec := &records[i]

		recordJSON, err := json.Marshal(rec)
		if err != nil {
			return saved, fmt.Errorf("failed to serialize record: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			username,
			rec.ArchivedTweetURL,
			rec.ArchivedTimestamp,
			rec.ArchivedDigest,
			string(recordJSON),
		); err != nil {
			return saved, fmt.Errorf("failed to insert record: %w", err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit records: %w", err)
	}

	return saved, nil
}

// GetRecords retrieves all stored records for a username in import order.
func (rdb *ReportDB) GetRecords(ctx context.Context, username string) ([]model.TweetRecord, error) {
	query := `
	SELECT record_json FROM tweet_records
	WHERE username = ?
	ORDER BY id
	`

	rows, err := rdb.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.TweetRecord
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		var rec model.TweetRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountRecords returns the number of stored records for a username.
func (rdb *ReportDB) CountRecords(ctx context.Context, username string) (int, error) {
	var count int
	err := rdb.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tweet_records WHERE username = ?", username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// ReportRun describes one generated report.
type ReportRun struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Username is the account the report was generated for.
	Username string

	// Format is the report format ("html", "markdown", "json", "csv").
	Format string

	// OutputPath is where the report was written. Empty means stdout.
	OutputPath string

	// RecordCount is the number of tweet records in the report.
	RecordCount int

	// CreatedAt is when the report was generated.
	CreatedAt time.Time
}

// SaveReportRun records a generated report.
func (rdb *ReportDB) SaveReportRun(ctx context.Context, run *ReportRun) error {
	query := `
	INSERT INTO report_runs (username, format, output_path, record_count)
	VALUES (?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		run.Username,
		run.Format,
		run.OutputPath,
		run.RecordCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// ListReportRuns retrieves report runs for a username, newest first.
// An empty username returns runs for every username.
func (rdb *ReportDB) ListReportRuns(ctx context.Context, username string) ([]ReportRun, error) {
	query := `
	SELECT id, username, format, output_path, record_count, created_at
	FROM report_runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if username != "" {
		query += " AND username = ?"
		args = append(args, username)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		var run ReportRun
		var outputPath sql.NullString
		var createdAt string

		if err := rows.Scan(
			&run.ID,
			&run.Username,
			&run.Format,
			&outputPath,
			&run.RecordCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}

		run.OutputPath = outputPath.String
		run.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ListUsernames returns every username with stored records or report runs.
func (rdb *ReportDB) ListUsernames(ctx context.Context) ([]string, error) {
	query := `
	SELECT username FROM tweet_records
	UNION
	SELECT username FROM report_runs
	ORDER BY username
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames = append(usernames, username)
	}

	return usernames, rows.Err()
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
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
