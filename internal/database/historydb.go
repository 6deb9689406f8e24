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

	"github.com/redspecter/scriptmap/internal/model"
)

// dbFileName is the SQLite database file name under the data directory.
const dbFileName = "scriptmap.db"

// timestampFormats lists the formats SQLite may return timestamps in,
// depending on version and configuration.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// HistoryDB provides SQLite-based storage for scan history.
// Recorded scans enable comparing a site's script inventory over time:
// new third-party vendors, removed scripts, and category drift.
//
// Design decision: Each scan is stored as metadata columns plus the
// full report serialized to JSON. The metadata supports listing and
// ranking without deserialization; the JSON preserves everything needed
// for a detailed diff.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
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

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

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

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
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
	// lock contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scans store one row per recorded run, with the full report as JSON
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		primary_domain TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_scripts INTEGER NOT NULL,
		first_party INTEGER NOT NULL,
		third_party INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_domain ON scans(primary_domain);
	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// ScanRecord is the stored metadata of a recorded scan.
type ScanRecord struct {
	ID            int64
	PrimaryDomain string
	Timestamp     time.Time
	TotalScripts  int
	FirstParty    int
	ThirdParty    int
}

// SaveReport records a scan in the history database.
// Returns the new scan's row ID.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.ScriptMapReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO scans (primary_domain, timestamp, total_scripts, first_party, third_party, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.PrimaryDomain,
		report.DateScanned.Format(time.RFC3339Nano),
		report.TotalScripts(),
		report.FirstPartyCount(),
		report.ThirdPartyCount(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return result.LastInsertId()
}

// ListScans returns the scan history for a primary domain, newest first.
func (hdb *HistoryDB) ListScans(ctx context.Context, primaryDomain string) ([]ScanRecord, error) {
	query := `
	SELECT id, primary_domain, timestamp, total_scripts, first_party, third_party
	FROM scans
	WHERE primary_domain = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, primaryDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		var timestamp string
		if err := rows.Scan(&rec.ID, &rec.PrimaryDomain, &timestamp,
			&rec.TotalScripts, &rec.FirstParty, &rec.ThirdParty); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListDomains returns all primary domains with recorded scans, ordered
// by name.
func (hdb *HistoryDB) ListDomains(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT primary_domain FROM scans
	ORDER BY primary_domain
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// GetReport retrieves the full report of a recorded scan by ID.
// Returns nil without error when the scan does not exist.
func (hdb *HistoryDB) GetReport(ctx context.Context, id int64) (*model.ScriptMapReport, error) {
	query := `SELECT report_json FROM scans WHERE id = ?`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	var report model.ScriptMapReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// LatestReports retrieves the newest reports for a primary domain,
// newest first, up to limit.
func (hdb *HistoryDB) LatestReports(ctx context.Context, primaryDomain string, limit int) ([]*model.ScriptMapReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE primary_domain = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, primaryDomain, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var reports []*model.ScriptMapReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var report model.ScriptMapReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// parseTimestamp parses a SQLite timestamp string.
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
