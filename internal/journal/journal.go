package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Removal outcome actions recorded in the journal.
const (
	ActionRemove = "REMOVE"
	ActionDryRun = "DRY_RUN"
	ActionError  = "ERROR"
)

// Journal manages the SQLite database holding removal history
type Journal struct {
	db *sql.DB
}

// Entry is one removal outcome as produced by a sweep pass.
type Entry struct {
	Timestamp    time.Time
	Action       string
	Path         string
	ObjectType   string // file, directory
	Size         int64
	Directory    string // the routine's directory
	Pattern      string // the routine's pattern, config representation
	ErrorMessage string
}

// Record is a persisted Entry as read back from the journal
type Record struct {
	ID           int64
	Timestamp    time.Time
	Action       string
	Path         string
	FileName     string
	ObjectType   string
	Size         int64
	Directory    string
	Pattern      string
	ErrorMessage string
	CreatedAt    time.Time
}

// Open creates a journal connection and initializes the schema
func Open(dbPath string) (*Journal, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Test connection by executing a simple query instead of Ping()
	// so the database file is created if it doesn't exist
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize journal (check permissions on %s): %w", dbPath, err)
	}

	// WAL mode: multiple readers, one writer
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	j := &Journal{db: db}
	if err = j.initSchema(); err != nil {
		return nil, err
	}

	err = nil
	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS removals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		file_name TEXT,
		object_type TEXT NOT NULL,
		size INTEGER NOT NULL,
		directory TEXT NOT NULL,
		pattern TEXT NOT NULL,
		error_message TEXT,

		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_timestamp ON removals(timestamp);
	CREATE INDEX IF NOT EXISTS idx_action ON removals(action);
	CREATE INDEX IF NOT EXISTS idx_path ON removals(path);
	CREATE INDEX IF NOT EXISTS idx_directory ON removals(directory);
	CREATE INDEX IF NOT EXISTS idx_size ON removals(size);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := j.db.Exec(schema)
	return err
}

// RecordRemoval inserts one removal outcome into the journal.
// A nil journal is a no-op so callers never need to branch.
func (j *Journal) RecordRemoval(e Entry) error {
	if j == nil {
		return nil
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO removals (
		timestamp, action, path, file_name, object_type, size,
		directory, pattern, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.Exec(
		query,
		ts,
		e.Action,
		e.Path,
		filepath.Base(e.Path),
		e.ObjectType,
		e.Size,
		e.Directory,
		e.Pattern,
		e.ErrorMessage,
	)

	return err
}

// Close closes the journal connection
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Vacuum optimizes the database (run periodically)
func (j *Journal) Vacuum() error {
	_, err := j.db.Exec("VACUUM")
	return err
}
