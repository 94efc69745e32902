package localstore

import (
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createSlotsTable = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

var _ KV = (*SQLiteKV)(nil)

// SQLiteKV stores slots in a single-table SQLite database. It trades the
// file store's simplicity for transactional writes when several tools share
// one state file.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLiteKV opens the database at path and creates the slots table when
// it does not exist yet.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("[OpenSQLiteKV] path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "[OpenSQLiteKV] sql.Open")
	}
	if _, err := db.Exec(createSlotsTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[OpenSQLiteKV] create table")
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return errors.Wrap(err, "[SQLiteKV.Set] upsert")
}

func (s *SQLiteKV) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key)
	return errors.Wrap(err, "[SQLiteKV.Delete] delete")
}

// Close releases the underlying database handle.
func (s *SQLiteKV) Close() error {
	return errors.Wrap(s.db.Close(), "[SQLiteKV.Close] db.Close")
}
