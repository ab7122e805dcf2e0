package favorites

import (
	"database/sql"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage is the durable key-value area used outside of tests, one
// sqlite database in the data directory.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dataDir string) (*SQLiteStorage, error) {
	dbPath := filepath.Join(dataDir, "tarih.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &SQLiteStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLiteStorage) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
