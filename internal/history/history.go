// Package history keeps a log of displayed reading positions in SQLite.
// Only positions are stored, never chapter text.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	book_url     TEXT    NOT NULL,
	chapter      INTEGER NOT NULL,
	chapter_name TEXT    NOT NULL DEFAULT '',
	page         INTEGER NOT NULL,
	read_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_positions_book ON positions(book_url, read_at);
`

type Entry struct {
	BookURL     string
	Chapter     int
	ChapterName string
	Page        int
	ReadAt      time.Time
}

type DB struct {
	*sql.DB
	path string
}

func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the history database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.InitSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}

func (db *DB) Record(ctx context.Context, e Entry) error {
	if e.ReadAt.IsZero() {
		e.ReadAt = time.Now()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO positions (book_url, chapter, chapter_name, page, read_at) VALUES (?, ?, ?, ?, ?)`,
		e.BookURL, e.Chapter, e.ChapterName, e.Page, e.ReadAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record position: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first. An empty bookURL
// matches every book.
func (db *DB) Recent(ctx context.Context, bookURL string, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 20
	}

	query := `SELECT book_url, chapter, chapter_name, page, read_at FROM positions`
	args := []any{}
	if bookURL != "" {
		query += ` WHERE book_url = ?`
		args = append(args, bookURL)
	}
	query += ` ORDER BY read_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.BookURL, &e.Chapter, &e.ChapterName, &e.Page, &e.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
