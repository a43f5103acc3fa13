package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/logging"
	_ "modernc.org/sqlite"
)

// ErrIndexNotFound is returned by OpenExistingDB when no index has been built.
var ErrIndexNotFound = errors.New("search index not found")

// Metadata keys stored in index_meta.
const (
	MetaFingerprint = "fingerprint"
	MetaSourcePath  = "source_path"
	MetaBuiltAt     = "built_at"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenExistingDB opens an index that must already exist on disk.
func OpenExistingDB(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("checking index: %w", err)
	}
	return OpenDB(path)
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- One row per verse; id is the verse's position in the document
		CREATE TABLE IF NOT EXISTS verses (
			id INTEGER PRIMARY KEY,
			book_idx INTEGER NOT NULL,
			book TEXT NOT NULL,
			abbrev TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			text TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_verses_abbrev ON verses(abbrev, chapter, verse);

		-- Full-text search; rowid mirrors verses.id
		CREATE VIRTUAL TABLE IF NOT EXISTS verses_fts USING fts5(text);

		CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromDocument clears the index and reloads every verse of doc.
// fingerprint and sourcePath are recorded for staleness checks.
func (d *DB) RebuildFromDocument(doc bible.Document, fingerprint, sourcePath string) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"verses", "verses_fts", "index_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	versesStmt, err := tx.Prepare(`
		INSERT INTO verses (id, book_idx, book, abbrev, chapter, verse, text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing verses insert: %w", err)
	}
	defer versesStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO verses_fts (rowid, text) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	id := 0
	for bi, book := range doc {
		for ci, ch := range book.Chapters {
			for vi, text := range ch {
				id++
				if _, err := versesStmt.Exec(id, bi, book.Name, book.Abbrev, ci+1, vi+1, text); err != nil {
					return 0, fmt.Errorf("inserting %s %d:%d: %w", book.Name, ci+1, vi+1, err)
				}
				if _, err := ftsStmt.Exec(id, text); err != nil {
					return 0, fmt.Errorf("inserting fts for %s %d:%d: %w", book.Name, ci+1, vi+1, err)
				}
			}
		}
	}

	meta := map[string]string{
		MetaFingerprint: fingerprint,
		MetaSourcePath:  sourcePath,
		MetaBuiltAt:     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO index_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return 0, fmt.Errorf("writing index metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}

	logging.L().Debug("rebuilt search index", "verses", id, "fingerprint", fingerprint)
	return id, nil
}

// Search performs a full-text search and returns matching verses in document order.
func (d *DB) Search(query string, limit int) ([]bible.Verse, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = bible.DefaultSearchLimit
	}

	rows, err := d.db.Query(`
		SELECT book, chapter, verse, text
		FROM verses
		WHERE id IN (SELECT rowid FROM verses_fts WHERE verses_fts MATCH ?)
		ORDER BY id
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	verses := []bible.Verse{}
	for rows.Next() {
		var v bible.Verse
		if err := rows.Scan(&v.Book, &v.Chapter, &v.Verse, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

// GetVerse retrieves a single verse by book abbreviation, chapter and verse.
// It returns nil when the verse is not indexed.
func (d *DB) GetVerse(abbrev string, chapter, verse int) (*bible.Verse, error) {
	var v bible.Verse
	err := d.db.QueryRow(`
		SELECT book, chapter, verse, text
		FROM verses
		WHERE abbrev = ? AND chapter = ? AND verse = ?`, abbrev, chapter, verse).
		Scan(&v.Book, &v.Chapter, &v.Verse, &v.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Count returns the total number of indexed verses.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&count)
	return count, err
}

// Meta returns an index_meta value, or "" if the key is absent.
func (d *DB) Meta(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM index_meta WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// IsStale reports whether the index was built from content other than fingerprint.
func (d *DB) IsStale(fingerprint string) (bool, error) {
	stored, err := d.Meta(MetaFingerprint)
	if err != nil {
		return false, fmt.Errorf("reading index fingerprint: %w", err)
	}
	return stored != fingerprint, nil
}

// prepareFTSQuery quotes every whitespace-separated token as an FTS5
// string, so operators and punctuation in user input are matched as text.
// Tokens are ANDed; tokens without a letter or digit are dropped.
func prepareFTSQuery(query string) string {
	var terms []string
	for _, f := range strings.Fields(query) {
		if strings.IndexFunc(f, isWordRune) < 0 {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
