package credstore

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/hnrobert/credcheck/internal/hostfs"
	"github.com/hnrobert/credcheck/internal/logger"
)

const selectCredentials = `SELECT username, password_hash FROM credentials ORDER BY rowid`

// SQLiteFile is a store kept in the credentials table of a SQLite database.
// The database is always opened read-only.
type SQLiteFile struct {
	path string
}

func NewSQLiteFile(path string) *SQLiteFile {
	return &SQLiteFile{path: path}
}

func (f *SQLiteFile) dsn() string {
	// ?, # and % in the path would otherwise be read as URI syntax.
	escaped := (&url.URL{Path: f.path}).EscapedPath()
	return fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", escaped)
}

func (f *SQLiteFile) Scan(fn func(Record) bool) error {
	// The driver would happily create a missing file; check first.
	if _, err := hostfs.Stat(f.path); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", f.dsn())
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrStoreUnavailable, f.path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.Query(selectCredentials)
	if err != nil {
		return fmt.Errorf("%w: query %s: %w", ErrStoreUnavailable, f.path, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var username, hash sql.NullString
		if err := rows.Scan(&username, &hash); err != nil {
			logger.Info("%s: skipping malformed row %d: %v", f.path, row, err)
			continue
		}
		if !username.Valid || !hash.Valid {
			logger.Info("%s: skipping row %d with NULL column", f.path, row)
			continue
		}
		if !fn(Record{Username: username.String, Hash: hash.String}) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, f.path, err)
	}
	return nil
}
