package credstore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hnrobert/credcheck/internal/hostfs"
)

// Open validates path and returns the Source for its format. The file is opened
// once here so a missing or unreadable store fails before any prompt; every later
// Scan opens it again.
func Open(path string) (Source, error) {
	clean, err := hostfs.Clean(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	fh, err := hostfs.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	_ = fh.Close()

	switch {
	case isShadow(clean):
		return NewShadowFile(clean), nil
	case isSQLite(clean):
		src := NewSQLiteFile(clean)
		// Surface a missing table now rather than as a denied login.
		if err := src.Scan(func(Record) bool { return false }); err != nil {
			return nil, err
		}
		return src, nil
	}
	return NewCSVFile(clean), nil
}

func isShadow(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return base == "shadow" || filepath.Ext(base) == ".shadow"
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
