package hostfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrIsDirectory = errors.New("path is a directory")
)

var globalMu sync.Mutex
var fileMu = map[string]*sync.Mutex{}

func muFor(path string) *sync.Mutex {
	globalMu.Lock()
	defer globalMu.Unlock()
	if m := fileMu[path]; m != nil {
		return m
	}
	m := &sync.Mutex{}
	fileMu[path] = m
	return m
}

// Clean rejects empty paths and returns the lexically cleaned form.
func Clean(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrInvalidPath
	}
	return filepath.Clean(p), nil
}

// Stat reports the file info of an existing, non-directory path.
func Stat(p string) (os.FileInfo, error) {
	clean, err := Clean(p)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(clean)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s: %w", clean, ErrIsDirectory)
	}
	return st, nil
}

// Open opens an existing, non-directory file for reading.
func Open(p string) (*os.File, error) {
	clean, err := Clean(p)
	if err != nil {
		return nil, err
	}
	m := muFor(clean)
	m.Lock()
	defer m.Unlock()

	f, err := os.Open(clean)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", clean, ErrIsDirectory)
	}
	return f, nil
}

func ReadFile(p string) ([]byte, error) {
	f, err := Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
