package credstore

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/hnrobert/credcheck/internal/hostfs"
	"github.com/hnrobert/credcheck/internal/logger"
)

// ShadowFile is a colon-separated store in shadow(5) layout:
// name:hash[:lastchg:min:max:warn:inactive:expire:reserved].
// Only the first two fields are used. Blank lines and # comments are ignored.
type ShadowFile struct {
	path string
}

func NewShadowFile(path string) *ShadowFile {
	return &ShadowFile{path: path}
}

func (f *ShadowFile) Scan(fn func(Record) bool) error {
	fh, err := hostfs.Open(f.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer fh.Close()

	s := bufio.NewScanner(skipBOM(fh))
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, 1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		// Keep trailing empty fields.
		parts := strings.Split(line, ":")
		if len(parts) < 2 {
			logger.Info("%s: skipping row at line %d: want at least 2 fields", f.path, n)
			continue
		}
		if !fn(Record{Username: parts[0], Hash: parts[1]}) {
			return nil
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, f.path, err)
	}
	return nil
}
