package credstore

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hnrobert/credcheck/internal/hostfs"
	"github.com/hnrobert/credcheck/internal/logger"
)

// CSVFile is a comma-separated store: no header, one record per line.
type CSVFile struct {
	path string
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark, as written by some editors.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func (f *CSVFile) Scan(fn func(Record) bool) error {
	fh, err := hostfs.Open(f.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer fh.Close()

	r := csv.NewReader(skipBOM(fh))
	// Row width is checked per row below.
	r.FieldsPerRecord = -1
	// A quote inside an unquoted field is an ordinary character.
	r.LazyQuotes = true
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				logger.Info("%s: skipping malformed row at line %d: %v", f.path, pe.Line, pe.Err)
				continue
			}
			return fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, f.path, err)
		}
		if len(fields) < 2 {
			line, _ := r.FieldPos(0)
			logger.Info("%s: skipping row at line %d: want 2 fields, got %d", f.path, line, len(fields))
			continue
		}
		// PHC hashes carry commas ("m=65536,t=3,p=2"); an unquoted one spills
		// into extra fields and is put back together here.
		if !fn(Record{Username: fields[0], Hash: strings.Join(fields[1:], ",")}) {
			return nil
		}
	}
}
