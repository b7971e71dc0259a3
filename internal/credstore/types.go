package credstore

import "errors"

// ErrStoreUnavailable is returned when the store cannot be opened or read at all.
// Per-row problems never surface as errors; those rows are skipped.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// Record is one (username, password hash) pair as stored on disk.
type Record struct {
	Username string
	Hash     string
}

// Source is a sequential reader over a credential store.
//
// Scan calls fn for every well-formed record in store order until fn returns false.
type Source interface {
	Scan(fn func(Record) bool) error
}
