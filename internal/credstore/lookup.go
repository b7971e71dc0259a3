package credstore

// UsernameExists reports whether any record's username equals username exactly.
// No trimming or case folding is done here.
func UsernameExists(src Source, username string) (bool, error) {
	found := false
	err := src.Scan(func(r Record) bool {
		if r.Username == username {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// HashFor returns the hash of the first record for username.
// Later duplicates are never consulted.
func HashFor(src Source, username string) (string, bool, error) {
	var (
		hash  string
		found bool
	)
	err := src.Scan(func(r Record) bool {
		if r.Username == username {
			hash, found = r.Hash, true
			return false
		}
		return true
	})
	if err != nil {
		return "", false, err
	}
	return hash, found, nil
}

// Memory is a Source over records already held in memory.
type Memory struct {
	records []Record
}

func NewMemory(records ...Record) *Memory {
	return &Memory{records: append([]Record(nil), records...)}
}

func (m *Memory) Scan(fn func(Record) bool) error {
	for _, r := range m.records {
		if !fn(r) {
			return nil
		}
	}
	return nil
}

func (m *Memory) Len() int {
	return len(m.records)
}

// Snapshot reads src once. Lookups against the result no longer see changes on disk.
func Snapshot(src Source) (*Memory, error) {
	var records []Record
	err := src.Scan(func(r Record) bool {
		records = append(records, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &Memory{records: records}, nil
}
