package credstore

// Package credstore reads credential records from a local store file.
//
// Three store formats are understood:
//   users.csv        -> "username,password_hash" rows, no header
//   shadow, *.shadow -> shadow(5) rows, name and hash fields only
//   users.db/.sqlite -> table credentials(username, password_hash), rowid order
//
// Lookups never cache: every call rescans the store from the beginning, unless the
// caller explicitly takes a Snapshot.
