package hostfs

// Package hostfs provides guarded access helpers for the local files credcheck reads:
// the credential store and the optional config file.
//
// Reads of the same path are serialised through a per-path mutex so a reader
// never observes another in-process reader's handle mid-flight.
