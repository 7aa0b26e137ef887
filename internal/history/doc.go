// Package history records one row per enrichment run in a local SQLite
// database.
//
// The history is diagnostic only: resume decisions always come from the
// games log file, never from this store, so losing or clearing the
// database cannot cause re-classification.
package history
