// Package gameslog persists the human-auditable record of classified
// titles.
//
// The identifiers in this file double as the resume set: a title recorded
// here is never re-fetched or re-classified by a later run, Unknown
// classifications included.
package gameslog
