// Package catalog maintains the on-disk software/DLC catalog used to
// exclude non-game identifiers from enrichment.
//
// The catalog file is append-only: refreshes add identifiers that are new
// to the file and never rewrite or reorder existing lines, so repeated runs
// against an unchanged remote catalog are no-ops.
package catalog
