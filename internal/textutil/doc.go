// Package textutil provides text normalization helpers for persisted
// catalog and games-log lines.
package textutil
