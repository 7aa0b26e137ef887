// Package logging builds the slog logger shared by the CLI and the
// enrichment pipeline.
//
// Console output uses a compact single-line handler; the optional log file
// (operation.enable_logging + files.log_file) receives the same records in
// append mode so runs remain auditable after the terminal scrolls away.
package logging
