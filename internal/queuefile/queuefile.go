package queuefile

import (
	"fmt"
	"os"
	"strings"
)

// visibility is the fixed third field of every queue line.
const visibility = "Public"

// Entry is one (platform, identifier) instruction for the packer.
type Entry struct {
	PlatformCode string
	ID           string
}

// Line renders the persisted form: "{code}|{id}|Public|".
func (e Entry) Line() string {
	return fmt.Sprintf("%s|%s|%s|", e.PlatformCode, e.ID, visibility)
}

// Write replaces the queue file with one line per entry. Callers skip the
// call entirely when there are no entries; an explicit empty write is
// rejected to protect the previous run's file.
func Write(path string, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("refusing to write empty queue file %s", path)
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("write queue file: %w", err)
	}
	return nil
}
