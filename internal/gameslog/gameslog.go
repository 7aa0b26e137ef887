package gameslog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"steamqueue/internal/textutil"
)

const idNameSeparator = " #"

// Record is one classified title.
type Record struct {
	ID              string
	Name            string
	PlatformSummary string
}

// Line renders the persisted form: "{id} #{name} [{summary}]".
func (r Record) Line() string {
	return fmt.Sprintf("%s%s%s [%s]", r.ID, idNameSeparator, textutil.SanitizeName(r.Name), r.PlatformSummary)
}

// Store reads and writes the games log file.
type Store struct {
	path string
}

// NewStore creates a store for the given games log path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the games log location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the games log file is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// ProcessedIDs returns the identifiers already recorded. A missing file
// yields an empty set; any other failure is an error, since an incomplete
// resume set would cause re-classification.
func (s *Store) ProcessedIDs() (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ids, nil
		}
		return nil, fmt.Errorf("open games log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, _, _ := strings.Cut(line, idNameSeparator)
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read games log: %w", err)
	}
	return ids, nil
}

// Write persists the records. With overwrite true the file is replaced
// wholesale; otherwise the block is appended, preceded by a newline when
// the file already has content. Either way the write is one buffer, so an
// interrupt cannot leave a half-written line mid-file.
func (s *Store) Write(records []Record, overwrite bool) error {
	if len(records) == 0 {
		return nil
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, record.Line())
	}
	block := strings.Join(lines, "\n")

	if overwrite {
		if err := os.WriteFile(s.path, []byte(block), 0o644); err != nil {
			return fmt.Errorf("write games log: %w", err)
		}
		return nil
	}

	info, err := os.Stat(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat games log: %w", err)
	}
	if err == nil && info.Size() > 0 {
		block = "\n" + block
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open games log for append: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(block); err != nil {
		return fmt.Errorf("append games log: %w", err)
	}
	return file.Close()
}
