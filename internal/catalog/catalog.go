package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"steamqueue/internal/steam"
	"steamqueue/internal/textutil"
)

// idNameSeparator splits a persisted line into identifier and name. Lines
// are written as "{id} #{name}".
const idNameSeparator = " #"

// AppLister fetches the bulk software/DLC listing.
type AppLister interface {
	AppList(ctx context.Context) ([]steam.App, error)
}

// Store reads and appends the catalog file.
type Store struct {
	path string
}

// NewStore creates a store for the given catalog file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// Known returns the set of identifiers already persisted. A missing file
// yields an empty set; any other read failure is an error because an
// incomplete exclusion set would corrupt the work list.
func (s *Store) Known() (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ids, nil
		}
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
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
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ids, nil
}

// Append adds the apps not already in known, one "{id} #{name}" line each,
// names reduced to printable ASCII. It mutates known in place and returns
// the number of lines written.
func (s *Store) Append(apps []steam.App, known map[string]struct{}) (int, error) {
	var pending []string
	for _, app := range apps {
		if app.ID == "" {
			continue
		}
		if _, exists := known[app.ID]; exists {
			continue
		}
		known[app.ID] = struct{}{}
		pending = append(pending, app.ID+idNameSeparator+textutil.SanitizeName(app.Name))
	}
	if len(pending) == 0 {
		return 0, nil
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open catalog file for append: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range pending {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return 0, fmt.Errorf("append catalog line: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, fmt.Errorf("flush catalog file: %w", err)
	}
	return len(pending), nil
}

// Fetcher refreshes the catalog from the remote listing.
type Fetcher struct {
	client AppLister
	store  *Store
	logger *slog.Logger
}

// NewFetcher creates a catalog fetcher.
func NewFetcher(client AppLister, store *Store, logger *slog.Logger) *Fetcher {
	return &Fetcher{client: client, store: store, logger: logger}
}

// Refresh fetches the remote listing, appends unseen identifiers, and
// returns the complete known set (pre-existing plus new). Errors propagate:
// catalog completeness affects exclusion correctness.
func (f *Fetcher) Refresh(ctx context.Context) (map[string]struct{}, error) {
	known, err := f.store.Known()
	if err != nil {
		return nil, err
	}

	apps, err := f.client.AppList(ctx)
	if err != nil {
		return nil, err
	}

	added, err := f.store.Append(apps, known)
	if err != nil {
		return nil, err
	}
	if f.logger != nil {
		f.logger.Info("software catalog refreshed", "total", len(known), "added", added)
	}
	return known, nil
}
