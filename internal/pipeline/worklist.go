package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// computeWorkList produces the ordered identifier list for this run.
//
// Library mode: owned games minus the software catalog minus identifiers
// already in the games log, preserving library order. File mode: the
// input file's identifiers verbatim, comments stripped; exclusion sets
// do not apply because the operator chose the list explicitly.
func (p *Pipeline) computeWorkList(ctx context.Context) ([]string, error) {
	if p.opts.QueueFromFile {
		return readInputList(p.opts.InputPath)
	}

	known, err := p.opts.Catalog.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}

	processed, err := p.opts.GamesLog.ProcessedIDs()
	if err != nil {
		return nil, err
	}

	owned, err := p.opts.Library.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch library: %w", err)
	}

	var work []string
	for _, app := range owned {
		if _, inCatalog := known[app.ID]; inCatalog {
			continue
		}
		if _, done := processed[app.ID]; done {
			continue
		}
		work = append(work, app.ID)
	}
	p.opts.Logger.Info("work list computed",
		"owned", len(owned),
		"in_catalog", len(known),
		"already_processed", len(processed),
		"to_process", len(work),
	)
	return work, nil
}

// readInputList reads one identifier per line. Anything after a '#' is a
// comment; blank lines are skipped. A missing file is an error because
// file mode without input is an operator mistake, not an empty run.
func readInputList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return ids, nil
}
