package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"steamqueue/internal/classify"
	"steamqueue/internal/gameslog"
	"steamqueue/internal/queuefile"
	"steamqueue/internal/steam"
)

// State labels the phase a run is in. Transitions are logged, not
// persisted; a run is an in-memory affair.
type State string

const (
	StateIdle                 State = "idle"
	StateComputingWorkList    State = "computing_work_list"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateRunning              State = "running"
	StateFinalizing           State = "finalizing"
	StateDone                 State = "done"
	StateError                State = "error"
)

// Outcome summarizes how a run ended.
type Outcome string

const (
	OutcomeCompleted        Outcome = "completed"
	OutcomeTestLimitReached Outcome = "test_limit"
	OutcomeNoWork           Outcome = "no_work"
	OutcomeAborted          Outcome = "aborted"
)

// Mode identifies the work-list source.
type Mode string

const (
	ModeLibrary Mode = "library"
	ModeFile    Mode = "file"
)

// LibraryLister fetches the owned-games listing in source order.
type LibraryLister interface {
	Library(ctx context.Context) ([]steam.App, error)
}

// CatalogRefresher refreshes the software catalog and returns the full
// known-identifier set.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (map[string]struct{}, error)
}

// ItemClassifier classifies one identifier. Failures surface as Unknown
// classifications, never as errors.
type ItemClassifier interface {
	Classify(ctx context.Context, id string) classify.Classification
}

// Confirmer gates the run between work-list computation and processing.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// AutoConfirm answers every prompt with a fixed decision. Used for the
// --yes flag and in tests.
type AutoConfirm bool

func (a AutoConfirm) Confirm(string) (bool, error) { return bool(a), nil }

// Options wires a pipeline's collaborators.
type Options struct {
	Library    LibraryLister
	Catalog    CatalogRefresher
	Classifier ItemClassifier
	GamesLog   *gameslog.Store
	QueuePath  string
	Confirmer  Confirmer

	QueueFromFile bool
	InputPath     string
	TestMode      bool
	TestLimit     int

	// RateInterval feeds the pre-run duration estimate only.
	RateInterval time.Duration

	Logger   *slog.Logger
	Progress io.Writer // per-item progress sink; nil disables
	IsTTY    bool

	clock func() time.Time
}

// Result carries the counters of a finished run.
type Result struct {
	Outcome      Outcome
	Mode         Mode
	WorkListSize int
	Processed    int
	QueueEntries int
	DenuvoSeen   int
	UnknownSeen  int
	GamesLogMode string // "overwrite" or "append"
	QueueWritten bool
}

// Pipeline runs the enrichment flow end to end.
type Pipeline struct {
	opts  Options
	state State
}

// New validates the wiring and returns a pipeline ready to run.
func New(opts Options) (*Pipeline, error) {
	if opts.Classifier == nil {
		return nil, errors.New("pipeline requires a classifier")
	}
	if opts.GamesLog == nil {
		return nil, errors.New("pipeline requires a games log store")
	}
	if opts.QueuePath == "" {
		return nil, errors.New("pipeline requires a queue file path")
	}
	if opts.QueueFromFile {
		if opts.InputPath == "" {
			return nil, errors.New("file mode requires an input path")
		}
	} else {
		if opts.Library == nil {
			return nil, errors.New("library mode requires a library lister")
		}
		if opts.Catalog == nil {
			return nil, errors.New("library mode requires a catalog refresher")
		}
	}
	if opts.Confirmer == nil {
		opts.Confirmer = AutoConfirm(true)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.clock == nil {
		opts.clock = time.Now
	}
	return &Pipeline{opts: opts, state: StateIdle}, nil
}

// Mode reports which work-list source this pipeline uses.
func (p *Pipeline) Mode() Mode {
	if p.opts.QueueFromFile {
		return ModeFile
	}
	return ModeLibrary
}

// effectiveTotal caps the item count at the test limit when test mode
// is on. The confirmation estimate and the progress denominators both
// use it.
func (p *Pipeline) effectiveTotal(n int) int {
	if p.opts.TestMode && p.opts.TestLimit < n {
		return p.opts.TestLimit
	}
	return n
}

func (p *Pipeline) setState(next State) {
	p.opts.Logger.Debug("state transition", "from", string(p.state), "to", string(next))
	p.state = next
}

// Run executes one enrichment run. The returned result is non-nil for
// every non-error path, including an aborted confirmation.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{Mode: p.Mode()}

	p.setState(StateComputingWorkList)
	work, err := p.computeWorkList(ctx)
	if err != nil {
		p.setState(StateError)
		return nil, err
	}
	result.WorkListSize = len(work)

	if len(work) == 0 {
		p.opts.Logger.Info("no new games to process")
		result.Outcome = OutcomeNoWork
		p.setState(StateDone)
		return result, nil
	}

	p.setState(StateAwaitingConfirmation)
	effective := p.effectiveTotal(len(work))
	estimate := time.Duration(effective) * p.opts.RateInterval
	p.opts.Logger.Info("work list ready",
		"games", len(work),
		"to_process", effective,
		"estimated_duration", formatHHMMSS(estimate),
	)
	prompt := fmt.Sprintf("Process %d games (estimated %s)?", effective, formatHHMMSS(estimate))
	ok, err := p.opts.Confirmer.Confirm(prompt)
	if err != nil {
		p.setState(StateError)
		return nil, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		p.opts.Logger.Info("run cancelled before processing")
		result.Outcome = OutcomeAborted
		p.setState(StateDone)
		return result, nil
	}

	p.setState(StateRunning)
	records, entries, err := p.process(ctx, work, result)
	if err != nil {
		p.setState(StateError)
		return nil, err
	}

	p.setState(StateFinalizing)
	if err := p.finalize(records, entries, result); err != nil {
		p.setState(StateError)
		return nil, err
	}

	p.opts.Logger.Info("run finished",
		"outcome", string(result.Outcome),
		"processed", result.Processed,
		"queued", result.QueueEntries,
		"denuvo", result.DenuvoSeen,
		"unknown", result.UnknownSeen,
	)
	p.setState(StateDone)
	return result, nil
}

// process classifies the work list sequentially, honoring the test-mode
// cap, and accumulates games-log records and queue entries.
func (p *Pipeline) process(ctx context.Context, work []string, result *Result) ([]gameslog.Record, []queuefile.Entry, error) {
	var (
		records []gameslog.Record
		entries []queuefile.Entry
	)
	started := p.opts.clock()
	result.Outcome = OutcomeCompleted
	total := p.effectiveTotal(len(work))

	for i, id := range work {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if p.opts.TestMode && i >= p.opts.TestLimit {
			p.opts.Logger.Info("test limit reached", "limit", p.opts.TestLimit)
			result.Outcome = OutcomeTestLimitReached
			break
		}

		// The progress line reflects the items completed so far, out of
		// the capped total in test mode; the remaining estimate has no
		// baseline until one item is done.
		p.reportProgress(i, total, started, result.DenuvoSeen, id)

		cls := p.opts.Classifier.Classify(ctx, id)
		records = append(records, gameslog.Record{
			ID:              cls.ID,
			Name:            cls.Name,
			PlatformSummary: cls.Display,
		})
		for _, code := range cls.QueuePlatforms {
			entries = append(entries, queuefile.Entry{PlatformCode: code, ID: cls.ID})
		}
		if cls.HasDenuvo {
			result.DenuvoSeen++
		}
		if cls.Display == "Unknown" {
			result.UnknownSeen++
		}
		result.Processed++
		result.QueueEntries = len(entries)
	}
	p.finishProgress()
	return records, entries, nil
}

// finalize writes the games log and, when any entries exist, the queue
// file. The games log is overwritten in file mode or when absent, and
// appended otherwise so previous runs are preserved.
func (p *Pipeline) finalize(records []gameslog.Record, entries []queuefile.Entry, result *Result) error {
	overwrite := p.opts.QueueFromFile || !p.opts.GamesLog.Exists()
	if overwrite {
		result.GamesLogMode = "overwrite"
	} else {
		result.GamesLogMode = "append"
	}
	if err := p.opts.GamesLog.Write(records, overwrite); err != nil {
		return err
	}
	p.opts.Logger.Info("games log updated",
		"path", p.opts.GamesLog.Path(),
		"records", len(records),
		"mode", result.GamesLogMode,
	)

	if len(entries) == 0 {
		p.opts.Logger.Info("no valid games to queue; queue file untouched", "path", p.opts.QueuePath)
		return nil
	}
	if err := queuefile.Write(p.opts.QueuePath, entries); err != nil {
		return err
	}
	result.QueueWritten = true
	p.opts.Logger.Info("queue file written", "path", p.opts.QueuePath, "entries", len(entries))
	return nil
}
