package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"steamqueue/internal/classify"
	"steamqueue/internal/gameslog"
	"steamqueue/internal/steam"
)

type stubLibrary struct {
	apps []steam.App
	err  error
}

func (s stubLibrary) Library(context.Context) ([]steam.App, error) {
	return s.apps, s.err
}

type stubCatalog struct {
	known map[string]struct{}
	err   error
}

func (s stubCatalog) Refresh(context.Context) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.known == nil {
		return map[string]struct{}{}, nil
	}
	return s.known, nil
}

// stubClassifier returns canned classifications; unmatched identifiers
// classify as Unknown, mirroring the real classifier's failure path.
type stubClassifier map[string]classify.Classification

func (s stubClassifier) Classify(_ context.Context, id string) classify.Classification {
	if cls, ok := s[id]; ok {
		return cls
	}
	return classify.Unknown(id)
}

type fatalConfirmer struct{ t *testing.T }

func (f fatalConfirmer) Confirm(string) (bool, error) {
	f.t.Fatal("confirmation must not be requested")
	return false, nil
}

func winOnly(id, name string) classify.Classification {
	return classify.Classification{
		ID:             id,
		Name:           name,
		Display:        "Win",
		QueuePlatforms: []string{"win64"},
	}
}

type fixture struct {
	dir       string
	gamesPath string
	queuePath string
	opts      Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:       dir,
		gamesPath: filepath.Join(dir, "games.txt"),
		queuePath: filepath.Join(dir, "queue.txt"),
	}
	f.opts = Options{
		Catalog:   stubCatalog{},
		GamesLog:  gameslog.NewStore(f.gamesPath),
		QueuePath: f.queuePath,
		Confirmer: AutoConfirm(true),
	}
	return f
}

func (f *fixture) run(t *testing.T) *Result {
	t.Helper()
	p, err := New(f.opts)
	if err != nil {
		t.Fatal(err)
	}
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunWindowsOnlyPaidGame(t *testing.T) {
	f := newFixture(t)
	f.opts.Library = stubLibrary{apps: []steam.App{{ID: "101", Name: "Half Game"}}}
	f.opts.Classifier = stubClassifier{"101": winOnly("101", "Half Game")}

	result := f.run(t)

	if result.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %q", result.Outcome)
	}
	if result.Processed != 1 || result.QueueEntries != 1 {
		t.Fatalf("counters: %+v", result)
	}
	if got := readFile(t, f.gamesPath); got != "101 #Half Game [Win]" {
		t.Fatalf("games log = %q", got)
	}
	if got := readFile(t, f.queuePath); got != "win64|101|Public|" {
		t.Fatalf("queue file = %q", got)
	}
}

func TestDenuvoGameLoggedButNotQueued(t *testing.T) {
	f := newFixture(t)
	// A previous run's queue file must survive a run that queues nothing.
	if err := os.WriteFile(f.queuePath, []byte("win64|9|Public|"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.opts.Library = stubLibrary{apps: []steam.App{{ID: "150", Name: "Protected"}}}
	f.opts.Classifier = stubClassifier{"150": {
		ID:        "150",
		Name:      "Protected",
		Display:   "Win [DENUVO]",
		HasDenuvo: true,
	}}

	result := f.run(t)

	if result.QueueEntries != 0 || result.DenuvoSeen != 1 {
		t.Fatalf("counters: %+v", result)
	}
	if result.QueueWritten {
		t.Fatal("queue must not be written")
	}
	if got := readFile(t, f.gamesPath); got != "150 #Protected [Win [DENUVO]]" {
		t.Fatalf("games log = %q", got)
	}
	if got := readFile(t, f.queuePath); got != "win64|9|Public|" {
		t.Fatalf("previous queue file clobbered: %q", got)
	}
}

func TestFailedDetailYieldsUnknown(t *testing.T) {
	f := newFixture(t)
	f.opts.Library = stubLibrary{apps: []steam.App{{ID: "202", Name: "Gone"}}}
	f.opts.Classifier = stubClassifier{}

	result := f.run(t)

	if result.UnknownSeen != 1 {
		t.Fatalf("counters: %+v", result)
	}
	if got := readFile(t, f.gamesPath); got != "202 #202 [Unknown]" {
		t.Fatalf("games log = %q", got)
	}
	if _, err := os.Stat(f.queuePath); !os.IsNotExist(err) {
		t.Fatal("queue file must not exist")
	}
}

func TestTestModeStopsAtLimit(t *testing.T) {
	f := newFixture(t)
	classifier := stubClassifier{}
	var apps []steam.App
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		apps = append(apps, steam.App{ID: id, Name: "Game " + id})
		classifier[id] = winOnly(id, "Game "+id)
	}
	f.opts.Library = stubLibrary{apps: apps}
	f.opts.Classifier = classifier
	f.opts.TestMode = true
	f.opts.TestLimit = 3

	result := f.run(t)

	if result.Outcome != OutcomeTestLimitReached {
		t.Fatalf("outcome = %q", result.Outcome)
	}
	if result.Processed != 3 || result.WorkListSize != 10 {
		t.Fatalf("counters: %+v", result)
	}
	lines := strings.Split(readFile(t, f.gamesPath), "\n")
	if len(lines) != 3 {
		t.Fatalf("games log has %d lines, want 3", len(lines))
	}
}

func TestResumeSkipsProcessedAndCatalog(t *testing.T) {
	f := newFixture(t)
	if err := os.WriteFile(f.gamesPath, []byte("101 #Old [Win]"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.opts.Library = stubLibrary{apps: []steam.App{
		{ID: "101", Name: "Old"},
		{ID: "102", Name: "New"},
		{ID: "103", Name: "Software"},
	}}
	f.opts.Catalog = stubCatalog{known: map[string]struct{}{"103": {}}}
	f.opts.Classifier = stubClassifier{"102": winOnly("102", "New")}

	result := f.run(t)

	if result.WorkListSize != 1 || result.Processed != 1 {
		t.Fatalf("counters: %+v", result)
	}
	if result.GamesLogMode != "append" {
		t.Fatalf("games log mode = %q", result.GamesLogMode)
	}
	want := "101 #Old [Win]\n102 #New [Win]"
	if got := readFile(t, f.gamesPath); got != want {
		t.Fatalf("games log = %q, want %q", got, want)
	}
}

func TestFileModeReadsInputAndOverwrites(t *testing.T) {
	f := newFixture(t)
	inputPath := filepath.Join(f.dir, "input.txt")
	input := "# picks\n301\n\n302 # second pick\n"
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.gamesPath, []byte("999 #Stale [Win]"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.opts.QueueFromFile = true
	f.opts.InputPath = inputPath
	f.opts.Library = nil
	f.opts.Catalog = nil
	f.opts.Classifier = stubClassifier{
		"301": winOnly("301", "First"),
		"302": winOnly("302", "Second"),
	}

	result := f.run(t)

	if result.Mode != ModeFile || result.WorkListSize != 2 {
		t.Fatalf("counters: %+v", result)
	}
	if result.GamesLogMode != "overwrite" {
		t.Fatalf("games log mode = %q", result.GamesLogMode)
	}
	want := "301 #First [Win]\n302 #Second [Win]"
	if got := readFile(t, f.gamesPath); got != want {
		t.Fatalf("games log = %q, want %q", got, want)
	}
}

func TestFileModeMissingInputFails(t *testing.T) {
	f := newFixture(t)
	f.opts.QueueFromFile = true
	f.opts.InputPath = filepath.Join(f.dir, "absent.txt")
	f.opts.Library = nil
	f.opts.Catalog = nil
	f.opts.Classifier = stubClassifier{}

	p, err := New(f.opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestDeclinedConfirmationWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.opts.Library = stubLibrary{apps: []steam.App{{ID: "101", Name: "Game"}}}
	f.opts.Classifier = stubClassifier{"101": winOnly("101", "Game")}
	f.opts.Confirmer = AutoConfirm(false)

	result := f.run(t)

	if result.Outcome != OutcomeAborted {
		t.Fatalf("outcome = %q", result.Outcome)
	}
	if _, err := os.Stat(f.gamesPath); !os.IsNotExist(err) {
		t.Fatal("games log must not exist after an aborted run")
	}
}

func TestEmptyWorkListSkipsConfirmation(t *testing.T) {
	f := newFixture(t)
	f.opts.Library = stubLibrary{apps: nil}
	f.opts.Classifier = stubClassifier{}
	f.opts.Confirmer = fatalConfirmer{t: t}

	result := f.run(t)

	if result.Outcome != OutcomeNoWork {
		t.Fatalf("outcome = %q", result.Outcome)
	}
}

func TestProgressLineEmittedPerItem(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.opts.Progress = &buf
	f.opts.Library = stubLibrary{apps: []steam.App{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}}
	f.opts.Classifier = stubClassifier{"1": winOnly("1", "A"), "2": winOnly("2", "B")}

	f.run(t)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d progress lines, want 2: %q", len(lines), buf.String())
	}
	// No elapsed baseline before the first item.
	if !strings.Contains(lines[0], "--:--:--") || !strings.Contains(lines[0], "0/2") {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "1/2") || !strings.Contains(lines[1], "processing 2") {
		t.Fatalf("second line = %q", lines[1])
	}
}

func TestProgressDenominatorCappedInTestMode(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.opts.Progress = &buf
	classifier := stubClassifier{}
	var apps []steam.App
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		apps = append(apps, steam.App{ID: id, Name: "Game " + id})
		classifier[id] = winOnly(id, "Game "+id)
	}
	f.opts.Library = stubLibrary{apps: apps}
	f.opts.Classifier = classifier
	f.opts.TestMode = true
	f.opts.TestLimit = 3

	f.run(t)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d progress lines, want 3: %q", len(lines), buf.String())
	}
	// Percent and counts run against the capped total, not the full
	// work list.
	for i, want := range []string{"0/3", "1/3", "2/3"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d = %q, want %q denominator", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "33.3%") || !strings.Contains(lines[2], "66.7%") {
		t.Fatalf("percentages not capped: %q", lines[1:])
	}
}

func TestFormatHHMMSS(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{90, "00:01:30"},
		{3661, "01:01:01"},
		{45296, "12:34:56"},
	}
	for _, tc := range cases {
		if got := formatHHMMSS(time.Duration(tc.seconds) * time.Second); got != tc.want {
			t.Errorf("formatHHMMSS(%ds) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
