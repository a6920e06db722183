package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/R-Stev/invest/internal/classify"
	"github.com/R-Stev/invest/internal/host"
	"github.com/R-Stev/invest/internal/logbuf"
	"github.com/R-Stev/invest/internal/markup"
	"github.com/R-Stev/invest/internal/stream"
)

const testPattern = `natcap\.invest`

type fakeSource struct {
	lines []string
}

func (f fakeSource) FetchStatus(context.Context) (*host.StatusResponse, error) {
	return &host.StatusResponse{}, nil
}

func (f fakeSource) FetchRunLog(_ context.Context, q host.RunLogQuery) (host.RunLogResponse, error) {
	return host.RunLogResponse{RunID: q.RunID, Lines: f.lines}, nil
}

func (f fakeSource) FetchOutput(context.Context, host.OutputQuery) (host.OutputBatch, error) {
	return host.OutputBatch{}, nil
}

type stubWatcher struct {
	startErr error
	stopErr  error
	stops    int
	from     int64
	onLine   func(string)
}

func (w *stubWatcher) Start(from int64, onLine func(string), _ func(error)) error {
	if w.startErr != nil {
		return w.startErr
	}
	w.from = from
	w.onLine = onLine
	return nil
}

func (w *stubWatcher) Stop() error {
	w.stops++
	return w.stopErr
}

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing id", Config{ModulePattern: testPattern}},
		{"missing pattern", Config{ID: "run-1"}},
		{"malformed pattern", Config{ID: "run-1", ModulePattern: "([unclosed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, Options{}); err == nil {
				t.Fatal("New accepted invalid config, want error")
			}
		})
	}
}

func TestNewLiveRequiresDispatcher(t *testing.T) {
	_, err := New(Config{ID: "run-1", Running: true, ModulePattern: testPattern}, Options{})
	if err == nil {
		t.Fatal("New accepted live session without dispatcher")
	}
}

func TestLiveSessionClassifiesPublishedLines(t *testing.T) {
	disp := stream.NewDispatcher()
	s, err := New(Config{ID: "run-1", Running: true, ModulePattern: testPattern},
		Options{Dispatcher: disp})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	if s.Source() != SourceLive {
		t.Fatalf("Source = %v, want live", s.Source())
	}

	lines := []string{
		"Traceback (most recent call last):",
		"2020-10-16 07:13:04,325 (natcap.invest.carbon) INFO starting",
		"building overviews",
	}
	for _, line := range lines {
		if !disp.Publish("run-1", line) {
			t.Fatalf("Publish(%q) not delivered", line)
		}
	}

	want := string(markup.Wrap(classify.ClassError, lines[0])) + "\n" +
		string(markup.Wrap(classify.ClassPrimary, lines[1])) + "\n" +
		string(markup.Wrap("", lines[2])) + "\n"
	if got := s.Buffer().Snapshot().Content; got != want {
		t.Errorf("buffer =\n%q\nwant\n%q", got, want)
	}
}

func TestLiveSessionIgnoresOtherRuns(t *testing.T) {
	disp := stream.NewDispatcher()
	s, err := New(Config{ID: "run-1", Running: true, ModulePattern: testPattern},
		Options{Dispatcher: disp})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	if disp.Publish("run-2", "stray line") {
		t.Error("Publish for another run was delivered")
	}
	if snap := s.Buffer().Snapshot(); snap.Content != "" {
		t.Errorf("buffer = %q, want empty", snap.Content)
	}
}

func TestFileSessionLoadsHistory(t *testing.T) {
	path := writeLog(t,
		"2020-10-16 07:13:04,325 (natcap.invest.carbon) INFO starting",
		"ValueError: bad raster",
	)
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern}, Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	if s.Source() != SourceFile {
		t.Fatalf("Source = %v, want file", s.Source())
	}
	snap := s.Buffer().Snapshot()
	if snap.Lines != 2 {
		t.Errorf("Lines = %d, want 2", snap.Lines)
	}
	if !strings.Contains(snap.Content, `<span class="primary">`) ||
		!strings.Contains(snap.Content, `<span class="error">`) {
		t.Errorf("buffer missing classified spans:\n%s", snap.Content)
	}
}

func TestFileSessionMissingLogfileSetsPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	disp := stream.NewDispatcher()
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern},
		Options{Dispatcher: disp})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	want := string(markup.Wrap("", MissingLogMessage(path))) + "\n"
	if got := s.Buffer().Snapshot().Content; got != want {
		t.Errorf("buffer = %q, want placeholder %q", got, want)
	}
	// A file session must never end up on the live stream, even after a
	// read failure.
	if disp.Publish("run-1", "late line") {
		t.Error("file session is subscribed to the live stream")
	}
}

func TestAttachResetsPreviousRunOutput(t *testing.T) {
	buf := &logbuf.Buffer{}
	buf.Append(markup.Wrap("", "leftover from run-0") + "\n")

	path := writeLog(t, "fresh line")
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern},
		Options{Buffer: buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	snap := buf.Snapshot()
	if strings.Contains(snap.Content, "leftover") {
		t.Errorf("buffer still holds previous run output: %q", snap.Content)
	}
	if want := string(markup.Wrap("", "fresh line")) + "\n"; snap.Content != want {
		t.Errorf("buffer = %q, want %q", snap.Content, want)
	}
}

func TestFileSessionTailsThroughWatcher(t *testing.T) {
	path := writeLog(t, "historic line")
	w := &stubWatcher{}
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern},
		Options{Watcher: w})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	if w.onLine == nil {
		t.Fatal("watcher was not started")
	}
	w.onLine("KeyError: 'workspace_dir'")

	snap := s.Buffer().Snapshot()
	want := string(markup.Wrap("", "historic line")) + "\n" +
		string(markup.Wrap(classify.ClassError, "KeyError: 'workspace_dir'")) + "\n"
	if snap.Content != want {
		t.Errorf("buffer =\n%q\nwant\n%q", snap.Content, want)
	}
}

func TestWatcherStartFailureKeepsHistory(t *testing.T) {
	path := writeLog(t, "still readable")
	w := &stubWatcher{startErr: errors.New("inotify limit")}
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern},
		Options{Watcher: w})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	if want := string(markup.Wrap("", "still readable")) + "\n"; s.Buffer().Snapshot().Content != want {
		t.Errorf("history lost after watcher start failure")
	}
}

func TestCloseStopsWatcherOnce(t *testing.T) {
	w := &stubWatcher{stopErr: errors.New("already closed")}
	s, err := New(Config{ID: "run-1", LogfilePath: "/nope", ModulePattern: testPattern},
		Options{Watcher: w})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	s.Close()
	s.Close()
	if w.stops != 1 {
		t.Errorf("watcher stopped %d times, want 1", w.stops)
	}
}

func TestCloseUnsubscribesLiveSession(t *testing.T) {
	disp := stream.NewDispatcher()
	s, err := New(Config{ID: "run-1", Running: true, ModulePattern: testPattern},
		Options{Dispatcher: disp})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	s.Attach(context.Background())
	s.Close()

	if disp.Publish("run-1", "after close") {
		t.Error("closed session still receives stream notifications")
	}
}

func TestFileSessionWatcherResumesAtHistoryOffset(t *testing.T) {
	path := writeLog(t, "alpha", "beta")
	w := &stubWatcher{}
	s, err := New(Config{ID: "run-1", LogfilePath: path, ModulePattern: testPattern},
		Options{Watcher: w})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer s.Close()
	s.Attach(context.Background())

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat logfile: %v", err)
	}
	// The watcher picks up exactly where the bulk load stopped, so a line
	// appended during the load is not lost.
	if w.from != info.Size() {
		t.Errorf("watcher started at offset %d, want %d", w.from, info.Size())
	}
}

func TestHostHistoryAdapts(t *testing.T) {
	src := fakeSource{lines: []string{"a", "b"}}
	got, offset, err := HostHistory{Client: src}.RunLog(context.Background(), "/p", "run-1")
	if err != nil {
		t.Fatalf("RunLog returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("RunLog = %v, want [a b]", got)
	}
	if offset != -1 {
		t.Errorf("offset = %d, want -1 for a remote source", offset)
	}
}
