package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/R-Stev/invest/internal/classify"
	"github.com/R-Stev/invest/internal/logbuf"
	"github.com/R-Stev/invest/internal/markup"
	"github.com/R-Stev/invest/internal/stream"
	"github.com/R-Stev/invest/internal/watch"
)

// Config describes one log session at start.
type Config struct {
	ID            string // run identifier, required
	LogfilePath   string // required for file attachment
	Running       bool   // selects the attachment path
	ModulePattern string // builds the module-name classification rule
}

// Source identifies which attachment path a session took. The choice is
// made once, at construction: a run going inactive later does not
// retroactively change the path already taken.
type Source int

const (
	SourceLive Source = iota
	SourceFile
)

func (s Source) String() string {
	if s == SourceLive {
		return "live"
	}
	return "file"
}

// MissingLogMessage is the fixed placeholder shown when a run's logfile
// cannot be read.
func MissingLogMessage(path string) string {
	return fmt.Sprintf("Logfile is missing or unreadable: %s", path)
}

// Options are the session's collaborators. Zero values get sensible
// defaults except Dispatcher, which a live session requires.
type Options struct {
	Buffer     *logbuf.Buffer
	Dispatcher *stream.Dispatcher
	History    HistorySource // defaults to LocalHistory
	Watcher    watch.Watcher // optional live tail for file sessions
	Logger     *zap.Logger
}

// Session feeds one run's output through classification into the buffer.
type Session struct {
	cfg    Config
	source Source
	rules  *classify.RuleSet
	buf    *logbuf.Buffer

	disp    *stream.Dispatcher
	history HistorySource
	watcher watch.Watcher
	logger  *zap.Logger

	closeOnce sync.Once
}

// New validates cfg and compiles the session's rule set. A malformed
// module pattern is a configuration error surfaced here — it could never
// succeed per line, so the session fails before any line is processed.
func New(cfg Config, opts Options) (*Session, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	if strings.TrimSpace(cfg.ModulePattern) == "" {
		return nil, fmt.Errorf("module pattern required")
	}
	rules, err := classify.NewStandard(cfg.ModulePattern)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cfg.ID, err)
	}

	source := SourceFile
	if cfg.Running {
		source = SourceLive
	}
	if source == SourceLive && opts.Dispatcher == nil {
		return nil, fmt.Errorf("session %s: live session requires a dispatcher", cfg.ID)
	}

	buf := opts.Buffer
	if buf == nil {
		buf = &logbuf.Buffer{}
	}
	history := opts.History
	if history == nil {
		history = LocalHistory{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		cfg:     cfg,
		source:  source,
		rules:   rules,
		buf:     buf,
		disp:    opts.Dispatcher,
		history: history,
		watcher: opts.Watcher,
		logger:  logger,
	}, nil
}

// Attach resets the buffer — a new run may start while a previous run's
// output is still displayed — and begins ingestion on the path chosen at
// construction. File-attachment failures set the placeholder and are
// logged, never returned.
func (s *Session) Attach(ctx context.Context) {
	s.buf.Reset()
	switch s.source {
	case SourceLive:
		s.disp.Subscribe(s.cfg.ID, s.ingest)
		s.logger.Debug("attached to live stream", zap.String("run", s.cfg.ID))
	case SourceFile:
		s.attachFile(ctx)
	}
}

// ingest is the single append path: classify one raw line, concatenate its
// fragment. Notification delivery is single-threaded, so the buffer has no
// concurrent writers.
func (s *Session) ingest(line string) {
	s.buf.Append(s.rules.Classify(line) + "\n")
}

func (s *Session) attachFile(ctx context.Context) {
	lines, offset, err := s.history.RunLog(ctx, s.cfg.LogfilePath, s.cfg.ID)
	if err != nil {
		s.logger.Error("file attachment failed",
			zap.String("run", s.cfg.ID),
			zap.String("path", s.cfg.LogfilePath),
			zap.Error(err))
		s.buf.Append(markup.Wrap("", MissingLogMessage(s.cfg.LogfilePath)) + "\n")
		return
	}

	frags := make([]markup.Fragment, 0, len(lines))
	for _, line := range lines {
		frags = append(frags, s.rules.Classify(line)+"\n")
	}
	s.buf.BulkLoad(frags)
	s.logger.Debug("bulk-loaded history",
		zap.String("run", s.cfg.ID), zap.Int("lines", len(lines)))

	if s.watcher == nil {
		return
	}
	// Resuming at the history read's offset closes the gap between the bulk
	// load and the watch; lines that landed in between still arrive.
	if err := s.watcher.Start(offset, s.ingest, s.watchError); err != nil {
		// History is already loaded; a dead tail only means no further
		// growth of the buffer.
		s.logger.Error("start file watcher",
			zap.String("path", s.cfg.LogfilePath), zap.Error(err))
	}
}

func (s *Session) watchError(err error) {
	s.logger.Error("file watch", zap.String("run", s.cfg.ID), zap.Error(err))
}

// Close releases the session's resources on every exit path. It never
// raises: release failures are logged and swallowed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.source == SourceLive && s.disp != nil {
			s.disp.Unsubscribe(s.cfg.ID)
		}
		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Error("release file watcher", zap.Error(err))
			}
		}
	})
}

// Buffer exposes the accumulated text for the display surface.
func (s *Session) Buffer() *logbuf.Buffer { return s.buf }

// Source reports the attachment path this session took.
func (s *Session) Source() Source { return s.source }

// ID returns the run identifier.
func (s *Session) ID() string { return s.cfg.ID }
