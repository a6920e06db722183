package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/R-Stev/invest/internal/config"
	"github.com/R-Stev/invest/internal/host"
	"github.com/R-Stev/invest/internal/logbuf"
	"github.com/R-Stev/invest/internal/prefs"
	"github.com/R-Stev/invest/internal/session"
	"github.com/R-Stev/invest/internal/stream"
	"github.com/R-Stev/invest/internal/ui"
	"github.com/R-Stev/invest/internal/watch"
)

// Options configure the log viewer application.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/investlog/prefs.toml
	RunID         string // empty attaches to whatever the runner reports
	LogfilePath   string // override for the run's logfile
	ModulePattern string // override for the module-name highlight pattern
	PollEvery     int    // seconds; zero uses default
}

// Module-name lines carry the modeling package prefix.
const defaultModulePattern = `natcap\.invest`

const statusTimeout = 3 * time.Second

// Run boots the log viewer TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load runner config: %w", err)
	}

	logger, err := buildLogger(cfg.DebugLog)
	if err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := host.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init runner client: %w", err)
	}

	sessCfg, err := resolveRun(ctx, client, cfg, opts)
	if err != nil {
		return err
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	disp := stream.NewDispatcher()
	buf := &logbuf.Buffer{}

	sessOpts := session.Options{
		Buffer:     buf,
		Dispatcher: disp,
		Logger:     logger,
	}
	if !sessCfg.Running {
		sessOpts.History = fallbackHistory{
			local:  session.LocalHistory{},
			remote: session.HostHistory{Client: client},
		}
		if cfg.PollWatch {
			sessOpts.Watcher = watch.NewPolling(sessCfg.LogfilePath, logger)
		} else {
			sessOpts.Watcher = watch.New(sessCfg.LogfilePath, logger)
		}
	}

	sess, err := session.New(sessCfg, sessOpts)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.Attach(ctx)

	if sessCfg.Running {
		StartPoller(ctx, disp, client, sessCfg.ID, interval, logger)
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Session:      sess,
		ThemeName:    userPrefs.Theme,
		Follow:       userPrefs.Follow,
		PrefsPath:    opts.PrefsPath,
		RefreshEvery: interval,
	})
}

// resolveRun decides which run to view and which ingestion path applies.
// The runner's status wins when it reports an active run and the caller did
// not name a different one; everything else is a file attachment.
func resolveRun(ctx context.Context, src host.Source, cfg config.Config, opts Options) (session.Config, error) {
	statusCtx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	status, err := src.FetchStatus(statusCtx)
	if err != nil {
		status = &host.StatusResponse{}
	}

	pattern := strings.TrimSpace(opts.ModulePattern)
	if pattern == "" {
		pattern = strings.TrimSpace(status.ModulePattern)
	}
	if pattern == "" {
		pattern = defaultModulePattern
	}

	requested := strings.TrimSpace(opts.RunID)
	if status.Running && status.RunID != "" && (requested == "" || requested == status.RunID) {
		return session.Config{
			ID:            status.RunID,
			LogfilePath:   status.LogfilePath,
			Running:       true,
			ModulePattern: pattern,
		}, nil
	}

	runID := requested
	if runID == "" {
		runID = strings.TrimSpace(status.RunID)
	}
	if runID == "" {
		return session.Config{}, fmt.Errorf("no run to view: runner reports nothing active and no -run given")
	}

	logfile := strings.TrimSpace(opts.LogfilePath)
	if logfile == "" {
		logfile = strings.TrimSpace(status.LogfilePath)
	}
	if logfile == "" {
		logfile = cfg.RunLogPath(runID)
	}
	return session.Config{
		ID:            runID,
		LogfilePath:   logfile,
		ModulePattern: pattern,
	}, nil
}

// fallbackHistory reads the logfile from disk and asks the runner for the
// content only when the file cannot be read here, such as a viewer on a
// different machine than the runner.
type fallbackHistory struct {
	local  session.HistorySource
	remote session.HistorySource
}

func (f fallbackHistory) RunLog(ctx context.Context, path, runID string) ([]string, int64, error) {
	lines, offset, err := f.local.RunLog(ctx, path, runID)
	if err == nil {
		return lines, offset, nil
	}
	remote, _, rerr := f.remote.RunLog(ctx, path, runID)
	if rerr != nil {
		// Report the local error; the path in it is the one the user can act on.
		return nil, -1, err
	}
	return remote, -1, nil
}
