package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/R-Stev/invest/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override runner config path (optional)")
	runID := flag.String("run", "", "run identifier to view (optional, defaults to the active run)")
	logfile := flag.String("logfile", "", "override the run's logfile path (optional)")
	pattern := flag.String("modules", "", "override the module-name highlight pattern (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 1s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		RunID:         *runID,
		LogfilePath:   *logfile,
		ModulePattern: *pattern,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "investlog: %v\n", err)
		return 1
	}
	return 0
}
