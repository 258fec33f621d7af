// Package watch polls a file for changes and re-runs a render function whenever its contents
// change.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Config configures a Watcher.
type Config struct {
	File     string        // file to poll
	Interval time.Duration // poll interval; 0 uses a 500ms default
	Stdout   io.Writer     // output for rendered results
	Logger   *slog.Logger  // nil uses slog.Default()
}

// Watcher re-runs Render every time the watched file's modification time or size changes.
type Watcher struct {
	file     string
	interval time.Duration
	stdout   io.Writer
	logger   *slog.Logger
}

// New creates a Watcher for the given file. It returns an error if the file does not exist.
func New(cfg Config) (*Watcher, error) {
	if _, err := os.Stat(cfg.File); err != nil {
		return nil, fmt.Errorf("watch: %v", err)
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = 500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{file: cfg.File, interval: interval, stdout: cfg.Stdout, logger: logger}, nil
}

// Render renders the current contents of the watched file to w. Watch calls it once immediately
// and again after every detected change.
type Render func(contents []byte, w io.Writer) error

// Watch calls render once immediately, then again every time the watched file changes, until ctx
// is cancelled.
func (wa *Watcher) Watch(ctx context.Context, render Render) error {
	if err := wa.renderOnce(render); err != nil {
		wa.logger.Error("initial render failed", "file", wa.file, "error", err)
	}

	ticker := time.NewTicker(wa.interval)
	defer ticker.Stop()

	var lastMod time.Time
	var lastSize int64
	if stat, err := os.Stat(wa.file); err == nil {
		lastMod, lastSize = stat.ModTime(), stat.Size()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stat, err := os.Stat(wa.file)
			if err != nil {
				wa.logger.Error("stat failed", "file", wa.file, "error", err)
				continue
			}
			if stat.ModTime().Equal(lastMod) && stat.Size() == lastSize {
				continue
			}
			lastMod, lastSize = stat.ModTime(), stat.Size()
			wa.logger.Debug("change detected", "file", wa.file, "modtime", lastMod, "size", lastSize)
			if err := wa.renderOnce(render); err != nil {
				wa.logger.Error("render failed", "file", wa.file, "error", err)
			}
		}
	}
}

func (wa *Watcher) renderOnce(render Render) error {
	contents, err := os.ReadFile(wa.file)
	if err != nil {
		return fmt.Errorf("reading %s: %v", wa.file, err)
	}
	return render(contents, wa.stdout)
}
