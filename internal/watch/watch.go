// Package watch re-runs the reduction pipeline whenever a watched log
// file changes.
//
// Writes are debounced so a burst of appends produces one run, and log
// rotation is followed by waiting for the file to reappear.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/NITESH-8/logsift/internal/logging"
)

// DefaultDebounce is the quiet period after the last write before a
// run is triggered.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc processes the watched file. It is invoked once at startup
// and again after each debounced change.
type RunFunc func(ctx context.Context, path string) error

// Options configures the watcher behavior.
type Options struct {
	FilePath     string        // Path to the log file
	Debounce     time.Duration // Quiet period before re-running; zero selects DefaultDebounce
	FollowRotate bool          // Whether to follow through log rotations
	InitialRun   bool          // Whether to run once before the first change
	Run          RunFunc       // Invoked for each (re-)run
}

// Watcher re-runs a processing function on file changes.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	log     logging.Logger
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts: opts,
		log:  logging.Named("watch"),
	}
}

// Run starts watching. It blocks until the context is cancelled or an
// error occurs. Run errors from the processing function are logged and
// watching continues; only watcher-level failures stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := os.Stat(w.opts.FilePath); err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	w.watcher = watcher
	defer w.watcher.Close()

	if err := w.watcher.Add(w.opts.FilePath); err != nil {
		return fmt.Errorf("failed to watch file: %w", err)
	}

	if w.opts.InitialRun {
		w.runOnce(ctx)
	}

	return w.watch(ctx)
}

// watch monitors the file and triggers runs after write bursts settle.
func (w *Watcher) watch(ctx context.Context) error {
	// The timer is armed on the first write and reset on each
	// subsequent one, so a run fires only after the burst settles.
	debounce := time.NewTimer(w.opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounce.C:
			armed = false
			w.runOnce(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write:
				if armed && !debounce.Stop() {
					<-debounce.C
				}
				debounce.Reset(w.opts.Debounce)
				armed = true

			case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
				if err := w.handleRotation(ctx); err != nil {
					return err
				}

			case event.Op&fsnotify.Chmod == fsnotify.Chmod:
				// Ignore chmod events
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// runOnce invokes the processing function, absorbing its error so the
// watch loop survives a bad run.
func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.opts.Run(ctx, w.opts.FilePath); err != nil {
		w.log.Error().Err(err).Str("file", w.opts.FilePath).Msg("run failed")
	}
}

// handleRotation waits for a rotated file to reappear and re-adds it
// to the watcher.
func (w *Watcher) handleRotation(ctx context.Context) error {
	if !w.opts.FollowRotate {
		return fmt.Errorf("file rotated")
	}

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rotated file to reappear")
		case <-ticker.C:
			if _, err := os.Stat(w.opts.FilePath); err != nil {
				continue
			}

			if err := w.watcher.Add(w.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch rotated file: %w", err)
			}

			w.log.Info().Str("file", w.opts.FilePath).Msg("following rotated file")
			w.runOnce(ctx)
			return nil
		}
	}
}
