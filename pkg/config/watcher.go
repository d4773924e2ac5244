package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay is how long a [Watcher] waits for writes to settle
// before it reloads.
const DefaultWatchDelay = 100 * time.Millisecond

// WatcherOpt configures a [Watcher].
type WatcherOpt func(*Watcher)

// WithWatchDelay sets the delay between the last change event and the reload.
func WithWatchDelay(d time.Duration) WatcherOpt {
	return func(w *Watcher) {
		w.delay = d
	}
}

// WithWatchLogger sets the logger. Defaults to [slog.Default].
func WithWatchLogger(l *slog.Logger) WatcherOpt {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithLoaderOpts sets the options used for every reload.
func WithLoaderOpts(opts ...LoaderOpt) WatcherOpt {
	return func(w *Watcher) {
		w.loaderOpts = opts
	}
}

// Watcher reloads a configuration file whenever it changes.
//
// The parent directory is watched rather than the file, so that editors that
// replace the file on save are handled.
type Watcher struct {
	watcher    *fsnotify.Watcher
	validator  Validator
	log        *slog.Logger
	path       string
	loaderOpts []LoaderOpt
	delay      time.Duration
}

// NewWatcher creates a [Watcher] for the configuration file at path.
func NewWatcher(path string, v Validator, opts ...WatcherOpt) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:   fw,
		validator: v,
		log:       slog.Default(),
		path:      absPath,
		delay:     DefaultWatchDelay,
	}
	for _, opt := range opts {
		opt(w)
	}

	err = fw.Add(filepath.Dir(absPath))
	if err != nil {
		_ = fw.Close()

		return nil, fmt.Errorf("add path to watcher: %w", err)
	}

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch calls fn with the reloaded configuration, or the error that
// prevented it from loading, after each change to the file. It blocks
// until ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, fn func(*Config, error)) {
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(evt.Name) != w.path {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
				continue
			}

			w.log.Debug("configuration file changed",
				slog.String("path", w.path),
				slog.String("op", evt.Op.String()),
			)

			settle = time.After(w.delay)

		case <-settle:
			settle = nil

			cfg, err := Load(w.path, w.validator, w.loaderOpts...)
			if err != nil {
				w.log.Debug("reload configuration", slog.Any("error", err))
			}

			fn(cfg, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			fn(nil, fmt.Errorf("watch configuration: %w", err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		return fmt.Errorf("close fsnotify watcher: %w", err)
	}

	return nil
}
