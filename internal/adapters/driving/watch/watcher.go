// Package watch uploads files as they appear in a directory.
//
// A Watcher observes one directory (not its subdirectories) with fsnotify.
// Create and write events are debounced per path, so an editor saving a
// file in several writes produces a single upload once the file settles.
// Hidden files and directories are ignored.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is uploaded.
const DefaultDebounce = 500 * time.Millisecond

// ErrNotDirectory is returned when the watched path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Outcome reports the result of one upload.
type Outcome struct {
	// Path is the file that was uploaded.
	Path string

	// Document is the server's record, nil on failure.
	Document *domain.Document

	// Err is the upload error, nil on success.
	Err error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithHandler sets the function called after every upload attempt.
func WithHandler(fn func(Outcome)) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.handle = fn
		}
	}
}

// Watcher uploads settled files from a directory.
type Watcher struct {
	dir      string
	docs     driving.DocumentService
	debounce time.Duration
	handle   func(Outcome)
}

// settled is sent by a debounce timer when its path went quiet.
type settled struct {
	path string
	gen  uint64
}

// New creates a watcher for dir that uploads through docs.
func New(dir string, docs driving.DocumentService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		docs:     docs,
		debounce: DefaultDebounce,
		handle:   func(Outcome) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is cancelled. It returns an error only when the
// directory cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	if w.docs == nil {
		return errors.New("document service not configured")
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: %w", w.dir, ErrNotDirectory)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new files", w.dir)

	ready := make(chan settled)
	timers := make(map[string]*time.Timer)
	gens := make(map[string]uint64)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopped watching %s", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if isHidden(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				logger.Debug("watch: %s %s", event.Op, event.Name)
				gens[event.Name]++
				s := settled{path: event.Name, gen: gens[event.Name]}
				if t, ok := timers[event.Name]; ok {
					t.Stop()
				}
				timers[event.Name] = time.AfterFunc(w.debounce, func() {
					select {
					case ready <- s:
					case <-ctx.Done():
					}
				})
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				if t, ok := timers[event.Name]; ok {
					t.Stop()
					delete(timers, event.Name)
				}
				gens[event.Name]++
			}

		case s := <-ready:
			if gens[s.path] != s.gen {
				continue
			}
			delete(timers, s.path)
			delete(gens, s.path)
			w.upload(ctx, s.path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)
		}
	}
}

func (w *Watcher) upload(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}

	doc, err := w.docs.UploadFile(ctx, path)
	if err != nil {
		logger.Warn("watch: upload %s failed: %v", path, err)
	}
	w.handle(Outcome{Path: path, Document: doc, Err: err})
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
