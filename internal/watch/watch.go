// Package watch reports edits to a fixed set of files. Directories are
// watched rather than the files themselves so editors that save by
// renaming a temporary file over the original are still seen.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultSettle = 100 * time.Millisecond

type Watcher struct {
	fs     *fsnotify.Watcher
	files  map[string]struct{}
	settle time.Duration
	logger *zap.Logger
}

func New(logger *zap.Logger, paths ...string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		fs:     fw,
		files:  make(map[string]struct{}, len(paths)),
		settle: DefaultSettle,
		logger: logger,
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %q: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done or the watcher is closed, calling onChange
// once per changed file after each burst settles. onChange runs on the
// Run goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			path, ok := w.relevant(event)
			if !ok {
				continue
			}
			w.logger.Debug("watched file changed", zap.String("path", path), zap.Stringer("op", event.Op))
			pending[path] = struct{}{}
			timer.Reset(w.settle)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case <-timer.C:
			for _, path := range sortedKeys(pending) {
				onChange(path)
			}
			clear(pending)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	_, ok := w.files[abs]
	return abs, ok
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
