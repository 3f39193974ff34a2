package extract

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 500 * time.Millisecond

// Watcher monitors a directory tree and triggers re-extraction when
// matching files change. Events are debounced so a burst of writes (an
// editor save, a git checkout) results in a single callback.
type Watcher struct {
	extractor *Extractor
	watcher   *fsnotify.Watcher
	onChange  func(paths []string)

	pending map[string]struct{}
	timer   *time.Timer
}

// NewWatcher creates a Watcher over the extractor's root directory.
// onChange is invoked with the batch of root-relative paths that changed
// since the previous callback.
func NewWatcher(extractor *Extractor, onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		extractor: extractor,
		watcher:   fsw,
		onChange:  onChange,
		pending:   make(map[string]struct{}),
	}

	if err := w.addRecursive(extractor.opts.RootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive registers every non-ignored directory under root. fsnotify
// watches are not recursive on their own.
func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && w.extractor.discovery.Ignored(rel) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Watch blocks, dispatching debounced change batches until the context is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	flush := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, flush)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			_ = err // transient watch errors are not fatal

		case <-flush:
			w.dispatch()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, flush chan struct{}) {
	// New directories must be added to the watch set as they appear.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	rel, err := filepath.Rel(w.extractor.opts.RootDir, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	if w.extractor.discovery.Ignored(rel) || !w.extractor.discovery.Matches(rel) {
		return
	}

	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.extractor.Invalidate(event.Name)
	}

	w.pending[rel] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceInterval, func() {
		select {
		case flush <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) dispatch() {
	if len(w.pending) == 0 {
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.onChange(paths)
}
