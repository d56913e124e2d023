// Package watcher delivers debounced batches of file changes below a set of
// directory trees.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grindlemire/go-markup/internal/logging"
)

// Op is the kind of a change.
type Op int

const (
	Created Op = iota
	Modified
	Removed
	Renamed
)

func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is one changed file. Within a batch each path appears once, with
// the last change seen for it.
type Event struct {
	Op   Op
	Path string
}

// Filter reports whether changes to path are of interest.
type Filter func(path string) bool

// Handler processes a batch of changes. An error is logged and watching
// continues.
type Handler func(ctx context.Context, events []Event) error

// Watcher watches directory trees for file changes.
type Watcher struct {
	fs      *fsnotify.Watcher
	delay   time.Duration
	filters []Filter
	log     logging.Logger

	// pending changes of the current batch, keyed by path
	pending map[string]Event
}

// New creates a watcher that waits for delay without new changes before
// delivering a batch. Only paths accepted by every filter are delivered.
// A nil log discards log output.
func New(delay time.Duration, log logging.Logger, filters ...Filter) (*Watcher, error) {
	if log == nil {
		log = logging.Nop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:      w,
		delay:   delay,
		filters: filters,
		log:     log.WithComponent("watcher"),
		pending: make(map[string]Event),
	}, nil
}

// AddRecursive watches root and every directory below it, skipping hidden
// directories and vendor.
func (w *Watcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers batches to handler until ctx is done, then closes the
// watcher. Handler calls are serialized.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				timer.Reset(w.delay)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, err, "file watcher error")

		case <-timer.C:
			batch := w.flush()
			if len(batch) == 0 {
				continue
			}
			w.log.Debug(ctx, "delivering changes", "count", len(batch))
			if err := handler(ctx, batch); err != nil {
				w.log.Error(ctx, err, "change handler failed")
			}
		}
	}
}

// handle records ev and reports whether the batch changed.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			return w.addCreatedDir(ev.Name)
		}
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = Created
	case ev.Has(fsnotify.Write):
		op = Modified
	case ev.Has(fsnotify.Remove):
		op = Removed
	case ev.Has(fsnotify.Rename):
		op = Renamed
	default:
		return false
	}
	return w.record(Event{Op: op, Path: ev.Name})
}

// addCreatedDir watches a new directory tree. Files written before the
// watch was added are reported as created.
func (w *Watcher) addCreatedDir(dir string) bool {
	if skipDir(filepath.Base(dir)) {
		return false
	}
	if err := w.AddRecursive(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.log.Warn(context.Background(), err, "watching new directory", "dir", dir)
	}

	var changed bool
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.record(Event{Op: Created, Path: path}) {
			changed = true
		}
		return nil
	})
	return changed
}

func (w *Watcher) record(ev Event) bool {
	for _, accept := range w.filters {
		if !accept(ev.Path) {
			return false
		}
	}
	w.pending[ev.Path] = ev
	return true
}

// flush returns the pending batch sorted by path and starts a new one.
func (w *Watcher) flush() []Event {
	batch := make([]Event, 0, len(w.pending))
	for _, ev := range w.pending {
		batch = append(batch, ev)
	}
	clear(w.pending)
	slices.SortFunc(batch, func(a, b Event) int {
		return strings.Compare(a.Path, b.Path)
	})
	return batch
}

// ExtensionFilter accepts paths ending in ext, which may be compound
// such as .html.gsx.
func ExtensionFilter(ext string) Filter {
	return func(path string) bool {
		return strings.HasSuffix(path, ext)
	}
}

// SuffixExcludeFilter rejects paths ending in suffix.
func SuffixExcludeFilter(suffix string) Filter {
	return func(path string) bool {
		return !strings.HasSuffix(path, suffix)
	}
}
