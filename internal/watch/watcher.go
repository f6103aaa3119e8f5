// Package watch reloads the portfolio when its source files change. A
// Watcher turns filesystem events into debounced Change values; a Reloader
// rebuilds the corpus and publishes it as an immutable snapshot.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/logging"
)

// DefaultDebounce is how long a file must be quiet before its change is emitted.
const DefaultDebounce = 100 * time.Millisecond

// Change is one debounced file change.
type Change struct {
	File    string
	Removed bool
}

// Options selects what a Watcher observes.
type Options struct {
	// Dirs are watched for files whose extension is in Exts.
	Dirs []string
	Exts []string
	// Files are watched individually, through their parent directory.
	Files    []string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher monitors content directories using fsnotify.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	changes  chan Change
	stop     chan struct{}
	done     chan struct{}
	watcher  *fsnotify.Watcher
	dirs     map[string]bool
	files    map[string]bool
	exts     []string
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher creates a watcher for opts. Call Start to begin watching.
func NewWatcher(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
		debounce: opts.Debounce,
		logger:   logging.OrNop(opts.Logger),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, d := range opts.Dirs {
		w.dirs[filepath.Clean(d)] = true
	}
	for _, f := range opts.Files {
		w.files[filepath.Clean(f)] = true
	}
	for _, e := range opts.Exts {
		w.exts = append(w.exts, strings.ToLower(e))
	}

	ch := make(chan Change, 16)
	w.Changes = ch
	w.changes = ch
	return w, nil
}

// Start registers the watched directories and begins emitting changes. A
// directory that does not exist yet is skipped with a warning.
func (w *Watcher) Start() error {
	targets := make(map[string]bool, len(w.dirs)+len(w.files))
	for d := range w.dirs {
		targets[d] = true
	}
	for f := range w.files {
		targets[filepath.Dir(f)] = true
	}

	for _, dir := range sortedKeys(targets) {
		if err := w.watcher.Add(dir); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				w.logger.Warn("watch target missing", zap.String("dir", dir))
				continue
			}
			return err
		}
		w.logger.Debug("watching", zap.String("dir", dir))
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for _, file := range sortedKeys(pending) {
				if now.Sub(pending[file]) < w.debounce {
					continue
				}
				delete(pending, file)
				if !w.emit(file) {
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// relevant reports whether name is a watched file or has a watched
// extension inside a watched directory.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return slices.Contains(w.exts, strings.ToLower(filepath.Ext(name)))
}

func (w *Watcher) emit(file string) bool {
	_, err := os.Stat(file)
	c := Change{File: file, Removed: errors.Is(err, os.ErrNotExist)}
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
