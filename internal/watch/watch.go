// Package watch rebuilds a book whenever its sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bookhooks/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Ignore lists directories whose events never trigger a rebuild, such as
	// an output directory inside the book.
	Ignore []string
	Logger *slog.Logger
}

// Watcher watches a book directory tree.
type Watcher struct {
	root   string
	opts   Options
	fsw    *fsnotify.Watcher
	ignore []string
}

// New starts watching dir and every directory below it. Changes made after New
// returns are seen by Run.
func New(dir string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, opts: opts}
	for _, ig := range opts.Ignore {
		if abs, err := filepath.Abs(ig); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w.fsw = fsw
	if err := w.addDirsRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run calls rebuild after each settled burst of changes until ctx is done.
// Rebuilds run one at a time on a single worker; changes arriving during a
// rebuild queue at most one more. A failing rebuild is logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	defer func() { _ = w.fsw.Close() }()

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := debouncer(w.opts.Debounce, rebuildReq)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				w.opts.Logger.Info("Change detected; rebuilding book", logfields.Path(w.root))
				if err := rebuild(ctx); err != nil {
					w.opts.Logger.Warn("Rebuild failed", logfields.Error(err))
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, trigger)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// debouncer returns a trigger that requests a rebuild once no trigger has
// fired for d, and a stop function cancelling any pending request.
func debouncer(d time.Duration, rebuildReq chan<- struct{}) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (w *Watcher) handleEvent(ev fsnotify.Event, trigger func()) {
	if w.ignored(ev.Name) || shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	w.opts.Logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (w.ignored(path) || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.opts.Logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, which also covers .DS_Store and editor lock files.
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
