// Package watcher minifies files as they are saved.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"minifyall/internal/clock"
	"minifyall/internal/core"
	"minifyall/internal/logger"
	"minifyall/internal/parser"
	"minifyall/pkg/document"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// FileMinifier is the part of core.Service the watcher needs.
type FileMinifier interface {
	Accepts(path string) bool
	MinifyFile(ctx context.Context, path string, target core.Target) (*core.Result, error)
}

// Options configures a Watcher.
type Options struct {
	Target   core.Target
	Debounce time.Duration
	Clock    clock.Clock
}

// Watcher listens for file saves in a set of directories and minifies each
// accepted file once its writes have settled for the debounce period.
type Watcher struct {
	svc  FileMinifier
	opts Options
	fsw  *fsnotify.Watcher

	mu      sync.Mutex
	ctx     context.Context
	pending map[string]*pendingFire
	handled map[string]string // path -> hash of the content last minified or written

	// fireMu runs one minification at a time so a late timer and its
	// replacement never work on the same file together.
	fireMu sync.Mutex

	resultsCh chan *core.Result
	errorCh   chan error
	stopCh    chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

// New creates a Watcher. Call Add for each directory, then Start.
func New(svc FileMinifier, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		svc:       svc,
		opts:      opts,
		fsw:       fsw,
		ctx:       context.Background(),
		pending:   make(map[string]*pendingFire),
		handled:   make(map[string]string),
		resultsCh: make(chan *core.Result, 16),
		errorCh:   make(chan error, 16),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Add watches dir and its subdirectories, skipping hidden ones and node_modules.
func (w *Watcher) Add(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		logger.Debug("watching directory", "dir", path)
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// Start processes file events in a background goroutine until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.sendErr(err)
			}
		}
	}()
}

// Stop cancels pending minifications and releases the file watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		for path, p := range w.pending {
			p.timer.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
		_ = w.fsw.Close()
	})
}

// Results returns a channel of completed minifications.
func (w *Watcher) Results() <-chan *core.Result {
	return w.resultsCh
}

// Errors returns a channel of errors from the file watcher and the minifier.
func (w *Watcher) Errors() <-chan error {
	return w.errorCh
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !skipDir(info.Name()) {
				if err := w.Add(ev.Name); err != nil {
					w.sendErr(err)
				}
			}
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if !w.svc.Accepts(ev.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.schedule(ev.Name)
}

// pendingFire is a debounce timer for one path. Its identity tells a late
// callback apart from the timer that replaced it.
type pendingFire struct {
	timer clock.Timer
}

// schedule pushes back the pending minification of path. A timer that can no
// longer be stopped has already started firing, so a new one takes its place.
// Callers hold w.mu.
func (w *Watcher) schedule(path string) {
	if p, ok := w.pending[path]; ok && p.timer.Stop() {
		p.timer.Reset(w.opts.Debounce)
		return
	}
	p := &pendingFire{}
	p.timer = w.opts.Clock.AfterFunc(w.opts.Debounce, func() { w.fire(path, p) })
	w.pending[path] = p
}

func (w *Watcher) fire(path string, p *pendingFire) {
	w.fireMu.Lock()
	defer w.fireMu.Unlock()

	w.mu.Lock()
	if w.pending[path] == p {
		delete(w.pending, path)
	}
	ctx := w.ctx
	last, seen := w.handled[path]
	w.mu.Unlock()

	select {
	case <-w.stopCh:
		return
	default:
	}

	doc, err := parser.ParseDocument(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.sendErr(err)
		}
		return
	}
	hash := doc.Hash()
	if seen && hash == last {
		logger.Debug("skipping unchanged file", "path", path)
		return
	}

	res, err := w.svc.MinifyFile(ctx, path, w.opts.Target)
	if err != nil {
		w.sendErr(err)
		return
	}
	if res.OutputPath == path {
		hash = document.HashText(res.Output)
	}
	w.mu.Lock()
	w.handled[path] = hash
	w.mu.Unlock()

	select {
	case w.resultsCh <- res:
	case <-w.stopCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errorCh <- err:
	default:
		logger.Warn("dropping watcher error", "err", err)
	}
}

// Wait blocks until the event loop started by Start has returned.
func (w *Watcher) Wait() {
	<-w.done
}
