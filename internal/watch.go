package internal

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"go.uber.org/zap"
)

// ReportFunc receives the issues of a script after it was re-checked.
type ReportFunc func(filename string, issues []tt.Issue)

// Watcher re-checks scripts when they are written. Bursts of writes to the
// same file are coalesced into one check.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	report  ReportFunc
	delay   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	// checks started by a timer that have not reported yet
	running sync.WaitGroup
}

// NewWatcher creates a watcher that reports through report.
func (e *Engine) NewWatcher(report ReportFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	return &Watcher{
		engine:  e,
		watcher: fw,
		report:  report,
		delay:   100 * time.Millisecond,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Add watches every directory below root.
func (w *Watcher) Add(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Run dispatches file events until ctx is done or the watcher is closed.
// It returns once every check it started has reported.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopPending()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.engine.logger.Error("watch error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !strings.HasSuffix(event.Name, ScriptExt) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(w.delay)
		return
	}
	name := event.Name
	w.pending[name] = time.AfterFunc(w.delay, func() { w.check(name) })
}

func (w *Watcher) check(filename string) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	delete(w.pending, filename)
	w.running.Add(1)
	w.mu.Unlock()
	defer w.running.Done()

	issues, err := w.engine.Run(filename)
	if err != nil {
		w.engine.logger.Error("error checking script", zap.String("file", filename), zap.Error(err))
		return
	}
	w.engine.logger.Debug("re-checked script", zap.String("file", filename), zap.Int("issues", len(issues)))
	w.report(filename, issues)
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	w.stopped = true
	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	w.running.Wait()
}
