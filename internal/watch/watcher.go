// Package watch reports changes made to a store file by other processes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/bookshelf/internal/adapters/fs"
	logAdapter "github.com/bft-labs/bookshelf/internal/adapters/log"
	"github.com/bft-labs/bookshelf/internal/catalog"
	"github.com/bft-labs/bookshelf/internal/domain"
	"github.com/bft-labs/bookshelf/internal/ports"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Change is the catalog as read after a modification of the store file.
type Change struct {
	Books []domain.Book
	// LoadErr is set when the file could not be read as a catalog.
	LoadErr error
	At      time.Time
}

// Watcher reloads the store file whenever it changes on disk. It never writes.
type Watcher struct {
	path     string
	logger   ports.Logger
	debounce time.Duration
	onChange func(Change)

	mu    sync.Mutex
	timer *time.Timer

	reloadMu sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a Watcher for the store file at path. onChange is called from a
// timer goroutine, never concurrently with itself.
func New(path string, onChange func(Change), opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		logger:   logAdapter.NewNoopLogger(),
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory of the store file until ctx is canceled.
// The current contents are reported once before watching starts.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching store", ports.String("path", w.path))

	w.reload(ctx)

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			w.logger.Debug("store event", ports.String("op", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.reload(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) reload(ctx context.Context) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	// No quarantine: the watcher only reads.
	c, err := catalog.Open(ctx, fs.NewStoreFile(w.path), catalog.WithLogger(w.logger))
	if err != nil {
		w.logger.Error("reload store", ports.Err(err))
		w.onChange(Change{LoadErr: err, At: time.Now()})
		return
	}
	w.onChange(Change{Books: c.List(), LoadErr: c.LoadError(), At: time.Now()})
}
