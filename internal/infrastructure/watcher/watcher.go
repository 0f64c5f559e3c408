package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/media"
)

// Handler processes one recording found in the watched directory
type Handler func(ctx context.Context, path string) error

// Watcher monitors a directory for new recordings and hands each supported
// file to the handler, one at a time
type Watcher struct {
	dir     string
	handler Handler
	settle  time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// Option configures a Watcher
type Option func(*Watcher)

// WithSettleDelay waits this long after a create event before handing the
// file over, so copies in progress can finish
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// New creates a watcher for dir
func New(dir string, handler Handler, logger *zap.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		dir:     dir,
		handler: handler,
		settle:  time.Second,
		logger:  logger,
		seen:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Backfill handles recordings already present in the directory, in name order
func (w *Watcher) Backfill(ctx context.Context) error {
	entries, err := filepath.Glob(filepath.Join(w.dir, "*"))
	if err != nil {
		return err
	}
	sort.Strings(entries)
	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.handle(ctx, e)
	}
	return nil
}

// Run watches until ctx is done. Files are handled sequentially in arrival
// order.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	if w.logger != nil {
		w.logger.Info("👀 Watching for recordings", zap.String("dir", w.dir))
	}

	queue := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range queue {
			if !w.wait(ctx) {
				return
			}
			w.handle(ctx, path)
		}
	}()
	defer func() {
		close(queue)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Create|fsnotify.Rename) == 0 || !media.IsSupported(evt.Name) {
				continue
			}
			select {
			case queue <- evt.Name:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) wait(ctx context.Context) bool {
	if w.settle <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-time.After(w.settle):
		return true
	case <-ctx.Done():
		return false
	}
}

// handle runs the handler once per path. Failures are logged and the path
// is not retried.
func (w *Watcher) handle(ctx context.Context, path string) {
	if !media.IsSupported(path) {
		return
	}

	w.mu.Lock()
	if w.seen[path] {
		w.mu.Unlock()
		return
	}
	w.seen[path] = true
	w.mu.Unlock()

	if err := w.handler(ctx, path); err != nil && w.logger != nil {
		w.logger.Error("❌ Failed to process recording",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
