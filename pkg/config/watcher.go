package config

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CollectionsWatcher watches a single collections file for changes and
// invokes onReload after a debounce interval, so a burst of writes from an
// editor's save produces one reload instead of several.
type CollectionsWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewCollectionsWatcher creates a watcher on path. Call Watch to start it.
func NewCollectionsWatcher(path string, debounce time.Duration, logger *slog.Logger) (*CollectionsWatcher, error) {
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}

	return &CollectionsWatcher{
		watcher:  w,
		logger:   logger,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, calling onReload (debounced) whenever the watched file
// changes, until Stop is called.
func (w *CollectionsWatcher) Watch(onReload func()) {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			w.debounceReload(onReload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("collections file watcher error", "error", err)

		case <-w.stopCh:
			return
		}
	}
}

func (w *CollectionsWatcher) debounceReload(onReload func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			onReload()
		}
	})
}

// Stop stops the watcher and waits for Watch to return.
func (w *CollectionsWatcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}
