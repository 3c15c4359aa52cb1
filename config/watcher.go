package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"sidepane/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write before
// reloading. Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads the config file when it changes on disk and delivers each
// valid config on Updates. Invalid edits are logged and skipped so a typo
// never tears down a running layout.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	pending   bool
	lastEvent time.Time

	updates chan *Config
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: debounce,
		updates:  make(chan *Config, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates delivers reloaded configs. Only the newest unread config is kept.
// The channel is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching. The directory is watched rather than the file so
// that editors which replace the file on save are still seen. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	log.InfoLog.Printf("watching config file %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		log.ErrorLog.Printf("error closing config watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)

	ticker := time.NewTicker(w.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.ErrorLog.Printf("config watcher error: %v", err)

		case <-ticker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.pending = true
	w.lastEvent = time.Now()
}

func (w *Watcher) processDebounced() {
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		return
	}
	w.pending = false

	cfg, err := LoadConfigFrom(w.path)
	if err != nil {
		log.WarningLog.Printf("ignoring config change: %v", err)
		return
	}
	log.InfoLog.Printf("reloaded config from %s", w.path)

	// Replace any config the consumer has not read yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
