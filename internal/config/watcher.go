package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"map-annotator/internal/applog"
)

// Watcher reloads the config file when it changes on disk and hands each
// valid result to the OnChange callback. Invalid edits are logged and
// ignored.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(*Config)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path. Events within debounce of each other
// trigger a single reload.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	return &Watcher{path: path, debounce: debounce}
}

// OnChange sets the callback. It is invoked from the watcher goroutine;
// UI code must hop back to its own thread.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.onChange = fn
}

// Start begins watching. The parent directory is watched so that editors
// that replace the file on save are handled.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("config watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.watchLoop(fw, w.stopCh, w.doneCh)
	return nil
}

// Stop ends watching and waits for the goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw, stop, done := w.watcher, w.stopCh, w.doneCh
	w.watcher = nil
	w.mu.Unlock()
	if fw == nil {
		return
	}
	close(stop)
	fw.Close()
	<-done
}

func (w *Watcher) watchLoop(fw *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)
	log := applog.WithComponent("config")
	target := filepath.Clean(w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher: error", "error", err)
		case <-fire:
			fire = nil
			if _, err := os.Stat(w.path); err != nil {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				log.Warn("Watcher: reload rejected", "path", w.path, "error", err)
				continue
			}
			log.Info("Watcher: config reloaded", "path", w.path)
			if w.onChange != nil {
				w.onChange(cfg)
			}
		}
	}
}
