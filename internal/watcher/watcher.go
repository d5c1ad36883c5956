// Package watcher watches the configuration file and triggers hot reloads.
// It supports cross-platform fsnotify event handling.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/chirpdeck/chirpdeck/internal/config"
)

const (
	// configReloadDebounce coalesces the burst of write events editors and
	// atomic-save tools emit for a single logical change.
	configReloadDebounce = 150 * time.Millisecond
)

// Watcher manages file watching for the configuration file.
type Watcher struct {
	configPath        string
	configReloadMu    sync.Mutex
	configReloadTimer *time.Timer
	lastConfigHash    string
	hashMu            sync.Mutex
	reloadCallback    func(*config.Config)
	watcher           *fsnotify.Watcher
}

// NewWatcher creates a new file watcher instance.
//
// Parameters:
//   - configPath: The path of the configuration file to watch
//   - reloadCallback: Invoked with the freshly parsed configuration on change
//
// Returns:
//   - *Watcher: A new watcher instance
//   - error: An error if the underlying fsnotify watcher cannot be created
func NewWatcher(configPath string, reloadCallback func(*config.Config)) (*Watcher, error) {
	fsw, errNewWatcher := fsnotify.NewWatcher()
	if errNewWatcher != nil {
		return nil, errNewWatcher
	}
	return &Watcher{
		configPath:     configPath,
		reloadCallback: reloadCallback,
		watcher:        fsw,
	}, nil
}

// Start begins watching the configuration file's directory. Watching the
// directory rather than the file keeps the watch alive across atomic
// rename-based saves.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.configPath)
	if errAdd := w.watcher.Add(dir); errAdd != nil {
		log.Errorf("failed to watch config directory %s: %v", dir, errAdd)
		return errAdd
	}
	log.Debugf("watching config file: %s", w.configPath)

	go w.processEvents(ctx)
	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() error {
	w.stopConfigReloadTimer()
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case errWatch, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("file watcher error: %v", errWatch)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	configOps := fsnotify.Write | fsnotify.Create | fsnotify.Rename
	if filepath.Clean(event.Name) != filepath.Clean(w.configPath) || event.Op&configOps == 0 {
		return
	}
	log.Debugf("file system event detected: %s %s", event.Op.String(), event.Name)
	w.scheduleConfigReload()
}

func (w *Watcher) stopConfigReloadTimer() {
	w.configReloadMu.Lock()
	if w.configReloadTimer != nil {
		w.configReloadTimer.Stop()
		w.configReloadTimer = nil
	}
	w.configReloadMu.Unlock()
}

func (w *Watcher) scheduleConfigReload() {
	w.configReloadMu.Lock()
	defer w.configReloadMu.Unlock()
	if w.configReloadTimer != nil {
		w.configReloadTimer.Stop()
	}
	w.configReloadTimer = time.AfterFunc(configReloadDebounce, func() {
		w.configReloadMu.Lock()
		w.configReloadTimer = nil
		w.configReloadMu.Unlock()
		w.reloadConfigIfChanged()
	})
}

func (w *Watcher) reloadConfigIfChanged() {
	data, err := os.ReadFile(w.configPath)
	if err != nil {
		log.Errorf("failed to read config file for hash check: %v", err)
		return
	}
	if len(data) == 0 {
		log.Debugf("ignoring empty config file write event")
		return
	}
	sum := sha256.Sum256(data)
	newHash := hex.EncodeToString(sum[:])

	w.hashMu.Lock()
	unchanged := w.lastConfigHash != "" && w.lastConfigHash == newHash
	w.hashMu.Unlock()
	if unchanged {
		log.Debugf("config file content unchanged (hash match), skipping reload")
		return
	}

	log.Infof("config file changed, reloading: %s", w.configPath)
	newConfig, errLoadConfig := config.LoadConfig(w.configPath)
	if errLoadConfig != nil {
		log.Errorf("failed to reload config: %v", errLoadConfig)
		return
	}

	w.hashMu.Lock()
	w.lastConfigHash = newHash
	w.hashMu.Unlock()

	if w.reloadCallback != nil {
		w.reloadCallback(newConfig)
	}
}
