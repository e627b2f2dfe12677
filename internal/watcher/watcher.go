// Package watcher provides polling-based change detection for a source tree.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ctxhub/internal/logging"
)

// ChangeHandler is called after changes settle through the debounce window.
type ChangeHandler func()

// Config contains watcher configuration
type Config struct {
	PollInterval time.Duration
	DebounceMs   int
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Second,
		DebounceMs:   1500,
	}
}

// Watcher polls a source tree and fires a handler when its fingerprint
// changes. Each poll pass is a cheap stat-only walk; the handler itself runs
// the full rescan.
type Watcher struct {
	root      string
	config    Config
	logger    *logging.Logger
	handler   ChangeHandler
	debouncer *Debouncer
	lastState fingerprint
}

// fingerprint condenses the tree into a comparable snapshot.
type fingerprint struct {
	fileCount int
	latestMod int64
	totalSize int64
}

// New creates a Watcher over the given source root.
func New(root string, cfg Config, logger *logging.Logger, handler ChangeHandler) *Watcher {
	return &Watcher{
		root:      root,
		config:    cfg,
		logger:    logger,
		handler:   handler,
		debouncer: NewDebouncer(time.Duration(cfg.DebounceMs) * time.Millisecond),
	}
}

// Run polls until the context is cancelled. The initial fingerprint is taken
// without firing the handler.
func (w *Watcher) Run(ctx context.Context) {
	w.lastState = w.snapshot()

	w.logger.Info("Watching for changes", map[string]interface{}{
		"root":     w.root,
		"interval": w.config.PollInterval.String(),
	})

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()
	defer w.debouncer.Cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := w.snapshot()
			if current != w.lastState {
				w.lastState = current
				w.logger.Debug("Change detected", map[string]interface{}{
					"files": current.fileCount,
				})
				w.debouncer.Trigger(w.handler)
			}
		}
	}
}

// snapshot walks the tree collecting a stat-only fingerprint of Swift files.
// Walk errors leave partial state; a transient error simply looks like a
// change and costs one extra rescan.
func (w *Watcher) snapshot() fingerprint {
	var fp fingerprint

	_ = filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // keep polling through transient errors
		}
		if info.IsDir() || !strings.HasSuffix(path, ".swift") {
			return nil
		}
		fp.fileCount++
		fp.totalSize += info.Size()
		if mod := info.ModTime().UnixNano(); mod > fp.latestMod {
			fp.latestMod = mod
		}
		return nil
	})

	return fp
}
