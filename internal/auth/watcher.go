package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher re-imports the credentials file into a FileProvider
// whenever the consent flow rewrites it.
type FileWatcher struct {
	path     string
	provider *FileProvider
	logger   *slog.Logger
	debounce time.Duration
}

func NewFileWatcher(path string, provider *FileProvider, logger *slog.Logger) *FileWatcher {
	return &FileWatcher{
		path:     path,
		provider: provider,
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}
}

// Reload imports the file once. A missing file is not an error.
func (w *FileWatcher) Reload() error {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	if _, err := w.provider.Import(data); err != nil {
		return err
	}
	w.logger.Info("imported credentials", "path", w.path)
	return nil
}

// Run imports the file if present, then watches its directory until ctx
// is cancelled. Bursts of writes are coalesced.
func (w *FileWatcher) Run(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("credentials path: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	if err := w.Reload(); err != nil {
		w.logger.Warn("initial credentials import failed", "path", absPath, "err", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching credentials file", "path", absPath)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if p, _ := filepath.Abs(event.Name); p != absPath {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if err := w.Reload(); err != nil {
					w.logger.Error("reload credentials", "path", absPath, "err", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("credentials watcher", "err", err)
		}
	}
}
