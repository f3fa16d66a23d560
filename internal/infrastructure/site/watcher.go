package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Holder when .html files under dir change. Bursts of
// events are coalesced into a single reload once they settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	holder   *Holder
	dir      string
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(dir string, holder *Holder, logger *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		holder:   holder,
		dir:      dir,
		debounce: 300 * time.Millisecond,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 3)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".html") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("site changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			last = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("site watcher", zap.Error(err))

		case <-ticker.C:
			if last.IsZero() || time.Since(last) < w.debounce {
				continue
			}
			last = time.Time{}
			if err := w.holder.Reload(); err != nil {
				w.logger.Error("site reload failed, keeping previous pages", zap.Error(err))
			}
		}
	}
}
