package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce is how long Watch waits for writes to settle before reloading.
const ReloadDebounce = 200 * time.Millisecond

// Watch reloads the catalog at path whenever it changes, until ctx is
// cancelled. The parent directory is watched so editors that replace the
// file atomically are seen. onLoad receives every result that produced
// stars, including truncated ones; failed loads are logged and skipped.
func Watch(ctx context.Context, path string, f Format, logger *slog.Logger, onLoad func(*Result)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("catalog watcher: started", slog.String("path", abs), slog.String("format", f.Name()))

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(ReloadDebounce)
			fire = timer.C
		} else {
			timer.Reset(ReloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("catalog watcher: stopped")
			return nil

		case <-fire:
			timer = nil
			fire = nil

			res, err := LoadFile(abs, f)
			if err != nil {
				logger.Warn("catalog watcher: reload failed",
					slog.String("path", abs),
					slog.String("error", err.Error()))
			}
			if res == nil {
				continue
			}
			logger.Debug("catalog watcher: reloaded",
				slog.Int("stars", len(res.Stars)),
				slog.Int("skipped", res.Skipped))
			onLoad(res)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
