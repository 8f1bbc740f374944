package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/empdash/pkg/logger"
)

const defaultDebounce = 100 * time.Millisecond

// Watch calls onChange each time the file at path is written or replaced,
// until ctx is cancelled. The parent directory is watched so editors that
// save by rename are still seen.
func Watch(ctx context.Context, path string, onChange func(context.Context), opts ...WatchOption) error {
	o := watchOptions{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" || onChange == nil {
		return fmt.Errorf("%w: path and callback are required", ErrInvalidWatchTarget)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidWatchTarget, path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidWatchTarget, path, err)
	}

	log := logger.Named("repository.watch")
	log.Info(ctx, "watching dataset for changes", logger.String("path", target))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
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
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug(ctx, "dataset changed", logger.String("op", event.Op.String()))
			if o.debounce == 0 {
				onChange(ctx)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				timer.Reset(o.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "dataset watcher error", logger.Error(err))
		}
	}
}
