package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// watchWorker turns fsnotify events on the slot directory into debounced change signals.
// The directory is watched rather than the file because atomic writes replace the inode.
type watchWorker struct {
	slot    *Slot
	pattern string
	watcher *fsnotify.Watcher
	out     chan struct{}
}

func newWatchWorker(slot *Slot) *watchWorker {
	return &watchWorker{
		slot:    slot,
		pattern: filepath.Base(slot.Path),
		out:     make(chan struct{}, 1),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.slot.Path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.slot.Path), err)
	}

	w.watcher = watcher
	w.slot.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.handleWatcherError(fmt.Errorf("watcher stopped: %w", err))
	}))
	return nil
}

// relevant filters out temp files and unrelated entries in the system directory.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	ok, err := doublestar.Match(w.pattern, filepath.Base(event.Name))
	return err == nil && ok
}

func (w *watchWorker) handleWatcherError(err error) {
	w.slot.config.Logger.Error("fsnotify error", "error", err)
	if w.slot.config.ErrorHandler != nil {
		w.slot.config.ErrorHandler(err)
	}
}

func (w *watchWorker) notify() {
	if w.slot.isOwnWrite() {
		w.slot.config.Logger.Debug("ignoring own write", "path", w.slot.Path)
		return
	}
	select {
	case w.out <- struct{}{}:
	default: // a signal is already pending
	}
}

// run is the main event loop of the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.slot.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.slot.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.slot.config.Logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.out)
	defer w.slot.setWatcherActive(false)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.slot.config.Logger.Debug("slot event", "name", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.slot.config.Debounce)
			} else {
				timer.Reset(w.slot.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.notify()

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
