package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "gooze.dev/pkg/mutconf/internal/model"
)

// DefaultWatchDebounce collapses the burst of events editors emit on save.
const DefaultWatchDebounce = 200 * time.Millisecond

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch returns a channel that receives a value after path is written,
	// created or replaced. The channel is closed once ctx is done.
	Watch(ctx context.Context, path m.Path) (<-chan struct{}, error)
}

// FSNotifyWatcher implements FileWatcher on top of fsnotify.
type FSNotifyWatcher struct {
	debounce time.Duration
}

// NewFSNotifyWatcher constructs a watcher that waits debounce after the last
// event before signalling.
func NewFSNotifyWatcher(debounce time.Duration) *FSNotifyWatcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	return &FSNotifyWatcher{debounce: debounce}
}

// Watch implements FileWatcher. The parent directory is watched rather than
// the file itself so atomic replace-on-save keeps being observed.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path m.Path) (<-chan struct{}, error) {
	target, err := filepath.Abs(string(path))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	changes := make(chan struct{}, 1)

	go w.loop(ctx, watcher, target, changes)

	return changes, nil
}

func (w *FSNotifyWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, target string, changes chan<- struct{}) {
	defer close(changes)
	defer func() { _ = watcher.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			slog.Debug("descriptor file event", "path", target, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("file watcher error", "path", target, "error", err)
		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}
}
