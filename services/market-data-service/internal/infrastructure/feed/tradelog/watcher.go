package tradelog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
)

// Watcher signals when the trade log changes. It watches the parent directory so
// that a log created or replaced after startup is still picked up.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	notify  chan struct{}
	logger  logger.Interface
}

var _ liveDomain.Notifier = (*Watcher)(nil)

// NewWatcher creates a watcher for path.
func NewWatcher(path string, logger logger.Interface) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		path:    abs,
		watcher: fsWatcher,
		notify:  make(chan struct{}, 1),
		logger:  logger,
	}, nil
}

// Notify returns the change channel. Bursts of writes coalesce into one signal.
func (w *Watcher) Notify() <-chan struct{} {
	return w.notify
}

// Start forwards file events until ctx is done or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.InfoContext(ctx, "watching trade log",
		logger.NewField("action", "trade_log_watch"),
		logger.NewField("path", w.path),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.notify <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(err, logger.NewField("action", "trade_log_watch"))
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
