package filesig

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// catalogWatcher reloads one catalog file whenever it is written or replaced
type catalogWatcher struct {
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// WatchCatalog reloads the catalog file at path each time it changes, until
// ctx is cancelled or the detector is closed. The parent directory is
// watched so that files replaced by rename are picked up. A reload that
// fails is logged and reported to OnCatalogChange callbacks; the previous
// catalog stays in use.
func (d *Detector) WatchCatalog(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &PathError{Op: "watch", Path: path, Err: err}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return &PathError{Op: "watch", Path: path, Err: err}
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return &PathError{Op: "watch", Path: path, Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	cw := &catalogWatcher{watcher: w, cancel: cancel, done: make(chan struct{})}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		cancel()
		w.Close()
		return &PathError{Op: "watch", Path: path, Err: ErrClosed}
	}
	d.watchers = append(d.watchers, cw)
	d.mu.Unlock()

	go d.runWatcher(ctx, cw, abs)

	d.logger.Info("watching catalog", "path", abs)
	return nil
}

func (d *Detector) runWatcher(ctx context.Context, cw *catalogWatcher, path string) {
	defer close(cw.done)
	defer cw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := d.LoadCatalogFile(path); err != nil {
				d.logger.Warn("catalog reload failed, keeping previous catalog", "path", path, "error", err)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("catalog watcher error", "path", path, "error", err)
		}
	}
}

// stop cancels the watch loop and waits for it to exit
func (cw *catalogWatcher) stop() {
	cw.once.Do(cw.cancel)
	<-cw.done
}
