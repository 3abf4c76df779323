// Package watch reports changes made to the item file by other processes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/churrascode/churrasco/internal/atomicfile"
	"github.com/fsnotify/fsnotify"
)

// Watcher signals when a single file changes. The parent directory is
// watched so that atomic replacements (rename onto the target) are seen.
type Watcher struct {
	path   string
	logger *slog.Logger
	fs     *fsnotify.Watcher
}

// New starts watching the directory containing path. The directory must
// exist.
func New(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, logger: logger, fs: fw}, nil
}

// Run delivers a signal for each batch of changes to the file. Signals are
// coalesced: a slow reader sees at most one pending signal. The channel is
// closed, and the underlying watcher released, once ctx is done.
func (w *Watcher) Run(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.fs.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !w.relevant(ev) {
					continue
				}
				w.logger.Debug("item file changed", "path", ev.Name, "op", ev.Op.String())
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.logger.Warn("file watcher error", "error", err)
			}
		}
	}()
	return out
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	name := filepath.Clean(ev.Name)
	if atomicfile.IsTemp(w.path, name) {
		return false
	}
	if name != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove)
}
