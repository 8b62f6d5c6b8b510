package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written or replaced.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so
// editors that save by renaming a temp file are noticed too.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to watch config %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to watch config %s: %w", path, err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to watch config %s: %w", path, err)
	}

	return &Watcher{path: abs, fs: fs}, nil
}

// Run calls fn with the reloaded config (or the load error) after each
// change, until ctx is done. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, fn func(TanksConfig, error)) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fn(LoadTanks(w.path))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			fn(DefaultTanksConfig(), fmt.Errorf("config watcher: %w", err))
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, fn func(TanksConfig, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
