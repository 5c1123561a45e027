package devserver

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

var errNotBuilt = errors.New("no successful build yet")

// SourceExt is the extension of files that trigger a rebuild.
const SourceExt = ".ferin"

// watchFiles watches the entry file's directory and rebuilds after a quiet
// period once any source file changes. Editors that save by renaming show up
// as Create events, so those count as changes too.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.cfg.Entry)
	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch source directory", "dir", dir, "error", err)
		<-ctx.Done()
		return nil
	}
	s.logger.Debug("watching", "dir", dir)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
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
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != SourceExt {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(s.cfg.Debounce, func() {
				if ctx.Err() != nil {
					return
				}
				s.logger.Debug("file changed, recompiling", "file", name)
				_ = s.Rebuild()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
