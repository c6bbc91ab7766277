package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

// DefaultDebounce batches bursts of file events, such as a sync tool
// rewriting a whole book directory, into one invalidation.
const DefaultDebounce = 500 * time.Millisecond

// Invalidate drops every cached chapter and song.
func (h *Handle) Invalidate() {
	if h.bible != nil {
		h.bible.Clear()
	}
	if h.hymnal != nil {
		h.hymnal.Clear()
	}
}

// Watch clears the handle's caches whenever files under root change. It
// blocks until ctx is done. New directories are watched as they appear.
func (h *Handle) Watch(ctx context.Context, root string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addRecursive(w, root); err != nil {
		return err
	}
	logging.CorpusEvent("watch", "", root)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	pending := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(w, event.Name)
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			pending++
			timer.Reset(debounce)
		case <-timer.C:
			h.Invalidate()
			logging.CorpusEvent("reload", "", root, "events", pending)
			pending = 0
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warn("corpus watch error", "root", root, "error", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}
