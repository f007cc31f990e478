package theme

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the theme at path whenever it is written or replaced and
// hands the result to onChange. A file that fails to parse is logged and
// ignored. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(Theme)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// editors often save by rename, so watch the directory
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			t, err := Load(path)
			if err != nil {
				log.Printf("theme: reload failed: %v", err)
				continue
			}
			log.Printf("theme: reloaded %q", t.Name)
			onChange(t)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("theme: watch error: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
