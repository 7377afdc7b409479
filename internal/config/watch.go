package config

import (
	"context"
	"fmt"
	stdlog "log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/peterkuimelis/crdeck/internal/deck"
	"github.com/peterkuimelis/crdeck/internal/log"
)

// DataWatcher reloads an engine when a configured data file changes.
// Embedded data (empty paths) is never watched.
type DataWatcher struct {
	cfg     *Config
	engine  *deck.Engine
	logger  log.EventLogger
	watcher *fsnotify.Watcher
	files   map[string]bool
	// Reloaded, if set, is called after every reload attempt.
	Reloaded func(err error)
}

// NewDataWatcher starts watching the directories of the configured data
// files. Directories are watched rather than files so editors that replace
// a file on save are still seen. Catalog events from each reload go to
// logger, which may be nil.
func (c *Config) NewDataWatcher(engine *deck.Engine, logger log.EventLogger) (*DataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &DataWatcher{cfg: c, engine: engine, logger: logger, watcher: watcher, files: make(map[string]bool)}
	for _, path := range []string{c.Data.Cards, c.Data.Decks} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		w.files[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return w, nil
}

// Run handles file events until ctx is cancelled, then closes the watcher.
func (w *DataWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			stdlog.Printf("data watcher: %v", err)
		}
	}
}

// reload keeps the previous data when the new files do not load or hold
// no cards.
func (w *DataWatcher) reload() {
	catalog, library, err := deck.LoadData(w.cfg.Data.Cards, w.cfg.Data.Decks, w.logger)
	if err == nil && catalog.Len() == 0 {
		// A file caught mid-write parses as empty.
		err = deck.ErrEmptyCatalog
	}
	if err == nil {
		err = w.engine.Reload(catalog, library)
	}
	if err != nil {
		stdlog.Printf("reload data: %v; keeping previous data", err)
	} else {
		stdlog.Printf("reloaded %d cards and %d known decks", catalog.Len(), library.Len())
	}
	if w.Reloaded != nil {
		w.Reloaded(err)
	}
}
