package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the burst of write events editors and
// deploy tools emit for a single save.
const defaultDebounce = 500 * time.Millisecond

// Watcher watches one route-table file and reloads it on change.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(*RouteTable, error)
	done     chan struct{}
}

// Watch starts watching the route table at path. After each change has
// settled for the debounce window, the file is reloaded and onChange is
// called with the result: the fresh table, or the load error. The caller
// typically rebuilds a router from the fresh table and swaps it in.
func Watch(path string, debounce time.Duration, onChange func(*RouteTable, error)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops
	// a watch set on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		fw:       fw,
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.onChange(Load(w.path))
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher. It is safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
