// Package watch notifies the app when the notes database changes on disk,
// typically from another running instance writing to the same file.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of WAL/journal writes SQLite emits
// for a single logical change.
const debounceDelay = 200 * time.Millisecond

// Watcher reports debounced change events for a SQLite database file.
type Watcher struct {
	events chan struct{}
	fsw    *fsnotify.Watcher
	done   chan struct{}
}

// New watches dbPath for external writes. The parent directory is watched
// rather than the file itself so events survive rename-based writes.
func New(dbPath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		events: make(chan struct{}, 1),
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.run(filepath.Base(dbPath))
	return w, nil
}

// Events delivers one signal per debounced batch of database writes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher. Events is closed once the goroutine drains.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run(base string) {
	var debounce *time.Timer
	var closed bool
	var mu sync.Mutex

	defer func() {
		mu.Lock()
		closed = true
		if debounce != nil {
			debounce.Stop()
		}
		mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event, base) {
				continue
			}

			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				mu.Lock()
				defer mu.Unlock()
				if closed {
					return
				}
				select {
				case w.events <- struct{}{}:
				default:
				}
			})
			mu.Unlock()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// relevant matches writes to the database file and its WAL sidecars.
func relevant(event fsnotify.Event, base string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
