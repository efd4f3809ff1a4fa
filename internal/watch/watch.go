// Package watch reports sound files appearing or disappearing in the
// sound directory while the board runs. The catalog stays immutable for
// the process lifetime; the board only surfaces these events as status
// messages so the user knows a restart would pick them up.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/soundpad/internal/log"
)

// EventType classifies a settled directory change.
type EventType int

const (
	EventAdded EventType = iota
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one settled change to a sound file.
type Event struct {
	Type EventType
	Path string
}

// defaultSettleDelay is how long a file must stay quiet after its last
// write before it counts as fully copied in.
const defaultSettleDelay = 250 * time.Millisecond

// Watcher watches a single directory, non-recursive, for *.wav and
// *.mp3 changes. Write bursts are debounced so a file mid-copy is
// reported once, after it settles.
type Watcher struct {
	fsw    *fsnotify.Watcher
	settle time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	known   map[string]struct{}

	events    chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts watching dir. The initial directory contents seed the known
// set so pre-existing files never report as added.
func New(dir string) (*Watcher, error) {
	return newWatcher(dir, defaultSettleDelay)
}

func newWatcher(dir string, settle time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:     fsw,
		settle:  settle,
		pending: make(map[string]*time.Timer),
		known:   make(map[string]struct{}),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if isSoundFile(path) {
			w.known[path] = struct{}{}
		}
	}

	w.wg.Add(1)
	go w.run()

	log.Debug(log.CatWatch, "watching sound directory", "dir", dir, "known", len(w.known))
	return w, nil
}

// Events returns the channel of settled changes. The board drains it
// with non-blocking receives on every tick.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher. Buffered events stay readable.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, timer := range w.pending {
			timer.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatch, "watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !isSoundFile(ev.Name) {
		return
	}

	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.cancelPending(ev.Name)

		w.mu.Lock()
		_, existed := w.known[ev.Name]
		delete(w.known, ev.Name)
		w.mu.Unlock()

		if existed {
			w.emit(Event{Type: EventRemoved, Path: ev.Name})
		}
		return
	}

	if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.startSettle(ev.Name)
	}
}

// startSettle (re)arms the settle timer for path. Every write chunk of
// an in-progress copy lands here, pushing the deadline back.
func (w *Watcher) startSettle(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.settled(path)
	})
}

func (w *Watcher) settled(path string) {
	w.mu.Lock()
	delete(w.pending, path)

	if _, err := os.Stat(path); err != nil {
		// Gone again before it settled.
		_, existed := w.known[path]
		delete(w.known, path)
		w.mu.Unlock()
		if existed {
			w.emit(Event{Type: EventRemoved, Path: path})
		}
		return
	}

	_, existed := w.known[path]
	w.known[path] = struct{}{}
	w.mu.Unlock()

	// Rewrites of files the catalog already holds are not appearances.
	if existed {
		return
	}
	w.emit(Event{Type: EventAdded, Path: path})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) emit(ev Event) {
	log.Debug(log.CatWatch, "change settled", "type", ev.Type.String(), "path", ev.Path)
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

func isSoundFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3":
		return true
	}
	return false
}
