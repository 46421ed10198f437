// Package watcher monitors the mod directories and the game configuration
// for changes, so the user knows when the load order is stale and a re-sort
// is due.
package watcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rwmods/rwsort/internal/logging"
)

// Event is one debounced filesystem change under a watched directory.
type Event struct {
	Path string
	Op   string
}

// Watcher wraps fsnotify with per-path debouncing. Mod installs touch many
// files in quick succession; one event per path per window is enough to
// know a re-sort is due.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	events   chan Event
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a Watcher over the given directories. Directories that do not
// exist are skipped; at least one must be watchable.
func New(dirs []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	log := logging.For("watcher")
	watched := 0
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			log.Warn().Str("dir", dir).Err(err).Msg("cannot watch directory, skipping")
			continue
		}
		log.Debug().Str("dir", dir).Msg("watching")
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return nil, fmt.Errorf("no watchable directories among %v", dirs)
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan Event, 16),
		stopCh:   make(chan struct{}),
	}, nil
}

// Events returns the debounced event stream.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins delivering events until Stop is called.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	log := logging.For("watcher")
	lastSeen := make(map[string]time.Time)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			now := time.Now()
			if last, seen := lastSeen[ev.Name]; seen && now.Sub(last) < w.debounce {
				continue
			}
			lastSeen[ev.Name] = now
			select {
			case w.events <- Event{Path: ev.Name, Op: ev.Op.String()}:
			default:
				// Consumer is behind; dropping is fine, any one event
				// already means "re-sort needed".
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch error")
		case <-w.stopCh:
			return
		}
	}
}

// Stop halts event delivery and releases the underlying watches.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	close(w.events)
	return err
}
