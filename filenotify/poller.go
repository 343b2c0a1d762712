package filenotify

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var errNotWatched = errors.New("file or directory is not being watched")

// PollingWatcher is a FileWatcher that stats each watched path on a ticker
type PollingWatcher struct {
	interval time.Duration

	mu    sync.Mutex
	files map[string]fileState

	events chan fsnotify.Event
	errors chan error
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

type fileState struct {
	modTime time.Time
	size    int64
	missing bool
}

// NewPollingWatcher returns a polling watcher that checks every interval
func NewPollingWatcher(interval time.Duration) *PollingWatcher {
	w := &PollingWatcher{
		interval: interval,
		files:    make(map[string]fileState),
		events:   make(chan fsnotify.Event),
		errors:   make(chan error),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.poll()
	return w
}

// Add starts tracking name. A path that does not exist yet is tracked as
// missing and reported as Create when it appears; a later deletion is
// reported as Remove.
func (w *PollingWatcher) Add(name string) error {
	state := fileState{missing: true}
	fi, err := os.Stat(name)
	switch {
	case err == nil:
		state = fileState{modTime: fi.ModTime(), size: fi.Size()}
	case !os.IsNotExist(err):
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[name] = state
	return nil
}

// Remove stops tracking name
func (w *PollingWatcher) Remove(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; !ok {
		return errNotWatched
	}
	delete(w.files, name)
	return nil
}

// Events returns the event channel
func (w *PollingWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *PollingWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops polling and closes the channels
func (w *PollingWatcher) Close() error {
	w.once.Do(func() {
		close(w.stop)
		<-w.done
		close(w.events)
		close(w.errors)
	})
	return nil
}

func (w *PollingWatcher) poll() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, event := range w.scan() {
				if !w.send(event) {
					return
				}
			}
		case <-w.stop:
			return
		}
	}
}

// pending is what one scan found: an event or an error for one path
type pending struct {
	event fsnotify.Event
	err   error
}

// scan stats every tracked path and records the changes. Sending happens
// outside the lock so a slow reader never blocks Add or Remove.
func (w *PollingWatcher) scan() []pending {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []pending
	for name, prev := range w.files {
		fi, err := os.Stat(name)
		switch {
		case os.IsNotExist(err):
			if !prev.missing {
				w.files[name] = fileState{missing: true}
				out = append(out, pending{event: fsnotify.Event{Name: name, Op: fsnotify.Remove}})
			}
		case err != nil:
			out = append(out, pending{err: err})
		case prev.missing:
			w.files[name] = fileState{modTime: fi.ModTime(), size: fi.Size()}
			out = append(out, pending{event: fsnotify.Event{Name: name, Op: fsnotify.Create}})
		case !fi.ModTime().Equal(prev.modTime) || fi.Size() != prev.size:
			w.files[name] = fileState{modTime: fi.ModTime(), size: fi.Size()}
			out = append(out, pending{event: fsnotify.Event{Name: name, Op: fsnotify.Write}})
		}
	}
	return out
}

func (w *PollingWatcher) send(p pending) bool {
	if p.err != nil {
		select {
		case w.errors <- p.err:
			return true
		case <-w.stop:
			return false
		}
	}
	select {
	case w.events <- p.event:
		return true
	case <-w.stop:
		return false
	}
}
