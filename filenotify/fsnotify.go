package filenotify

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher is a FileWatcher backed by fsnotify
type EventWatcher struct {
	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	errors  chan error
	done    chan struct{}
	once    sync.Once
}

// NewEventWatcher returns a new EventWatcher
func NewEventWatcher() (*EventWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &EventWatcher{
		watcher: watcher,
		events:  make(chan fsnotify.Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
	}
	go w.forward()
	return w, nil
}

// Events returns the event channel
func (w *EventWatcher) Events() <-chan fsnotify.Event {
	return w.events
}

// Errors returns the error channel
func (w *EventWatcher) Errors() <-chan error {
	return w.errors
}

// Add adds a file or directory to the watch list
func (w *EventWatcher) Add(name string) error {
	return w.watcher.Add(name)
}

// Remove removes a file or directory from the watch list
func (w *EventWatcher) Remove(name string) error {
	return w.watcher.Remove(name)
}

// Close stops the fsnotify watcher. The event and error channels are closed
// once the forwarding goroutine has drained out.
func (w *EventWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// forward relays fsnotify events until the watcher is closed. It owns the
// outgoing channels and is the only one to close them.
func (w *EventWatcher) forward() {
	defer close(w.events)
	defer close(w.errors)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			select {
			case w.events <- event:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}
