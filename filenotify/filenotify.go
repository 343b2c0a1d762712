// Package filenotify reports changes to watched files. It wraps fsnotify and
// adds a stat-polling notifier for file systems where inotify-style events
// are unavailable (network mounts, some containers). Both satisfy
// FileWatcher so callers can use either.
package filenotify

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is used when Options.PollInterval is zero
const DefaultPollInterval = 200 * time.Millisecond

// FileWatcher is an interface for implementing file notification watchers
type FileWatcher interface {
	// Events returns the channel for watching events
	Events() <-chan fsnotify.Event
	// Errors returns the channel for watching errors
	Errors() <-chan error
	// Add starts watching the named file or directory
	Add(name string) error
	// Remove stops watching the named file or directory
	Remove(name string) error
	// Close stops watching and closes the channels
	Close() error
}

// Options selects the notifier New builds
type Options struct {
	// ForcePoll skips fsnotify entirely
	ForcePoll bool
	// PollInterval is the time between stat checks when polling
	PollInterval time.Duration
}

// New tries to use an fs-event watcher, and falls back to the poller if
// there is an error or polling is forced.
func New(opts Options) (FileWatcher, error) {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if opts.ForcePoll {
		return NewPollingWatcher(interval), nil
	}
	watcher, err := NewEventWatcher()
	if err != nil {
		return NewPollingWatcher(interval), nil
	}
	return watcher, nil
}
