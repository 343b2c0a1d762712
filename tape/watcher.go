package tape

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/bond-kaneko/gocalc/calc"
	"github.com/bond-kaneko/gocalc/filenotify"
)

// Result is the outcome of one replay of a tape file
type Result struct {
	Path  string
	Run   int
	Keys  int
	State calc.State
	// Err is set when the tape could not be read or parsed
	Err error
}

// Renderer shows replay results
type Renderer interface {
	RenderTape(Result)
}

// Watcher replays a tape file every time it changes
type Watcher struct {
	path          string
	debounceDelay time.Duration
	notifier      filenotify.FileWatcher
	renderer      Renderer
	log           logrus.FieldLogger

	mu   sync.Mutex
	runs int
}

// NewWatcher creates a watcher for the tape at path. The notifier is owned
// by the watcher from here on and closed by Stop.
func NewWatcher(path string, notifier filenotify.FileWatcher, renderer Renderer, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tape path: %w", err)
	}
	return &Watcher{
		path:          abs,
		debounceDelay: 300 * time.Millisecond,
		notifier:      notifier,
		renderer:      renderer,
		log:           log.WithField("tape", abs),
	}, nil
}

// SetDebounceDelay sets how long to wait after the last change before
// replaying
func (w *Watcher) SetDebounceDelay(delay time.Duration) {
	w.debounceDelay = delay
}

// Path returns the absolute path of the watched tape
func (w *Watcher) Path() string {
	return w.path
}

// Watch replays the tape once, then again after every change, until ctx is
// done or the notifier shuts down.
func (w *Watcher) Watch(ctx context.Context) error {
	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself, so the directory is watched too.
	if err := w.notifier.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("error setting up directory watch: %w", err)
	}
	if err := w.notifier.Add(w.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error setting up tape watch: %w", err)
	}

	w.log.Info("Watching tape for changes")
	w.ReplayFile()

	// inflight counts armed or running replays so none outlives Watch
	var inflight sync.WaitGroup
	var debounceTimer *time.Timer
	disarm := func() {
		if debounceTimer != nil && debounceTimer.Stop() {
			inflight.Done()
		}
	}
	defer func() {
		disarm()
		inflight.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.notifier.Events():
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.WithField("op", event.Op.String()).Debug("Tape changed")

			disarm()
			inflight.Add(1)
			debounceTimer = time.AfterFunc(w.debounceDelay, func() {
				defer inflight.Done()
				if ctx.Err() != nil {
					return
				}
				w.ReplayFile()
			})

		case err, ok := <-w.notifier.Errors():
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watch error")
		}
	}
}

// Stop closes the underlying notifier
func (w *Watcher) Stop() error {
	return w.notifier.Close()
}

// ReplayFile reads the tape, replays it on a fresh engine and renders the
// result. Calls are serialized.
func (w *Watcher) ReplayFile() Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.runs++
	result := Result{Path: w.path, Run: w.runs}

	keys, err := w.load()
	if err != nil {
		result.Err = err
		w.log.WithError(err).Warn("Tape not replayed")
		w.renderer.RenderTape(result)
		return result
	}

	result.Keys = len(keys)
	result.State, result.Err = Replay(keys, nil)
	w.log.WithFields(logrus.Fields{
		"run":     result.Run,
		"keys":    result.Keys,
		"display": result.State.Display,
	}).Debug("Tape replayed")
	w.renderer.RenderTape(result)
	return result
}

func (w *Watcher) load() ([]calc.Key, error) {
	f, err := os.Open(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tape: %w", err)
	}
	defer f.Close()

	keys, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(w.path), err)
	}
	return keys, nil
}
