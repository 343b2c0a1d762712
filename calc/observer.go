package calc

// Observer is notified after every engine operation completes
type Observer interface {
	StateChanged(State)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(State)

// StateChanged calls f(s)
func (f ObserverFunc) StateChanged(s State) {
	f(s)
}

// Subscribe registers o and returns a function that removes it.
// Observers are called synchronously, on the goroutine driving the engine.
func (e *Engine) Subscribe(o Observer) (cancel func()) {
	if e.observers == nil {
		e.observers = make(map[int]Observer)
	}
	id := e.nextID
	e.nextID++
	e.observers[id] = o
	return func() {
		delete(e.observers, id)
	}
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	s := e.State()
	for _, o := range e.observers {
		o.StateChanged(s)
	}
}
