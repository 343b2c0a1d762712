package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesEveryOperation(t *testing.T) {
	e := New()
	var seen []State
	cancel := e.Subscribe(ObserverFunc(func(s State) {
		seen = append(seen, s)
	}))

	press(t, e, "5", "+", "3", "=")
	// a point that changes nothing still notifies
	press(t, e, ".", ".")

	require.Len(t, seen, 6)
	assert.Equal(t, "5", seen[0].Display)
	assert.Equal(t, Add, seen[1].Pending)
	assert.True(t, seen[1].Replace)
	assert.Equal(t, "8", seen[3].Display)
	assert.Equal(t, seen[4], seen[5])

	cancel()
	press(t, e, "1")
	assert.Len(t, seen, 6)
}

func TestSubscribeOnZeroEngine(t *testing.T) {
	var e Engine
	var got string
	e.Subscribe(ObserverFunc(func(s State) { got = s.Display }))

	press(t, &e, "4", "2")
	assert.Equal(t, "42", got)
}

func TestRejectedInputDoesNotNotify(t *testing.T) {
	e := New()
	calls := 0
	e.Subscribe(ObserverFunc(func(State) { calls++ }))

	assert.Error(t, e.EnterDigit('x'))
	assert.Error(t, e.ApplyPendingOperation(Operator(9)))
	assert.Equal(t, 0, calls)
}

func TestMultipleObservers(t *testing.T) {
	e := New()
	var a, b string
	cancelA := e.Subscribe(ObserverFunc(func(s State) { a = s.Display }))
	e.Subscribe(ObserverFunc(func(s State) { b = s.Display }))

	press(t, e, "π")
	assert.Equal(t, "3.141592653589793", a)
	assert.Equal(t, a, b)

	cancelA()
	press(t, e, "C")
	assert.Equal(t, "3.141592653589793", a)
	assert.Equal(t, "", b)
}
