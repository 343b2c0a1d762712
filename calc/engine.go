// Package calc implements the calculator engine: an accumulator, a single
// memory register and a display buffer driven by keypad operations.
// Operators apply immediately, left to right, with no precedence.
//
// An Engine is not safe for concurrent use. Drive it from one goroutine and
// let each operation finish before issuing the next.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidDigit is returned by EnterDigit for anything outside '0'-'9'
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrInvalidOperator is returned for operators outside the closed set
	ErrInvalidOperator = errors.New("invalid operator")
)

// State is a snapshot of every field of an Engine
type State struct {
	Display     string
	Accumulator float64
	Memory      float64
	Pending     Operator
	// Replace is set when the next digit overwrites the display
	Replace bool
}

// Engine holds one calculator session. The zero value is an engine with an
// empty display, as returned by New.
type Engine struct {
	accumulator float64
	display     string
	memory      float64
	pending     Operator
	replace     bool

	observers map[int]Observer
	nextID    int
}

// New creates an engine with an empty display and zeroed registers
func New() *Engine {
	return &Engine{}
}

// EnterDigit appends d to the display, or starts a new entry when the last
// operation left a result on screen.
func (e *Engine) EnterDigit(d byte) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q", ErrInvalidDigit, d)
	}
	if e.replace {
		e.display = string(d)
		e.replace = false
	} else {
		e.display += string(d)
	}
	e.notify()
	return nil
}

// EnterDecimalPoint appends "." unless the display already has one.
// The replace flag is neither consulted nor cleared, so a point entered
// after a result extends that result.
func (e *Engine) EnterDecimalPoint() {
	if !strings.Contains(e.display, ".") {
		e.display += "."
	}
	e.notify()
}

// ApplyPendingOperation folds the display into the accumulator using the
// operator queued by the previous call, then queues next. The result is
// shown and the next digit starts a fresh entry.
func (e *Engine) ApplyPendingOperation(next Operator) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidOperator, next)
	}
	val := parseOrZero(e.display)
	e.accumulator = e.pending.apply(e.accumulator, val)
	e.replace = true
	e.pending = next
	e.display = FormatNumber(e.accumulator)
	e.notify()
	return nil
}

// Equals applies the pending operator without queueing another
func (e *Engine) Equals() {
	_ = e.ApplyPendingOperation(None)
}

// ToggleSign negates the displayed value
func (e *Engine) ToggleSign() {
	e.unary(func(v float64) float64 { return -v })
}

// SquareRoot replaces the display with its square root. Negative input
// shows NaN.
func (e *Engine) SquareRoot() {
	e.unary(math.Sqrt)
}

// Reciprocal replaces the display with 1/x. Zero shows +Inf.
func (e *Engine) Reciprocal() {
	e.unary(func(v float64) float64 { return 1 / v })
}

func (e *Engine) unary(fn func(float64) float64) {
	e.display = FormatNumber(fn(parseOrZero(e.display)))
	e.notify()
}

// ClearEntry empties the display
func (e *Engine) ClearEntry() {
	e.display = ""
	e.notify()
}

// AllClear empties the display and zeroes the accumulator and memory.
// The pending operator is kept.
func (e *Engine) AllClear() {
	e.display = ""
	e.accumulator = 0
	e.memory = 0
	e.notify()
}

// MemoryClear zeroes the memory register
func (e *Engine) MemoryClear() {
	e.memory = 0
	e.notify()
}

// MemoryRecall shows the memory register on the display
func (e *Engine) MemoryRecall() {
	e.display = FormatNumber(e.memory)
	e.notify()
}

// MemoryAdd adds the displayed value to memory, clears the display and
// drops the pending operator. Unlike the other operations it does not fall
// back to zero: an unreadable display becomes ErrorMarker and nothing else
// changes.
func (e *Engine) MemoryAdd() {
	if val, ok := ParseNumber(e.display); ok {
		e.memory += val
		e.display = ""
		e.pending = None
	} else {
		e.display = ErrorMarker
	}
	e.notify()
}

// ConstantPi shows π
func (e *Engine) ConstantPi() {
	e.display = FormatNumber(math.Pi)
	e.notify()
}

// Display returns the display buffer
func (e *Engine) Display() string {
	return e.display
}

// Memory returns the memory register
func (e *Engine) Memory() float64 {
	return e.memory
}

// Accumulator returns the running total
func (e *Engine) Accumulator() float64 {
	return e.accumulator
}

// Pending returns the queued operator
func (e *Engine) Pending() Operator {
	return e.pending
}

// State returns a snapshot of the engine
func (e *Engine) State() State {
	return State{
		Display:     e.display,
		Accumulator: e.accumulator,
		Memory:      e.memory,
		Pending:     e.pending,
		Replace:     e.replace,
	}
}
