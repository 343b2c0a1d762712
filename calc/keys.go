package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKey for labels that name no key
var ErrUnknownKey = errors.New("unknown key")

// Key is one button on the keypad
type Key int

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyPoint
	KeyAdd
	KeySubtract
	KeyMultiply
	KeyDivide
	KeyEquals
	KeySign
	KeySqrt
	KeyReciprocal
	KeyPi
	KeyClear
	KeyAllClear
	KeyMemoryClear
	KeyMemoryRecall
	KeyMemoryAdd
)

var keyLabels = [...]string{
	Key0:            "0",
	Key1:            "1",
	Key2:            "2",
	Key3:            "3",
	Key4:            "4",
	Key5:            "5",
	Key6:            "6",
	Key7:            "7",
	Key8:            "8",
	Key9:            "9",
	KeyPoint:        ".",
	KeyAdd:          "+",
	KeySubtract:     "-",
	KeyMultiply:     "x",
	KeyDivide:       "÷",
	KeyEquals:       "=",
	KeySign:         "±",
	KeySqrt:         "√",
	KeyReciprocal:   "1/x",
	KeyPi:           "π",
	KeyClear:        "C",
	KeyAllClear:     "AC",
	KeyMemoryClear:  "MC",
	KeyMemoryRecall: "MR",
	KeyMemoryAdd:    "M+",
}

// aliases are matched after lowercasing the label
var aliases = map[string]Key{
	"*":    KeyMultiply,
	"/":    KeyDivide,
	"sqrt": KeySqrt,
	"pi":   KeyPi,
	"+/-":  KeySign,
	"neg":  KeySign,
	"inv":  KeyReciprocal,
	"ce":   KeyClear,
}

var labelIndex = func() map[string]Key {
	m := make(map[string]Key, len(keyLabels)+len(aliases))
	for k, label := range keyLabels {
		m[strings.ToLower(label)] = Key(k)
	}
	for alias, k := range aliases {
		m[alias] = k
	}
	return m
}()

// Keys returns every key in keypad order
func Keys() []Key {
	keys := make([]Key, len(keyLabels))
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// String returns the label printed on the button
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyLabels) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyLabels[k]
}

// Digit reports the digit character for Key0 through Key9
func (k Key) Digit() (byte, bool) {
	if k >= Key0 && k <= Key9 {
		return byte('0' + k), true
	}
	return 0, false
}

// ParseKey maps a button label or one of its ASCII aliases to a key.
// Letters match case-insensitively.
func ParseKey(label string) (Key, error) {
	if k, ok := labelIndex[strings.ToLower(strings.TrimSpace(label))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// Press runs the operation bound to k
func (e *Engine) Press(k Key) error {
	if d, ok := k.Digit(); ok {
		return e.EnterDigit(d)
	}
	switch k {
	case KeyPoint:
		e.EnterDecimalPoint()
	case KeyAdd:
		return e.ApplyPendingOperation(Add)
	case KeySubtract:
		return e.ApplyPendingOperation(Subtract)
	case KeyMultiply:
		return e.ApplyPendingOperation(Multiply)
	case KeyDivide:
		return e.ApplyPendingOperation(Divide)
	case KeyEquals:
		e.Equals()
	case KeySign:
		e.ToggleSign()
	case KeySqrt:
		e.SquareRoot()
	case KeyReciprocal:
		e.Reciprocal()
	case KeyPi:
		e.ConstantPi()
	case KeyClear:
		e.ClearEntry()
	case KeyAllClear:
		e.AllClear()
	case KeyMemoryClear:
		e.MemoryClear()
	case KeyMemoryRecall:
		e.MemoryRecall()
	case KeyMemoryAdd:
		e.MemoryAdd()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownKey, k)
	}
	return nil
}
