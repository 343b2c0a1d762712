// Package tape reads key scripts ("tapes") and replays them into a fresh
// calculator engine.
//
// A tape is plain text. Tokens are separated by whitespace and a '#' starts
// a comment that runs to the end of the line. A token made only of digits
// and points, such as 12.5, is typed one character at a time; every other
// token names a single key, e.g. +, x, ÷, =, M+ or sqrt.
package tape

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bond-kaneko/gocalc/calc"
)

// Parse reads a whole tape
func Parse(r io.Reader) ([]calc.Key, error) {
	var keys []calc.Key
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, token := range strings.Fields(text) {
			expanded, err := ParseToken(token)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			keys = append(keys, expanded...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	return keys, nil
}

// ParseToken expands one token into the keys it types
func ParseToken(token string) ([]calc.Key, error) {
	if isNumeral(token) {
		keys := make([]calc.Key, 0, len(token))
		for i := 0; i < len(token); i++ {
			if token[i] == '.' {
				keys = append(keys, calc.KeyPoint)
			} else {
				keys = append(keys, calc.Key0+calc.Key(token[i]-'0'))
			}
		}
		return keys, nil
	}

	k, err := calc.ParseKey(token)
	if err != nil {
		return nil, err
	}
	return []calc.Key{k}, nil
}

func isNumeral(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// StepFunc observes each key of a replay and the state it produced
type StepFunc func(k calc.Key, s calc.State)

// Replay presses keys on a new engine and returns its final state. step may
// be nil.
func Replay(keys []calc.Key, step StepFunc) (calc.State, error) {
	engine := calc.New()
	for i, k := range keys {
		if err := engine.Press(k); err != nil {
			return engine.State(), fmt.Errorf("key %d (%v): %w", i+1, k, err)
		}
		if step != nil {
			step(k, engine.State())
		}
	}
	return engine.State(), nil
}
