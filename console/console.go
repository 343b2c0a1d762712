// Package console is the terminal front end for the calculator engine. It
// turns typed tokens into key presses and redraws the display after every
// operation.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/bond-kaneko/gocalc/calc"
	"github.com/bond-kaneko/gocalc/tape"
)

// displayWidth is the width of the numeric window, in characters
const displayWidth = 20

// Console renders engine state to a writer
type Console struct {
	out  io.Writer
	live *uilive.Writer
	log  logrus.FieldLogger
	mu   sync.Mutex
	once sync.Once
}

// New creates a console on out. Unless plain is set, a terminal gets a live
// display that is redrawn in place; anything else gets one line per update.
func New(out io.Writer, plain bool, log logrus.FieldLogger) *Console {
	c := &Console{out: out, log: log}
	if !plain && IsTerminal(out) {
		writer := uilive.New()
		writer.Out = out
		writer.RefreshInterval = time.Millisecond * 100
		writer.Start()
		c.live = writer
	}
	return c
}

// IsTerminal reports whether w is a terminal that can be redrawn
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Live reports whether the console redraws in place
func (c *Console) Live() bool {
	return c.live != nil
}

// Close stops the live writer, leaving the last frame on screen
func (c *Console) Close() {
	if c.live != nil {
		c.once.Do(c.live.Stop)
	}
}

// StateChanged redraws the display; it makes Console a calc.Observer
func (c *Console) StateChanged(s calc.State) {
	c.Render(s)
}

// Render draws s
func (c *Console) Render(s calc.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		fmt.Fprintln(c.out, FormatLine(s))
		return
	}
	fmt.Fprintln(c.live, Frame(s))
	c.live.Flush()
}

// RenderTape draws the outcome of a tape replay; it makes Console a
// tape.Renderer
func (c *Console) RenderTape(res tape.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Err != nil {
		c.writeTape(fmt.Sprintf("run %d: %v", res.Run, res.Err))
		return
	}
	header := fmt.Sprintf("run %d, %d keys", res.Run, res.Keys)
	if c.live == nil {
		c.writeTape(header + " " + FormatLine(res.State))
		return
	}
	c.writeTape(header + "\n" + Frame(res.State))
}

// writeTape must be called with c.mu held
func (c *Console) writeTape(text string) {
	if c.live == nil {
		fmt.Fprintln(c.out, text)
		return
	}
	fmt.Fprintln(c.live, text)
	c.live.Flush()
}

// Println writes a message line outside the redrawn area
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		fmt.Fprintln(c.out, a...)
		return
	}
	fmt.Fprintln(c.live.Bypass(), a...)
}

// Frame is the multi-line live view: the display window, then the memory
// register when it holds something other than zero.
func Frame(s calc.State) string {
	return joinView(s, "\n ")
}

// FormatLine is the single-line view used in plain mode
func FormatLine(s calc.State) string {
	return joinView(s, " ")
}

func joinView(s calc.State, sep string) string {
	view := fmt.Sprintf("[%*s]", displayWidth, s.Display)
	if s.Memory != 0 {
		view += sep + "M " + calc.FormatNumber(s.Memory)
	}
	return view
}

// Run reads whitespace-separated tokens from in and presses the keys they
// name until in is exhausted, a quit token arrives or ctx is done. Tokens
// that name no key are reported and skipped.
func (c *Console) Run(ctx context.Context, in io.Reader, e *calc.Engine) error {
	unsubscribe := e.Subscribe(c)
	defer unsubscribe()
	c.Render(e.State())

	// stops the reader when Run returns for any reason
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokens := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(tokens)
		scanner := bufio.NewScanner(in)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			select {
			case tokens <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case token, ok := <-tokens:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}
			if c.handle(token, e) {
				return nil
			}
		}
	}
}

// handle presses the keys for one token and reports whether to stop
func (c *Console) handle(token string, e *calc.Engine) bool {
	switch strings.ToLower(token) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		c.Println(keyHelp())
		return false
	}

	keys, err := tape.ParseToken(token)
	if err != nil {
		c.log.WithField("token", token).Warn("Unknown key")
		c.Println(fmt.Sprintf("unknown key %q (type help for the keypad)", token))
		return false
	}
	for _, k := range keys {
		c.log.WithField("key", k.String()).Debug("Key pressed")
		if err := e.Press(k); err != nil {
			c.log.WithError(err).Error("Key rejected")
		}
	}
	return false
}

func keyHelp() string {
	labels := make([]string, 0, len(calc.Keys()))
	for _, k := range calc.Keys() {
		labels = append(labels, k.String())
	}
	return "keys: " + strings.Join(labels, " ") + "  (aliases: * / sqrt pi +/- inv CE; quit to exit)"
}
