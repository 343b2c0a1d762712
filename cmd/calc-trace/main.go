// Command calc-trace replays a tape and prints the engine state after every
// key. It is a debugging aid for tapes that do not end where expected.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/bond-kaneko/gocalc/calc"
	"github.com/bond-kaneko/gocalc/tape"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s <tape>\n", os.Args[0])
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("Failed to open tape")
	}
	defer f.Close()

	if err := trace(f, os.Stdout); err != nil {
		log.WithError(err).WithField("tape", os.Args[1]).Fatal("Trace failed")
	}
}

// trace writes one row per key: the key, then every engine field after it
func trace(r io.Reader, out io.Writer) error {
	keys, err := tape.Parse(r)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tkey\tdisplay\taccumulator\tmemory\tpending\treplace")
	step := 0
	final, err := tape.Replay(keys, func(k calc.Key, s calc.State) {
		step++
		fmt.Fprintf(tw, "%d\t%s\t%q\t%s\t%s\t%s\t%t\n",
			step, k, s.Display, calc.FormatNumber(s.Accumulator), calc.FormatNumber(s.Memory), s.Pending, s.Replace)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(tw, "=\t\t%q\t%s\t%s\t%s\t%t\n",
		final.Display, calc.FormatNumber(final.Accumulator), calc.FormatNumber(final.Memory), final.Pending, final.Replace)
	return tw.Flush()
}
