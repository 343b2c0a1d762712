package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/bond-kaneko/gocalc/calc"
	"github.com/bond-kaneko/gocalc/config"
	"github.com/bond-kaneko/gocalc/console"
	"github.com/bond-kaneko/gocalc/filenotify"
	"github.com/bond-kaneko/gocalc/tape"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console.New(os.Stdout, cfg.Plain, logger)
	defer out.Close()

	if cfg.Tape == "" {
		if out.Live() {
			out.Println("Type keys separated by spaces (help lists them, quit exits).")
		}
		err = out.Run(ctx, os.Stdin, calc.New())
	} else {
		err = watchTape(ctx, cfg, out, logger)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("gocalc stopped")
		out.Close()
		os.Exit(1)
	}
}

func watchTape(ctx context.Context, cfg config.Config, out *console.Console, logger logrus.FieldLogger) error {
	notifier, err := filenotify.New(filenotify.Options{
		ForcePoll:    cfg.Poll,
		PollInterval: cfg.PollInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}

	w, err := tape.NewWatcher(cfg.Tape, notifier, out, logger)
	if err != nil {
		notifier.Close()
		return err
	}
	defer w.Stop()
	w.SetDebounceDelay(cfg.Debounce)

	out.Println("Watching", w.Path(), "- press Ctrl+C to exit.")
	return w.Watch(ctx)
}
