// Package config loads gocalc settings from the environment and the
// command line. Flags win over environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the binaries read
type Config struct {
	// Tape is a key script to watch; empty means interactive mode
	Tape         string        `env:"GOCALC_TAPE"`
	Debounce     time.Duration `env:"GOCALC_DEBOUNCE" envDefault:"300ms"`
	Poll         bool          `env:"GOCALC_POLL"`
	PollInterval time.Duration `env:"GOCALC_POLL_INTERVAL" envDefault:"200ms"`
	// Plain disables in-place redraw even on a terminal
	Plain    bool   `env:"GOCALC_PLAIN"`
	LogLevel string `env:"GOCALC_LOG_LEVEL" envDefault:"warn"`
}

// Load parses the environment and then args (without the program name)
func Load(name string, args []string, output io.Writer) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Tape, "t", cfg.Tape, "Tape file to watch and replay on change")
	fs.DurationVar(&cfg.Debounce, "d", cfg.Debounce, "Debounce delay before replaying a changed tape")
	fs.BoolVar(&cfg.Poll, "poll", cfg.Poll, "Poll the tape file instead of using file system events")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Interval between polls")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Print one line per update instead of redrawing")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that flag and env parsing accept but gocalc cannot use
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce delay must not be negative, got %s", c.Debounce)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	return nil
}

// NewLogger builds the logger described by c. Logs go to out so they stay
// clear of the calculator display.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}
