// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Config selects where and how log entries are written.
type Config struct {
	// Format is either "console" or "json".
	Format string
	// Level is the minimum zerolog level name: debug, info, warn or error.
	Level string
	// Verbosity enables V(level) logging for every level up to it.
	Verbosity int32
	// Redactable keeps redaction markers around unsafe values.
	Redactable bool
	Output     io.Writer
}

// DefaultConfig writes human-readable entries at INFO to stderr.
func DefaultConfig() Config {
	return Config{
		Format: "console",
		Level:  "info",
		Output: os.Stderr,
	}
}

var logging struct {
	logger     atomic.Pointer[zerolog.Logger]
	verbosity  atomic.Int32
	redactable atomic.Bool
}

func init() {
	if err := ApplyConfig(DefaultConfig()); err != nil {
		panic(err)
	}
}

// ApplyConfig replaces the process-wide logging configuration.
func ApplyConfig(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	switch cfg.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
	default:
		return errors.Newf("unknown log format %q", errors.Safe(cfg.Format))
	}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	logging.logger.Store(&l)
	logging.verbosity.Store(cfg.Verbosity)
	logging.redactable.Store(cfg.Redactable)
	return nil
}

// SetVerbosity changes the verbosity without touching the sink.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}
