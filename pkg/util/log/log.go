// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is the logging facade of the SQL layers. Messages are
// formatted with redact so that identifiers coming from statements are
// marked as unsafe, and are prefixed with the logtags carried by the
// context.
package log

import (
	"context"

	"github.com/cockroachdb/redact"
	"github.com/rs/zerolog"
)

// Infof logs to the INFO level.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.InfoLevel, format, args)
}

// Warningf logs to the WARNING level.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.WarnLevel, format, args)
}

// Errorf logs to the ERROR level.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.ErrorLevel, format, args)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// ExpensiveLogEnabled is used to test whether effort should be used to
// produce log messages whose construction has a measurable cost.
func ExpensiveLogEnabled(ctx context.Context, level int32) bool {
	return V(level)
}

// VEventf logs at INFO when the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		logf(ctx, zerolog.InfoLevel, format, args)
	}
}

func logf(ctx context.Context, level zerolog.Level, format string, args []interface{}) {
	l := logging.logger.Load()
	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	msg := redact.Sprintf(format, args...)
	if tags := contextTags(ctx); tags != "" {
		ev = ev.Str("tags", tags)
	}
	if logging.redactable.Load() {
		ev.Msg(string(msg))
		return
	}
	ev.Msg(msg.StripMarkers())
}
