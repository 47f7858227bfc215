// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package nglog implements the engine's logging hook (§6.5):
// a single level-gated callback, with no global singleton state.
// Replacing the original's pthread_once-guarded global context
// (§9 DESIGN NOTES), each Logger is an explicit value created by
// its owning Context and passed down, never reached through a
// hidden global.
package nglog

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Level mirrors the five levels of §6.5.
type Level int32

const (
	Debug Level = iota
	Verbose
	Info
	Warning
	Error
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Verbose:
		return zerolog.TraceLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

// Callback receives one already-formatted log line.
type Callback func(level Level, line string)

// Logger is the engine's logging sink.
// The zero value passes every level (Debug and above) to a zero
// zerolog.Logger, which writes nothing; use New for a working sink.
type Logger struct {
	min atomic.Int32
	cb  atomic.Pointer[Callback]
	zl  zerolog.Logger
}

// New creates a Logger at level Info that, absent a callback, writes
// through zl (a zerolog console writer is the caller's responsibility to
// configure; New wraps whatever zerolog.Logger is given).
func New(zl zerolog.Logger) *Logger {
	l := &Logger{zl: zl}
	l.min.Store(int32(Info))
	return l
}

// SetCallback installs fn as the sole recipient of log lines.
// A nil fn reverts to the wrapped zerolog.Logger.
func (l *Logger) SetCallback(fn Callback) {
	if fn == nil {
		l.cb.Store(nil)
		return
	}
	l.cb.Store(&fn)
}

// SetMinLevel sets the minimum level that reaches the callback.
func (l *Logger) SetMinLevel(level Level) { l.min.Store(int32(level)) }

// Log formats and emits a line at the given level, dropping it
// if level is below the current minimum.
func (l *Logger) Log(level Level, format string, args ...any) {
	if level < Level(l.min.Load()) {
		return
	}
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	if cb := l.cb.Load(); cb != nil {
		(*cb)(level, line)
		return
	}
	l.zl.WithLevel(level.zerolog()).Msg(line)
}

// Default returns a Logger writing to stderr through zerolog, at the
// default Info level. It is the logger a Context uses when none is
// supplied explicitly.
func Default() *Logger {
	return New(zerolog.New(os.Stderr).With().Timestamp().Logger())
}

func (l *Logger) Debugf(format string, args ...any)   { l.Log(Debug, format, args...) }
func (l *Logger) Verbosef(format string, args ...any) { l.Log(Verbose, format, args...) }
func (l *Logger) Infof(format string, args ...any)    { l.Log(Info, format, args...) }
func (l *Logger) Warningf(format string, args ...any) { l.Log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...any)   { l.Log(Error, format, args...) }
