// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log provides a small leveled logger with labels,
// child derivation and pluggable sinks.
//
// Severities form a fixed ordered list: silent, info, warn, error, debug.
// A message is emitted when its position in that list is less than or
// equal to the position of the logger threshold, so debug is the most
// permissive threshold and silent the least.
package log

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidLevel is returned when a string does not name a Level.
var ErrInvalidLevel = errors.New("invalid log level")

// Level specifies a severity of a message and the threshold of a Logger.
type Level int32

const (
	// LevelSilent as a threshold disables all output. Messages logged
	// at this level are never written.
	LevelSilent Level = iota
	// LevelInfo allows only info messages.
	LevelInfo
	// LevelWarn allows info and warn messages.
	LevelWarn
	// LevelError allows info, warn and error messages.
	LevelError
	// LevelDebug allows every message.
	LevelDebug
)

// Levels lists all severities in filter order.
var Levels = []Level{LevelSilent, LevelInfo, LevelWarn, LevelError, LevelDebug}

var levelNames = [...]string{
	LevelSilent: "silent",
	LevelInfo:   "info",
	LevelWarn:   "warn",
	LevelError:  "error",
	LevelDebug:  "debug",
}

// String implements the fmt.Stringer interface.
func (l Level) String() string {
	if !l.valid() {
		return strconv.FormatInt(int64(l), 10)
	}
	return levelNames[l]
}

func (l Level) valid() bool {
	return l >= LevelSilent && l <= LevelDebug
}

// ParseLevel returns the Level named by s, ignoring case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelSilent, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// IsValidLevel reports whether s names a Level, ignoring case.
func IsValidLevel(s string) bool {
	_, err := ParseLevel(s)
	return err == nil
}

// ShouldPublish reports whether a message at level passes the threshold.
// Values outside the fixed set never pass.
func ShouldPublish(threshold, level Level) bool {
	if !threshold.valid() || !level.valid() {
		return false
	}
	return level <= threshold
}

// Sink receives raw log calls in place of the default stream writer.
type Sink func(level Level, msg string, args ...interface{})

// Hook that is fired when logging
// on the associated severity log level.
// Note, the call must be non-blocking.
type Hook interface {
	Fire(Level) error
}

// Lock wraps io.Writer in a mutex to make it safe for concurrent use.
// In particular, *os.Files must be locked before use.
func Lock(w io.Writer) io.Writer {
	if _, ok := w.(*lockWriter); ok {
		return w // No need to layer on another lock.
	}
	return &lockWriter{w: w}
}

// lockWriter attaches mutex to io.Writer for convenience of usage.
type lockWriter struct {
	sync.Mutex
	w io.Writer
}

// Write implements the io.Writer interface.
func (ls *lockWriter) Write(bs []byte) (int, error) {
	ls.Lock()
	n, err := ls.w.Write(bs)
	ls.Unlock()
	return n, err
}

// Options specifies parameters that affect logger behavior.
// Each field is paired with a flag recording whether an Option set it,
// so Child can tell overrides apart from zero values.
type Options struct {
	label    string
	labelSet bool

	level    Level
	levelSet bool

	disabled    bool
	disabledSet bool

	sink    Sink
	sinkSet bool

	stdout, stderr io.Writer

	levelHooks levelHooks
	fmtOptions fmtOptions
}

// Option represent Options parameters modifier.
type Option func(*Options)

// WithLabel sets the logger label. On Child the label
// is appended to the parent's one, separated by a colon.
func WithLabel(label string) Option {
	return func(opts *Options) {
		opts.label = label
		opts.labelSet = true
	}
}

// WithLevel sets the threshold. Values outside the fixed set are ignored.
func WithLevel(level Level) Option {
	return func(opts *Options) {
		if !level.valid() {
			return
		}
		opts.level = level
		opts.levelSet = true
	}
}

// WithLevelName sets the threshold from its name.
// Names that fail ParseLevel are ignored.
func WithLevelName(name string) Option {
	return func(opts *Options) {
		if level, err := ParseLevel(name); err == nil {
			opts.level = level
			opts.levelSet = true
		}
	}
}

// WithDisabled turns all emission off when disabled is true.
func WithDisabled(disabled bool) Option {
	return func(opts *Options) {
		opts.disabled = disabled
		opts.disabledSet = true
	}
}

// WithSink tells the logger to hand every emitted call to sink
// instead of formatting it to the output streams.
func WithSink(sink Sink) Option {
	return func(opts *Options) {
		opts.sink = sink
		opts.sinkSet = true
	}
}

// WithOutput sets the streams used when no sink is configured.
// Error and warn messages go to stderr, the rest to stdout.
// Nil writers leave the current stream in place.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(opts *Options) {
		if stdout != nil {
			opts.stdout = stdout
		}
		if stderr != nil {
			opts.stderr = stderr
		}
	}
}

// WithTimestampLayout tells the logger how to render timestamps.
// For more details, see docs for Go's time.Layout.
func WithTimestampLayout(layout string) Option {
	return func(opts *Options) { opts.fmtOptions.timestampLayout = layout }
}

// WithColor forces ANSI colors on or off. By default colors are
// used only when the stream is a terminal.
func WithColor(enabled bool) Option {
	return func(opts *Options) {
		opts.fmtOptions.color = enabled
		opts.fmtOptions.colorSet = true
	}
}

// WithLevelHooks tells the logger to register and execute hooks
// at the given severity level. LevelSilent registers nothing.
func WithLevelHooks(l Level, hooks ...Hook) Option {
	return func(opts *Options) {
		if l == LevelSilent || !l.valid() {
			return
		}
		opts.levelHooks = opts.levelHooks.with(l, hooks...)
	}
}

// WithHooks registers hooks with every emitting severity level.
func WithHooks(hooks ...Hook) Option {
	return func(opts *Options) {
		for _, l := range Levels[1:] {
			opts.levelHooks = opts.levelHooks.with(l, hooks...)
		}
	}
}
