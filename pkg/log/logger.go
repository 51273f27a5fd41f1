// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

const (
	// DefaultLabel is the label of a logger created without WithLabel.
	DefaultLabel = "default"
	// DefaultLevel is the threshold of a logger created without WithLevel.
	DefaultLevel = LevelError
	// labelSeparator joins parent and child labels.
	labelSeparator = ":"
)

var (
	stdout = Lock(os.Stdout)
	stderr = Lock(os.Stderr)

	// errOutput receives failures of the logger itself.
	errOutput io.Writer = os.Stderr
)

// levelHooks is a helper type for storing and
// help triggering the hooks on a logger instance.
type levelHooks map[Level][]Hook

// with returns a copy of lh with hooks appended at level l.
// The receiver is never modified, so it can be shared with children.
func (lh levelHooks) with(l Level, hooks ...Hook) levelHooks {
	c := make(levelHooks, len(lh)+1)
	for k, v := range lh {
		c[k] = v[:len(v):len(v)]
	}
	c[l] = append(c[l], hooks...)
	return c
}

// fire triggers all the hooks for the given level.
func (lh levelHooks) fire(level Level) error {
	for _, hook := range lh[level] {
		if err := hook.Fire(level); err != nil {
			return err
		}
	}
	return nil
}

// Logger is a leveled logger bound to a label.
// The threshold may be changed concurrently with logging;
// everything else is fixed at creation.
type Logger struct {
	// label identifies the scope of the logger.
	label string

	// level is the current threshold.
	level *atomic.Int32

	enabled bool

	// sink replaces the stream writer when set.
	sink Sink

	// stdout and stderr are the streams used without a sink.
	stdout, stderr io.Writer

	// levelHooks allow triggering of registered hooks
	// on their associated severity log levels.
	levelHooks levelHooks

	fmtOptions     fmtOptions
	outFmt, errFmt formatter
}

// New returns a Logger configured by opts. Unless overridden the label
// is DefaultLabel, the threshold DefaultLevel and the logger writes to
// the process standard streams.
func New(opts ...Option) *Logger {
	o := &Options{
		label:  DefaultLabel,
		level:  DefaultLevel,
		stdout: stdout,
		stderr: stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	return newLogger(o)
}

func newLogger(o *Options) *Logger {
	return &Logger{
		label:      o.label,
		level:      atomic.NewInt32(int32(o.level)),
		enabled:    !o.disabled,
		sink:       o.sink,
		stdout:     o.stdout,
		stderr:     o.stderr,
		levelHooks: o.levelHooks,
		fmtOptions: o.fmtOptions,
		outFmt:     newFormatter(o.fmtOptions, o.stdout),
		errFmt:     newFormatter(o.fmtOptions, o.stderr),
	}
}

// Child returns a new Logger that starts from the current settings of l.
// Options present in opts override them for the child only. A non-empty
// WithLabel value is appended to the parent label.
func (l *Logger) Child(opts ...Option) *Logger {
	o := &Options{
		label:      l.label,
		level:      l.GetLogLevel(),
		disabled:   !l.enabled,
		sink:       l.sink,
		stdout:     l.stdout,
		stderr:     l.stderr,
		levelHooks: l.levelHooks,
		fmtOptions: l.fmtOptions,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.labelSet && o.label != "" {
		o.label = l.label + labelSeparator + o.label
	} else {
		o.label = l.label
	}
	return newLogger(o)
}

// Label returns the label of the logger.
func (l *Logger) Label() string {
	return l.label
}

// Enabled reports whether the logger emits anything at all.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// GetLogLevel returns the current threshold.
func (l *Logger) GetLogLevel() Level {
	return Level(l.level.Load())
}

// SetLogLevel sets the threshold to the level named by name, ignoring case,
// and returns the resulting threshold. An unknown name leaves the threshold
// unchanged and is reported at error level, subject to the usual filtering.
func (l *Logger) SetLogLevel(name string) Level {
	level, err := ParseLevel(name)
	if err != nil {
		l.Error(fmt.Sprintf("Invalid log level: %s", name))
		return l.GetLogLevel()
	}
	l.level.Store(int32(level))
	return level
}

// Silent accepts a message at silent level, which is never written.
func (l *Logger) Silent(msg string, args ...interface{}) {
	l.log(LevelSilent, msg, args)
}

// Info logs msg at info level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args)
}

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args)
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args)
}

// Log logs msg at the given level.
func (l *Logger) Log(level Level, msg string, args ...interface{}) {
	l.log(level, msg, args)
}

// log emits msg with args to the sink or the level's stream.
// Failures are reported to errOutput and otherwise dropped.
func (l *Logger) log(level Level, msg string, args []interface{}) {
	if !l.enabled || !ShouldPublish(l.GetLogLevel(), level) {
		return
	}
	// Silent passes the filter at every threshold but is never emitted,
	// not even to a sink.
	if level == LevelSilent {
		return
	}

	var merr *multierror.Error
	if l.sink != nil {
		l.sink(level, msg, args...)
	} else if err := l.write(level, msg, args); err != nil {
		merr = multierror.Append(
			merr,
			fmt.Errorf("log %s: failed to write message: %w", level, err),
		)
	}
	if err := l.levelHooks.fire(level); err != nil {
		merr = multierror.Append(
			merr,
			fmt.Errorf("log %s: failed to fire hooks: %w", level, err),
		)
	}
	if err := merr.ErrorOrNil(); err != nil {
		fmt.Fprintln(errOutput, err)
	}
}

// write formats the line and passes it, followed by args,
// to the stream selected by level.
func (l *Logger) write(level Level, msg string, args []interface{}) error {
	w, f := l.stdout, l.outFmt
	if level == LevelError || level == LevelWarn {
		w, f = l.stderr, l.errFmt
	}
	operands := make([]interface{}, 0, 1+len(args))
	operands = append(operands, f.format(level, l.label, msg))
	operands = append(operands, args...)
	_, err := fmt.Fprintln(w, operands...)
	return err
}
