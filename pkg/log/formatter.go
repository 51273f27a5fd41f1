// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// defaultTimestampLayout renders ISO-8601 UTC time with milliseconds.
const defaultTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	colorReset  = "\x1b[0m"
	colorBright = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
)

var levelColors = map[Level]string{
	LevelInfo:  colorGreen,
	LevelWarn:  colorYellow,
	LevelError: colorRed,
	LevelDebug: colorBlue,
}

// fmtOptions carries options for the formatter.
type fmtOptions struct {
	timestampLayout string
	color           bool
	colorSet        bool
}

// formatter renders the prefix of a stream log line.
type formatter struct {
	layout string
	color  bool
	now    func() time.Time
}

// newFormatter returns a formatter for writes to w.
func newFormatter(opts fmtOptions, w io.Writer) formatter {
	f := formatter{
		layout: opts.timestampLayout,
		color:  opts.color,
		now:    time.Now,
	}
	if f.layout == "" {
		f.layout = defaultTimestampLayout
	}
	if !opts.colorSet {
		f.color = isTerminal(w)
	}
	return f
}

// format returns "<timestamp> <LEVEL> [<label>]: <msg>".
func (f formatter) format(level Level, label, msg string) string {
	ts := f.now().UTC().Format(f.layout)
	name := strings.ToUpper(level.String())

	var b strings.Builder
	b.Grow(len(ts) + len(name) + len(label) + len(msg) + 32)
	if f.color {
		b.WriteString(colorDim + ts + colorReset + " ")
		b.WriteString(levelColors[level] + name + colorReset + " ")
		b.WriteString(colorBright + "[" + label + "]:" + colorReset + " ")
	} else {
		b.WriteString(ts + " " + name + " [" + label + "]: ")
	}
	b.WriteString(msg)
	return b.String()
}

// isTerminal reports whether w, possibly wrapped by Lock, is a terminal.
func isTerminal(w io.Writer) bool {
	if lw, ok := w.(*lockWriter); ok {
		w = lw.w
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
