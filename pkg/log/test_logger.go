// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"strings"
	"testing"
)

// NewTestLogger returns logger used for testing.
// This logger uses t.Log as sink for log outputs
// and lets every message through.
func NewTestLogger(t *testing.T, opts ...Option) *Logger {
	t.Helper()

	opts = append([]Option{
		WithLabel(t.Name()),
		WithLevel(LevelDebug),
		WithSink(testSink(t)),
	}, opts...)

	return New(opts...)
}

func testSink(t *testing.T) Sink {
	return func(level Level, msg string, args ...interface{}) {
		var b strings.Builder
		b.WriteString(strings.ToUpper(level.String()) + " " + msg)
		for _, a := range args {
			b.WriteString(" " + fmt.Sprint(a))
		}
		t.Log(b.String())
	}
}
