// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import "io"

// ReplaceErrOutput swaps the writer receiving logger failures
// and returns a function restoring the previous one.
func ReplaceErrOutput(w io.Writer) func() {
	prev := errOutput
	errOutput = w
	return func() { errOutput = prev }
}
