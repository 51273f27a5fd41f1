// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd_test

import (
	"bytes"
	"testing"

	"github.com/epexport/epexport"
	"github.com/epexport/epexport/cmd/epexport/cmd"
)

func TestVersionCmd(t *testing.T) {
	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithArgs("version"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	want := epexport.Version + "\n"
	got := outputBuf.String()
	if got != want {
		t.Errorf("got output %q, want %q", got, want)
	}
}

func TestVersionCmdNeedsNoToken(t *testing.T) {
	t.Setenv("SOLACE_CLOUD_TOKEN", "")
	t.Setenv("CLI_SOLACE_CLOUD_TOKEN", "")

	var outputBuf, errBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithArgs("version", "--verbose"),
		cmd.WithOutput(&outputBuf),
		cmd.WithErrorOutput(&errBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}
	if errBuf.Len() != 0 {
		t.Errorf("unexpected error output %q", errBuf.String())
	}
}
