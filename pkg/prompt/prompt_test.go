// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/epexport/epexport/pkg/prompt"
	"github.com/google/go-cmp/cmp"
)

func TestNewWithoutTerminal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("2\n"), &out, &out)
	if _, ok := p.(*prompt.Line); !ok {
		t.Fatalf("have prompter %T, want %T", p, (*prompt.Line)(nil))
	}
	have, err := p.Select("Pick one", choices)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(choices[1], have); diff != "" {
		t.Errorf("choice mismatch (-want +have):\n%s", diff)
	}
}

func TestTerminalNoChoices(t *testing.T) {
	t.Parallel()

	p := prompt.NewTerminal(os.Stdin, os.Stdout, os.Stderr)
	if _, err := p.Select("Pick one", nil); !errors.Is(err, prompt.ErrNoChoices) {
		t.Errorf("Select: have error %v, want %v", err, prompt.ErrNoChoices)
	}
	if _, err := p.Autocomplete("Pick one", nil); !errors.Is(err, prompt.ErrNoChoices) {
		t.Errorf("Autocomplete: have error %v, want %v", err, prompt.ErrNoChoices)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]prompt.Choice{choices[0], choices[2]}, prompt.Filter("ORD", choices)); diff != "" {
		t.Errorf("filter mismatch (-want +have):\n%s", diff)
	}
	if have := prompt.Filter("nothing", choices); have != nil {
		t.Errorf("have %v, want nil", have)
	}
}
