// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prompt asks the user to pick one of several choices.
//
// On a terminal the choices are rendered as an interactive list that can
// be navigated with the arrow keys and narrowed by typing. Any other input
// falls back to a numbered list answered one line at a time.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

var (
	// ErrCanceled is returned when the input ends or is interrupted
	// before a choice is made.
	ErrCanceled = errors.New("prompt canceled")
	// ErrNoChoices is returned when there is nothing to choose from.
	ErrNoChoices = errors.New("no choices")
)

// Choice is a selectable item.
type Choice struct {
	Title       string
	Value       string
	Description string
}

// Prompter asks for one of the given choices.
type Prompter interface {
	// Select returns the picked choice.
	Select(message string, choices []Choice) (Choice, error)
	// Autocomplete is like Select, narrowing the choices with Filter
	// while the user types.
	Autocomplete(message string, choices []Choice) (Choice, error)
}

// New returns a Terminal prompter when both in and out are terminals
// and a Line prompter otherwise.
func New(in io.Reader, out, errOut io.Writer) Prompter {
	if fin, ok := in.(terminal.FileReader); ok && term.IsTerminal(int(fin.Fd())) {
		if fout, ok := out.(terminal.FileWriter); ok && term.IsTerminal(int(fout.Fd())) {
			return NewTerminal(fin, fout, errOut)
		}
	}
	return NewLine(in, out)
}

// Filter returns the choices whose title contains input, ignoring case.
func Filter(input string, choices []Choice) []Choice {
	var out []Choice
	for _, c := range choices {
		if matches(input, c) {
			out = append(out, c)
		}
	}
	return out
}

func matches(input string, c Choice) bool {
	return strings.Contains(strings.ToLower(c.Title), strings.ToLower(input))
}
