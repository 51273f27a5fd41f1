// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const defaultPageSize = 10

var _ Prompter = (*Terminal)(nil)

// Terminal is a Prompter rendering an interactive list on a terminal.
type Terminal struct {
	stdio    terminal.Stdio
	pageSize int
}

// NewTerminal returns a Terminal prompter. Questions are drawn on out,
// errOut receives the library's own error messages.
func NewTerminal(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Terminal {
	return &Terminal{
		stdio: terminal.Stdio{
			In:  in,
			Out: out,
			Err: errOut,
		},
		pageSize: defaultPageSize,
	}
}

// Select shows the choices and returns the one picked with the arrow keys.
func (p *Terminal) Select(message string, choices []Choice) (Choice, error) {
	return p.ask(message, choices, nil)
}

// Autocomplete is like Select, but typed text narrows the list to
// the choices whose title contains it, ignoring case.
func (p *Terminal) Autocomplete(message string, choices []Choice) (Choice, error) {
	return p.ask(message, choices, func(filter, _ string, i int) bool {
		return matches(filter, choices[i])
	})
}

func (p *Terminal) ask(message string, choices []Choice, filter func(filter, value string, index int) bool) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, ErrNoChoices
	}
	options := make([]string, 0, len(choices))
	for _, c := range choices {
		options = append(options, c.Title)
	}

	q := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: p.pageSize,
		Filter:   filter,
		Description: func(_ string, i int) string {
			return choices[i].Description
		},
	}

	var index int
	err := survey.AskOne(q, &index, survey.WithStdio(p.stdio.In, p.stdio.Out, p.stdio.Err))
	switch {
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, io.EOF):
		return Choice{}, ErrCanceled
	case err != nil:
		return Choice{}, fmt.Errorf("prompt: %w", err)
	}
	if index < 0 || index >= len(choices) {
		return Choice{}, fmt.Errorf("prompt: answer %d out of range", index)
	}
	return choices[index], nil
}
