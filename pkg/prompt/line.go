// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var _ Prompter = (*Line)(nil)

// Line is a Prompter for input that is not a terminal. Choices are
// listed with numbers and answers are read one line at a time.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a Line prompter reading from in and writing to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Select shows a numbered list and returns the choice whose number is entered.
func (p *Line) Select(message string, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, ErrNoChoices
	}
	p.list(message, choices)
	for {
		answer, err := p.readLine()
		if err != nil {
			return Choice{}, err
		}
		if c, ok := pick(answer, choices); ok {
			return c, nil
		}
		fmt.Fprintf(p.out, "Enter a number between 1 and %d: ", len(choices))
	}
}

// Autocomplete is like Select but also accepts text, which narrows the
// list to the choices whose title contains it, ignoring case. A filter
// matching exactly one choice selects it; an empty answer resets the list.
func (p *Line) Autocomplete(message string, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, ErrNoChoices
	}
	current := choices
	p.list(message, current)
	for {
		answer, err := p.readLine()
		if err != nil {
			return Choice{}, err
		}
		if c, ok := pick(answer, current); ok {
			return c, nil
		}

		filtered := choices
		if answer != "" {
			filtered = Filter(answer, choices)
		}
		switch len(filtered) {
		case 0:
			fmt.Fprintf(p.out, "No match for %q, try again: ", answer)
		case 1:
			return filtered[0], nil
		default:
			current = filtered
			p.list(message, current)
		}
	}
}

func (p *Line) list(message string, choices []Choice) {
	fmt.Fprintln(p.out, message)
	for i, c := range choices {
		if c.Description != "" {
			fmt.Fprintf(p.out, "  %d) %s - %s\n", i+1, c.Title, c.Description)
		} else {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.Title)
		}
	}
	fmt.Fprint(p.out, "> ")
}

// readLine returns the next trimmed line. A final line without
// a newline is still returned; ErrCanceled follows it.
func (p *Line) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// pick returns the choice numbered by answer, counting from one.
func pick(answer string, choices []Choice) (Choice, bool) {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(choices) {
		return Choice{}, false
	}
	return choices[n-1], true
}
