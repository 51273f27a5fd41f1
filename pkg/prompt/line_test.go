// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/epexport/epexport/pkg/prompt"
	"github.com/google/go-cmp/cmp"
)

var choices = []prompt.Choice{
	{Title: "Orders", Value: "d1", Description: "order handling"},
	{Title: "Billing", Value: "d2"},
	{Title: "Order Archive", Value: "d3"},
}

func TestSelect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    prompt.Choice
		wantErr error
	}{
		{"first", "1\n", choices[0], nil},
		{"retry after invalid", "x\n0\n4\n2\n", choices[1], nil},
		{"no trailing newline", "3", choices[2], nil},
		{"canceled", "", prompt.Choice{}, prompt.ErrCanceled},
		{"canceled after invalid", "9\n", prompt.Choice{}, prompt.ErrCanceled},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			have, err := prompt.NewLine(strings.NewReader(tc.input), &out).Select("Pick one", choices)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("have error %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, have); diff != "" {
				t.Errorf("choice mismatch (-want +have):\n%s", diff)
			}
		})
	}
}

func TestSelectListing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if _, err := prompt.NewLine(strings.NewReader("1\n"), &out).Select("Pick one", choices); err != nil {
		t.Fatal(err)
	}
	want := "Pick one\n  1) Orders - order handling\n  2) Billing\n  3) Order Archive\n> "
	if have := out.String(); have != want {
		t.Errorf("have listing %q, want %q", have, want)
	}
}

func TestSelectNoChoices(t *testing.T) {
	t.Parallel()

	p := prompt.NewLine(strings.NewReader("1\n"), new(bytes.Buffer))
	if _, err := p.Select("Pick one", nil); !errors.Is(err, prompt.ErrNoChoices) {
		t.Errorf("Select: have error %v, want %v", err, prompt.ErrNoChoices)
	}
	if _, err := p.Autocomplete("Pick one", nil); !errors.Is(err, prompt.ErrNoChoices) {
		t.Errorf("Autocomplete: have error %v, want %v", err, prompt.ErrNoChoices)
	}
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    prompt.Choice
		wantErr error
	}{
		{"number", "2\n", choices[1], nil},
		{"unique filter", "bill\n", choices[1], nil},
		{"narrowed then number", "order\n2\n", choices[2], nil},
		{"no match then filter", "zzz\nARCH\n", choices[2], nil},
		{"reset", "order\n\n2\n", choices[1], nil},
		{"canceled", "order\n", prompt.Choice{}, prompt.ErrCanceled},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			have, err := prompt.NewLine(strings.NewReader(tc.input), new(bytes.Buffer)).Autocomplete("Pick one", choices)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("have error %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, have); diff != "" {
				t.Errorf("choice mismatch (-want +have):\n%s", diff)
			}
		})
	}
}
