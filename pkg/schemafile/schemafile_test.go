// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/epexport/epexport/pkg/log"
	"github.com/epexport/epexport/pkg/schemafile"
	"github.com/spf13/afero"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		format  eventportal.Format
		payload string
		want    string
		wantErr bool
	}{{
		name:    "json indented",
		format:  eventportal.FormatJSON,
		payload: `{"asyncapi":"2.5.0","info":{"title":"t"}}`,
		want:    "{\n  \"asyncapi\": \"2.5.0\",\n  \"info\": {\n    \"title\": \"t\"\n  }\n}\n",
	}, {
		name:    "json invalid",
		format:  eventportal.FormatJSON,
		payload: `{"asyncapi":`,
		wantErr: true,
	}, {
		name:    "yaml kept",
		format:  eventportal.FormatYAML,
		payload: "asyncapi: 2.5.0\ninfo:\n  title: t\n",
		want:    "asyncapi: 2.5.0\ninfo:\n  title: t\n",
	}, {
		name:    "yaml invalid",
		format:  eventportal.FormatYAML,
		payload: "asyncapi: [2.5.0\n",
		wantErr: true,
	}, {
		name:    "yaml scalar",
		format:  eventportal.FormatYAML,
		payload: "just text",
		wantErr: true,
	}, {
		name:    "empty",
		format:  eventportal.FormatJSON,
		payload: "  \n",
		wantErr: true,
	}, {
		name:    "unknown format",
		format:  "xml",
		payload: "<a/>",
		wantErr: true,
	}}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			have, err := schemafile.Encode(tc.format, []byte(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, have output %q", have)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(have) != tc.want {
				t.Errorf("have %q, want %q", have, tc.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	var logged []string
	logger := log.New(log.WithLevel(log.LevelInfo), log.WithSink(func(_ log.Level, msg string, _ ...interface{}) {
		logged = append(logged, msg)
	}))
	w := schemafile.NewWriter(fs, logger)

	path := "/out/nested/schema.json"
	if err := w.Write(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("have content %q, want %q", got, "second")
	}
	if len(logged) != 2 || logged[1] != "Output written to: "+path {
		t.Errorf("have log %v", logged)
	}

	if ok, err := schemafile.Exists(fs, path); err != nil || !ok {
		t.Errorf("Exists(%q): have %t, %v", path, ok, err)
	}
	if ok, err := schemafile.Exists(fs, "/nope"); err != nil || ok {
		t.Errorf("Exists(%q): have %t, %v", "/nope", ok, err)
	}
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	w := schemafile.NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), log.NewTestLogger(t))

	if err := w.Write("", []byte("x")); !errors.Is(err, schemafile.ErrNoPath) {
		t.Errorf("have error %v, want %v", err, schemafile.ErrNoPath)
	}
	err := w.Write("/out/schema.yaml", []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "/out") {
		t.Errorf("have error %v, want a write failure", err)
	}
}
