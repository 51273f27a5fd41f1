// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile writes downloaded AsyncAPI documents to disk.
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/epexport/epexport/pkg/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

var (
	// ErrEmptyDocument is returned for an empty payload.
	ErrEmptyDocument = errors.New("empty document")
	// ErrNoPath is returned when no output path is given.
	ErrNoPath = errors.New("no output path")
)

// Encode checks that payload is a document in format and returns the bytes
// to write: JSON is indented by two spaces, YAML is kept as received.
func Encode(format eventportal.Format, payload []byte) ([]byte, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyDocument
	}
	switch format {
	case eventportal.FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(payload), "", "  "); err != nil {
			return nil, fmt.Errorf("invalid json document: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case eventportal.FormatYAML:
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("invalid yaml document: %w", err)
		}
		if len(doc) == 0 {
			return nil, ErrEmptyDocument
		}
		return payload, nil
	}
	return nil, eventportal.OneOf("format", string(format), eventportal.Formats)
}

// Writer writes files to a filesystem.
type Writer struct {
	fs     afero.Fs
	logger *log.Logger
}

// NewWriter returns a Writer on fs.
func NewWriter(fs afero.Fs, logger *log.Logger) *Writer {
	return &Writer{
		fs:     fs,
		logger: logger,
	}
}

// Write writes content to path, creating missing parent directories.
// An existing file is replaced.
func (w *Writer) Write(path string, content []byte) error {
	if path == "" {
		return ErrNoPath
	}
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(w.fs, path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("Output written to: " + path)
	return nil
}

// Exists reports whether path exists on fs.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
