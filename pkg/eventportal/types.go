// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventportal

import (
	"errors"
	"fmt"
)

// ApplicationDomain groups applications and event APIs.
type ApplicationDomain struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Application is a producer or consumer of events.
type Application struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ApplicationDomainID string `json:"applicationDomainId"`
}

// ApplicationVersion is a version of an Application.
type ApplicationVersion struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	Version       string `json:"version"`
	Description   string `json:"description,omitempty"`
	StateID       string `json:"stateId,omitempty"`
}

// EventAPI is a set of events published as one API.
type EventAPI struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ApplicationDomainID string `json:"applicationDomainId"`
	Shared              bool   `json:"shared"`
}

// EventAPIVersion is a version of an EventAPI.
type EventAPIVersion struct {
	ID          string `json:"id"`
	EventAPIID  string `json:"eventApiId"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	StateID     string `json:"stateId,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	PageNumber int  `json:"pageNumber"`
	Count      int  `json:"count"`
	PageSize   int  `json:"pageSize"`
	NextPage   *int `json:"nextPage"`
	TotalPages int  `json:"totalPages"`
}

// Meta is the metadata of a list response.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// listResponse is the envelope of every list endpoint.
type listResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Format is the encoding of a downloaded AsyncAPI document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SchemaSource selects what an AsyncAPI document is generated from.
type SchemaSource string

const (
	SourceApplication SchemaSource = "application"
	SourceEventAPI    SchemaSource = "event_api"
)

var (
	// Formats lists the supported document formats.
	Formats = []string{string(FormatJSON), string(FormatYAML)}
	// AsyncAPIVersions lists the supported AsyncAPI specification versions.
	AsyncAPIVersions = []string{"2.0.0", "2.2.0", "2.5.0"}
	// IncludedExtensions lists the supported extension inclusion modes.
	IncludedExtensions = []string{"all", "parent", "version", "none"}
	// SchemaSources lists the supported schema sources.
	SchemaSources = []string{string(SourceApplication), string(SourceEventAPI)}
)

// ErrInvalidOption is returned for option values outside their enumeration.
var ErrInvalidOption = errors.New("invalid option")

// AsyncAPIOptions shape a downloaded AsyncAPI document.
type AsyncAPIOptions struct {
	Format             Format
	AsyncAPIVersion    string
	IncludedExtensions string
}

// Validate checks the options against the supported values.
// Only Format is required.
func (o AsyncAPIOptions) Validate() error {
	if err := OneOf("format", string(o.Format), Formats); err != nil {
		return err
	}
	if o.AsyncAPIVersion != "" {
		if err := OneOf("async api version", o.AsyncAPIVersion, AsyncAPIVersions); err != nil {
			return err
		}
	}
	if o.IncludedExtensions != "" {
		if err := OneOf("included extensions", o.IncludedExtensions, IncludedExtensions); err != nil {
			return err
		}
	}
	return nil
}

// OneOf returns ErrInvalidOption unless value is one of allowed.
func OneOf(name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q, must be one of %v", ErrInvalidOption, name, value, allowed)
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("event portal: status %d", e.StatusCode)
	}
	return fmt.Sprintf("event portal: status %d: %s", e.StatusCode, e.Message)
}
