// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mock provides an in-process Event Portal API for tests.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/gorilla/mux"
)

// Data is the content served by a Server.
type Data struct {
	// Token, when set, is the only accepted bearer token.
	Token string

	Domains             []eventportal.ApplicationDomain
	Applications        []eventportal.Application
	ApplicationVersions []eventportal.ApplicationVersion
	EventAPIs           []eventportal.EventAPI
	EventAPIVersions    []eventportal.EventAPIVersion

	// Documents maps version ids to AsyncAPI documents.
	Documents map[string]string
}

// Request is a request received by a Server.
type Request struct {
	Path  string
	Query url.Values
}

// Server is a fake Event Portal backed by Data.
type Server struct {
	*httptest.Server

	data Data

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a Server. Callers must Close it.
func NewServer(data Data) *Server {
	s := &Server{data: data}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v2/architecture").Subrouter()
	api.Use(s.record, s.authenticate)
	api.HandleFunc("/applicationDomains", s.listDomains).Methods(http.MethodGet)
	api.HandleFunc("/applications", s.listApplications).Methods(http.MethodGet)
	api.HandleFunc("/applicationVersions", s.listApplicationVersions).Methods(http.MethodGet)
	api.HandleFunc("/applicationVersions/{id}/asyncApi", s.document).Methods(http.MethodGet)
	api.HandleFunc("/eventApis", s.listEventAPIs).Methods(http.MethodGet)
	api.HandleFunc("/eventApiVersions", s.listEventAPIVersions).Methods(http.MethodGet)
	api.HandleFunc("/eventApiVersions/{id}/asyncApi", s.document).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Path: r.URL.Path, Query: r.URL.Query()})
		s.mu.Unlock()
		h.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.data.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.data.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		h.ServeHTTP(w, r)
	})
}

func (s *Server) listDomains(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, s.data.Domains)
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("applicationDomainId")
	var out []eventportal.Application
	for _, a := range s.data.Applications {
		if domain == "" || a.ApplicationDomainID == domain {
			out = append(out, a)
		}
	}
	writePage(w, r, out)
}

func (s *Server) listApplicationVersions(w http.ResponseWriter, r *http.Request) {
	app := r.URL.Query().Get("applicationIds")
	var out []eventportal.ApplicationVersion
	for _, v := range s.data.ApplicationVersions {
		if app == "" || v.ApplicationID == app {
			out = append(out, v)
		}
	}
	writePage(w, r, out)
}

func (s *Server) listEventAPIs(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("applicationDomainIds")
	shared := r.URL.Query().Get("shared") == "true"
	var out []eventportal.EventAPI
	for _, e := range s.data.EventAPIs {
		if (domain == "" || e.ApplicationDomainID == domain) && (!shared || e.Shared) {
			out = append(out, e)
		}
	}
	writePage(w, r, out)
}

func (s *Server) listEventAPIVersions(w http.ResponseWriter, r *http.Request) {
	api := r.URL.Query().Get("eventApiIds")
	var out []eventportal.EventAPIVersion
	for _, v := range s.data.EventAPIVersions {
		if api == "" || v.EventAPIID == api {
			out = append(out, v)
		}
	}
	writePage(w, r, out)
}

func (s *Server) document(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.data.Documents[mux.Vars(r)["id"]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "version not found"})
		return
	}
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/x-yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// writePage writes the page of items selected by the
// pageSize and pageNumber query parameters.
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if size <= 0 {
		size = 20
	}
	number, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	if number <= 0 {
		number = 1
	}

	start := (number - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	pagination := eventportal.Pagination{
		PageNumber: number,
		Count:      len(items),
		PageSize:   size,
		TotalPages: (len(items) + size - 1) / size,
	}
	if end < len(items) {
		next := number + 1
		pagination.NextPage = &next
	}

	writeJSON(w, http.StatusOK, struct {
		Data []T              `json:"data"`
		Meta eventportal.Meta `json:"meta"`
	}{
		Data: items[start:end],
		Meta: eventportal.Meta{Pagination: pagination},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
