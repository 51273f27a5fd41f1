// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventportal is a client for the Solace Event Portal v2 REST API,
// limited to what is needed to browse application domains, applications,
// event APIs and their versions, and to download AsyncAPI documents.
package eventportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the Solace Cloud API endpoint.
	DefaultBaseURL = "https://api.solace.cloud"

	architecturePath = "/api/v2/architecture/"
	defaultPageSize  = 100
	defaultTimeout   = 60 * time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// ErrMissingToken is returned by New when no token is given.
var ErrMissingToken = errors.New("missing token")

// Options configure a Client.
type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Token is a Solace Cloud API token. Required.
	Token string
	// HTTPClient defaults to a client with a one minute timeout.
	HTTPClient *http.Client
	// Logger defaults to NopLogger.
	Logger Logger
	// PageSize is the page size of list requests.
	PageSize int
}

// Client talks to the Event Portal API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     Logger
	pageSize   int
}

// New returns a Client for o.
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.Token) == "" {
		return nil, ErrMissingToken
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", o.BaseURL)
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if o.Logger == nil {
		o.Logger = NopLogger{}
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	return &Client{
		baseURL:    u,
		token:      strings.TrimSpace(o.Token),
		httpClient: o.HTTPClient,
		logger:     o.Logger,
		pageSize:   o.PageSize,
	}, nil
}

// ApplicationDomains returns all application domains.
func (c *Client) ApplicationDomains(ctx context.Context) ([]ApplicationDomain, error) {
	return list[ApplicationDomain](ctx, c, "applicationDomains", nil)
}

// Applications returns the applications of an application domain.
func (c *Client) Applications(ctx context.Context, domainID string) ([]Application, error) {
	q := url.Values{"applicationDomainId": {domainID}}
	return list[Application](ctx, c, "applications", q)
}

// ApplicationVersions returns the versions of an application.
func (c *Client) ApplicationVersions(ctx context.Context, applicationID string) ([]ApplicationVersion, error) {
	q := url.Values{"applicationIds": {applicationID}}
	return list[ApplicationVersion](ctx, c, "applicationVersions", q)
}

// EventAPIs returns the event APIs of an application domain,
// restricted to shared ones when shared is true.
func (c *Client) EventAPIs(ctx context.Context, domainID string, shared bool) ([]EventAPI, error) {
	q := url.Values{"applicationDomainIds": {domainID}}
	if shared {
		q.Set("shared", "true")
	}
	return list[EventAPI](ctx, c, "eventApis", q)
}

// EventAPIVersions returns the versions of an event API.
func (c *Client) EventAPIVersions(ctx context.Context, eventAPIID string) ([]EventAPIVersion, error) {
	q := url.Values{"eventApiIds": {eventAPIID}}
	return list[EventAPIVersion](ctx, c, "eventApiVersions", q)
}

// ApplicationVersionAsyncAPI downloads the AsyncAPI document of an application version.
func (c *Client) ApplicationVersionAsyncAPI(ctx context.Context, versionID string, o AsyncAPIOptions) ([]byte, error) {
	return c.asyncAPI(ctx, "applicationVersions", versionID, o)
}

// EventAPIVersionAsyncAPI downloads the AsyncAPI document of an event API version.
func (c *Client) EventAPIVersionAsyncAPI(ctx context.Context, versionID string, o AsyncAPIOptions) ([]byte, error) {
	return c.asyncAPI(ctx, "eventApiVersions", versionID, o)
}

func (c *Client) asyncAPI(ctx context.Context, resource, versionID string, o AsyncAPIOptions) ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if versionID == "" {
		return nil, fmt.Errorf("%w: empty version id", ErrInvalidOption)
	}
	q := url.Values{"format": {string(o.Format)}}
	if o.AsyncAPIVersion != "" {
		q.Set("asyncApiVersion", o.AsyncAPIVersion)
	}
	if o.IncludedExtensions != "" {
		q.Set("includedExtensions", o.IncludedExtensions)
	}
	accept := "application/json"
	if o.Format == FormatYAML {
		accept = "application/x-yaml, text/yaml, */*"
	}
	path := architecturePath + resource + "/" + url.PathEscape(versionID) + "/asyncApi"
	return c.get(ctx, path, q, accept)
}

// list fetches every page of a list resource.
func list[T any](ctx context.Context, c *Client, resource string, query url.Values) ([]T, error) {
	items := make([]T, 0)
	page := 1
	for {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("pageSize", strconv.Itoa(c.pageSize))
		q.Set("pageNumber", strconv.Itoa(page))

		body, err := c.get(ctx, architecturePath+resource, q, "application/json")
		if err != nil {
			return nil, err
		}
		var res listResponse[T]
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, fmt.Errorf("decode %s: %w", resource, err)
		}
		items = append(items, res.Data...)

		p := res.Meta.Pagination
		c.logger.Debugf("retrieved %d of %d %s (page %d)", len(items), p.Count, resource, page)
		if p.NextPage == nil || *p.NextPage <= page {
			return items, nil
		}
		page = *p.NextPage
	}
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values, accept string) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-Id", id)

	c.logger.Debugf("request %s: GET %s", id, u.String())
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		c.logger.Warnf("request %s: %s", id, res.Status)
		return nil, newAPIError(res.StatusCode, body)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c.logger.Debugf("request %s: %s, %d bytes", id, res.Status, len(body))
	return body, nil
}

// newAPIError extracts the message of an error response,
// falling back to the raw body.
func newAPIError(status int, body []byte) *APIError {
	var v struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &v); err == nil && v.Message != "" {
		msg = v.Message
	}
	return &APIError{StatusCode: status, Message: msg}
}
