// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/election-dashboard/models"
)

// Endpoint paths on the results backend
const (
	PathTallies       = "/votos"
	PathAudit         = "/auditoria"
	PathRegionResults = "/votos_por_departamento"

	// Query parameter used to filter tallies by region
	RegionParam = "departamento"
)

// Limit on response bodies read from the backend (4 MiB)
const maxBodyBytes = 4 << 20

var ErrBadStatus = errors.New("unexpected status")

// NetworkError reports a failed request to the results backend
type NetworkError struct {
	Endpoint string
	Status   int // 0 when no response was received
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client reads election data from the results backend over HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL. A nil httpClient
// uses http.DefaultClient; deadlines come from the request context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Tallies fetches per-party vote counts, optionally for a single region
func (c *Client) Tallies(ctx context.Context, filter models.RegionFilter) ([]models.TallyRecord, error) {
	query := url.Values{}
	if !filter.IsAll() {
		query.Set(RegionParam, string(filter))
	}

	var env models.DataEnvelope[models.TallyRecord]
	if err := c.get(ctx, PathTallies, query, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data), nil
}

// AuditLog fetches the audit log in append order
func (c *Client) AuditLog(ctx context.Context) ([]models.AuditEntry, error) {
	var env models.DataEnvelope[models.AuditEntry]
	if err := c.get(ctx, PathAudit, nil, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data), nil
}

// RegionResults fetches the winning party of every region
func (c *Client) RegionResults(ctx context.Context) ([]models.RegionResult, error) {
	var env models.DataEnvelope[models.RegionResult]
	if err := c.get(ctx, PathRegionResults, nil, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &NetworkError{Endpoint: path, Status: resp.StatusCode, Err: ErrBadStatus}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return &NetworkError{Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
