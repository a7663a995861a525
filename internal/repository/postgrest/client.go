// Package postgrest implements repository.StatuteRepository against a
// Supabase/PostgREST endpoint.
package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"statutes/internal/model"
	"statutes/internal/repository"
)

// DefaultBatchSize matches PostgREST's stock max-rows setting.
const DefaultBatchSize = 1000

// Options configures a Client.
type Options struct {
	// URL is the project URL, e.g. https://xyz.supabase.co. The REST path
	// /rest/v1 is appended.
	URL               string
	Key               string
	Schema            string
	Table             string
	JurisdictionField string
	BatchSize         int
	HTTPClient        *http.Client
}

// Client reads statutes through the PostgREST HTTP API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	tableURL          string
	key               string
	schema            string
	jurisdictionField string
	batchSize         int
	http              *http.Client
}

// New validates options and builds a Client. Without an explicit HTTP
// client, requests go through an otelhttp-instrumented default transport.
func New(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("postgrest url is required")
	}
	if opts.Key == "" {
		return nil, fmt.Errorf("postgrest api key is required")
	}
	if opts.Table == "" {
		return nil, fmt.Errorf("postgrest table is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid postgrest url %q", opts.URL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if opts.JurisdictionField == "" {
		opts.JurisdictionField = "state"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	return &Client{
		tableURL:          base.String() + "/rest/v1/" + url.PathEscape(opts.Table),
		key:               opts.Key,
		schema:            opts.Schema,
		jurisdictionField: opts.JurisdictionField,
		batchSize:         opts.BatchSize,
		http:              hc,
	}, nil
}

var _ repository.StatuteRepository = (*Client)(nil)

// Jurisdictions pages through the jurisdiction column in batches and
// returns the distinct codes sorted ascending.
func (c *Client) Jurisdictions(ctx context.Context, recordType string) ([]string, error) {
	params := url.Values{}
	params.Set("select", "jurisdiction:"+c.jurisdictionField)
	params.Set("type", "eq."+recordType)

	seen := make(map[string]struct{})
	for offset := 0; ; offset += c.batchSize {
		var batch []struct {
			Jurisdiction *string `json:"jurisdiction"`
		}
		pq := repository.PageQuery{Offset: offset, Limit: c.batchSize}
		if err := c.getRange(ctx, params, pq, &batch); err != nil {
			return nil, fmt.Errorf("query jurisdictions: %w", err)
		}
		for _, row := range batch {
			if row.Jurisdiction != nil {
				seen[*row.Jurisdiction] = struct{}{}
			}
		}
		if len(batch) < c.batchSize {
			break
		}
	}

	out := make([]string, 0, len(seen))
	for j := range seen {
		out = append(out, j)
	}
	slices.Sort(out)
	return out, nil
}

// Count asks PostgREST for an exact count without transferring rows.
func (c *Client) Count(ctx context.Context, f repository.StatuteFilter) (int, error) {
	params := filterParams(f, c.jurisdictionField)
	params.Set("select", "id")

	req, err := c.newRequest(ctx, http.MethodHead, params)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("count statutes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("count statutes: %w", decodeError(resp))
	}
	total, err := parseContentRangeTotal(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("count statutes: %w", err)
	}
	return total, nil
}

// Fetch returns rows [pq.Offset, pq.Last()] using the Range header.
func (c *Client) Fetch(ctx context.Context, f repository.StatuteFilter, pq repository.PageQuery) ([]model.RawStatute, error) {
	params := filterParams(f, c.jurisdictionField)
	params.Set("select", fmt.Sprintf(statuteSelect, c.jurisdictionField))

	items := make([]model.RawStatute, 0)
	if err := c.getRange(ctx, params, pq, &items); err != nil {
		return nil, fmt.Errorf("fetch statutes: %w", err)
	}
	return items, nil
}

// FindByID returns the first row whose id equals the identifier.
func (c *Client) FindByID(ctx context.Context, id string) (*model.RawStatute, error) {
	params := url.Values{}
	params.Set("select", fmt.Sprintf(statuteSelect, c.jurisdictionField))
	params.Set("id", "eq."+id)
	params.Set("limit", "1")

	var items []model.RawStatute
	if err := c.get(ctx, params, nil, &items); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == invalidTextRepresentation {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find statute %s: %w", id, err)
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

// Ping issues a cheap HEAD request against the table.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("select", "id")
	params.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodHead, params)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) getRange(ctx context.Context, params url.Values, pq repository.PageQuery, out any) error {
	h := http.Header{}
	h.Set("Range-Unit", "items")
	h.Set("Range", strconv.Itoa(pq.Offset)+"-"+strconv.Itoa(pq.Last()))

	err := c.get(ctx, params, h, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusRequestedRangeNotSatisfiable {
		// Offset past the last row.
		return nil
	}
	return err
}

func (c *Client) get(ctx context.Context, params url.Values, h http.Header, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, params)
	if err != nil {
		return err
	}
	for k, vs := range h {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.tableURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if c.schema != "" {
		req.Header.Set("Accept-Profile", c.schema)
	}
	return req, nil
}

// parseContentRangeTotal reads the total from "0-99/250" or "*/250".
func parseContentRangeTotal(v string) (int, error) {
	i := strings.LastIndexByte(v, '/')
	if i < 0 {
		return 0, fmt.Errorf("content-range %q has no total", v)
	}
	total, err := strconv.Atoi(v[i+1:])
	if err != nil {
		return 0, fmt.Errorf("content-range %q has no exact total", v)
	}
	return total, nil
}
