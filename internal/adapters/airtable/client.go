package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Client is a thin wrapper over the Airtable Web API, authenticated with a
// personal access token as a bearer header.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (gjson.Result, error) {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, err
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("airtable: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("airtable: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("airtable: %s %s: status %d: %s", method, path, resp.StatusCode, errSnippet(data))
	}
	return gjson.ParseBytes(data), nil
}

func errSnippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}

// Bases lists the bases the token can access.
func (c *Client) Bases(ctx context.Context) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/meta/bases", nil, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("bases").ForEach(func(_, b gjson.Result) bool {
		out = append(out, map[string]any{
			"id":               b.Get("id").String(),
			"name":             b.Get("name").String(),
			"permission_level": b.Get("permissionLevel").String(),
		})
		return true
	})
	return out, nil
}

// Tables lists the tables of a base with their field names.
func (c *Client) Tables(ctx context.Context, baseID string) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/meta/bases/"+baseID+"/tables", nil, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("tables").ForEach(func(_, t gjson.Result) bool {
		fields := []string{}
		t.Get("fields").ForEach(func(_, f gjson.Result) bool {
			fields = append(fields, f.Get("name").String())
			return true
		})
		out = append(out, map[string]any{
			"id":     t.Get("id").String(),
			"name":   t.Get("name").String(),
			"fields": fields,
		})
		return true
	})
	return out, nil
}

// RecordQuery narrows a record listing.
type RecordQuery struct {
	FilterByFormula string
	MaxRecords      int
	View            string
	Offset          string
}

// RecordPage is one page of a record listing; Offset is non-empty when more
// pages remain.
type RecordPage struct {
	Records []map[string]any `json:"records"`
	Offset  string           `json:"offset,omitempty"`
}

// ListRecords lists records of a table.
func (c *Client) ListRecords(ctx context.Context, baseID, table string, rq RecordQuery) (*RecordPage, error) {
	q := url.Values{}
	if rq.FilterByFormula != "" {
		q.Set("filterByFormula", rq.FilterByFormula)
	}
	if rq.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(rq.MaxRecords))
	}
	if rq.View != "" {
		q.Set("view", rq.View)
	}
	if rq.Offset != "" {
		q.Set("offset", rq.Offset)
	}
	res, err := c.do(ctx, http.MethodGet, "/"+baseID+"/"+url.PathEscape(table), q, nil)
	if err != nil {
		return nil, err
	}
	page := &RecordPage{Records: []map[string]any{}, Offset: res.Get("offset").String()}
	res.Get("records").ForEach(func(_, r gjson.Result) bool {
		page.Records = append(page.Records, shapeRecord(r))
		return true
	})
	return page, nil
}

// CreateRecord inserts one record.
func (c *Client) CreateRecord(ctx context.Context, baseID, table string, fields map[string]any) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPost, "/"+baseID+"/"+url.PathEscape(table), nil, map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	return shapeRecord(res), nil
}

// UpdateRecord applies a partial field update to one record.
func (c *Client) UpdateRecord(ctx context.Context, baseID, table, recordID string, fields map[string]any) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPatch, "/"+baseID+"/"+url.PathEscape(table)+"/"+recordID, nil, map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	return shapeRecord(res), nil
}

// DeleteRecord removes one record.
func (c *Client) DeleteRecord(ctx context.Context, baseID, table, recordID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/"+baseID+"/"+url.PathEscape(table)+"/"+recordID, nil, nil)
	return err
}

func shapeRecord(r gjson.Result) map[string]any {
	fields := map[string]any{}
	r.Get("fields").ForEach(func(k, v gjson.Result) bool {
		fields[k.String()] = v.Value()
		return true
	})
	return map[string]any{
		"id":           r.Get("id").String(),
		"created_time": r.Get("createdTime").String(),
		"fields":       fields,
	}
}
