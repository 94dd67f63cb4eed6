package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// Client is a thin wrapper over the ClickUp v2 REST API. Authentication is a
// personal token passed verbatim in the Authorization header.
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
	req.Header.Set("Authorization", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("clickup: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("clickup: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("clickup: %s %s: status %d: %s", method, path, resp.StatusCode, errSnippet(data))
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

// Workspaces lists the teams visible to the token.
func (c *Client) Workspaces(ctx context.Context) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/team", nil, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("teams").ForEach(func(_, t gjson.Result) bool {
		out = append(out, map[string]any{
			"id":      t.Get("id").String(),
			"name":    t.Get("name").String(),
			"members": t.Get("members.#").Int(),
		})
		return true
	})
	return out, nil
}

// Spaces lists the spaces of a workspace.
func (c *Client) Spaces(ctx context.Context, teamID string) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/team/"+teamID+"/space", nil, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("spaces").ForEach(func(_, s gjson.Result) bool {
		out = append(out, map[string]any{
			"id":      s.Get("id").String(),
			"name":    s.Get("name").String(),
			"private": s.Get("private").Bool(),
		})
		return true
	})
	return out, nil
}

// Lists returns the lists directly under a space, or under a folder when
// folderID is set.
func (c *Client) Lists(ctx context.Context, spaceID, folderID string) ([]map[string]any, error) {
	path := "/space/" + spaceID + "/list"
	if folderID != "" {
		path = "/folder/" + folderID + "/list"
	}
	res, err := c.do(ctx, http.MethodGet, path, url.Values{"archived": {"false"}}, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("lists").ForEach(func(_, l gjson.Result) bool {
		out = append(out, map[string]any{
			"id":         l.Get("id").String(),
			"name":       l.Get("name").String(),
			"task_count": l.Get("task_count").Int(),
		})
		return true
	})
	return out, nil
}

// TaskQuery narrows a task listing. Slice fields use ClickUp's bracketed
// repeated-parameter convention.
type TaskQuery struct {
	Page          int      `url:"page"`
	Statuses      []string `url:"statuses[],omitempty"`
	Assignees     []string `url:"assignees[],omitempty"`
	IncludeClosed bool     `url:"include_closed,omitempty"`
	OrderBy       string   `url:"order_by,omitempty"`
}

// Tasks lists the tasks of a list.
func (c *Client) Tasks(ctx context.Context, listID string, tq TaskQuery) ([]map[string]any, error) {
	q, err := query.Values(tq)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, "/list/"+listID+"/task", q, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("tasks").ForEach(func(_, t gjson.Result) bool {
		out = append(out, shapeTask(t))
		return true
	})
	return out, nil
}

// CreateTask creates a task in the given list and returns its shaped form.
func (c *Client) CreateTask(ctx context.Context, listID string, fields map[string]any) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPost, "/list/"+listID+"/task", nil, fields)
	if err != nil {
		return nil, err
	}
	return shapeTask(res), nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, fields map[string]any) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPut, "/task/"+taskID, nil, fields)
	if err != nil {
		return nil, err
	}
	return shapeTask(res), nil
}

func shapeTask(t gjson.Result) map[string]any {
	assignees := []string{}
	t.Get("assignees").ForEach(func(_, a gjson.Result) bool {
		assignees = append(assignees, a.Get("username").String())
		return true
	})
	return map[string]any{
		"id":        t.Get("id").String(),
		"name":      t.Get("name").String(),
		"status":    t.Get("status.status").String(),
		"priority":  t.Get("priority.priority").String(),
		"assignees": assignees,
		"due_date":  t.Get("due_date").String(),
		"url":       t.Get("url").String(),
	}
}
