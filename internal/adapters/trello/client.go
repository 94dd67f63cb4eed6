package trello

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.trello.com/1"

// Client is a thin wrapper over the Trello v1 REST API. Trello authenticates
// with key+token query parameters on every request.
type Client struct {
	http    *http.Client
	baseURL string
	key     string
	token   string
	boardID string
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func NewClient(key, token, boardID string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		key:     key,
		token:   token,
		boardID: boardID,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values) (gjson.Result, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("key", c.key)
	q.Set("token", c.token)
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return gjson.Result{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("trello: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("trello: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("trello: %s %s: status %d: %s", method, path, resp.StatusCode, errSnippet(data))
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

// Lists returns the open lists of the configured board.
func (c *Client) Lists(ctx context.Context) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/boards/"+c.boardID+"/lists", url.Values{"filter": {"open"}})
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.ForEach(func(_, l gjson.Result) bool {
		out = append(out, map[string]any{
			"id":   l.Get("id").String(),
			"name": l.Get("name").String(),
			"pos":  l.Get("pos").Float(),
		})
		return true
	})
	return out, nil
}

// CardsByList returns the cards of a list.
func (c *Client) CardsByList(ctx context.Context, listID string) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/lists/"+listID+"/cards", nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.ForEach(func(_, card gjson.Result) bool {
		out = append(out, shapeCard(card))
		return true
	})
	return out, nil
}

// CardRequest carries the creation parameters for a card.
type CardRequest struct {
	ListID      string `url:"idList"`
	Name        string `url:"name"`
	Description string `url:"desc,omitempty"`
	Due         string `url:"due,omitempty"`
	Position    string `url:"pos,omitempty"`
}

// AddCard creates a card.
func (c *Client) AddCard(ctx context.Context, cr CardRequest) (map[string]any, error) {
	q, err := query.Values(cr)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, "/cards", q)
	if err != nil {
		return nil, err
	}
	return shapeCard(res), nil
}

// MoveCard moves a card to another list.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPut, "/cards/"+cardID, url.Values{"idList": {listID}})
	if err != nil {
		return nil, err
	}
	return shapeCard(res), nil
}

// ArchiveCard closes a card.
func (c *Client) ArchiveCard(ctx context.Context, cardID string) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPut, "/cards/"+cardID, url.Values{"closed": {"true"}})
	if err != nil {
		return nil, err
	}
	return shapeCard(res), nil
}

// AddComment posts a comment on a card.
func (c *Client) AddComment(ctx context.Context, cardID, text string) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPost, "/cards/"+cardID+"/actions/comments", url.Values{"text": {text}})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":   res.Get("id").String(),
		"text": res.Get("data.text").String(),
		"date": res.Get("date").String(),
	}, nil
}

// RecentActivity returns the latest actions on the configured board.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/boards/"+c.boardID+"/actions", url.Values{"limit": {fmt.Sprintf("%d", limit)}})
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.ForEach(func(_, a gjson.Result) bool {
		out = append(out, map[string]any{
			"id":     a.Get("id").String(),
			"type":   a.Get("type").String(),
			"member": a.Get("memberCreator.fullName").String(),
			"card":   a.Get("data.card.name").String(),
			"list":   a.Get("data.list.name").String(),
			"text":   a.Get("data.text").String(),
			"date":   a.Get("date").String(),
		})
		return true
	})
	return out, nil
}

func shapeCard(card gjson.Result) map[string]any {
	return map[string]any{
		"id":     card.Get("id").String(),
		"name":   card.Get("name").String(),
		"desc":   card.Get("desc").String(),
		"list":   card.Get("idList").String(),
		"due":    card.Get("due").String(),
		"closed": card.Get("closed").Bool(),
		"url":    card.Get("shortUrl").String(),
	}
}
