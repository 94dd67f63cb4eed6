package zoom

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
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL  = "https://api.zoom.us/v2"
	defaultTokenURL = "https://zoom.us/oauth/token"
)

// Client wraps the Zoom REST API using the server-to-server OAuth flow
// (account_credentials grant). Token acquisition and refresh are delegated to
// the oauth2 client.
type Client struct {
	http    *http.Client
	baseURL string
}

type Option func(*options)

type options struct {
	baseURL  string
	tokenURL string
	http     *http.Client
}

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the token-bearing HTTP client entirely, used by
// tests to bypass the OAuth handshake.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.http = h }
}

func NewClient(accountID, clientID, clientSecret string, opts ...Option) *Client {
	o := &options{baseURL: defaultBaseURL, tokenURL: defaultTokenURL}
	for _, fn := range opts {
		fn(o)
	}
	httpClient := o.http
	if httpClient == nil {
		creds := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     o.tokenURL,
			EndpointParams: url.Values{
				"grant_type": {"account_credentials"},
				"account_id": {accountID},
			},
		}
		httpClient = creds.Client(context.Background())
		httpClient.Timeout = 30 * time.Second
	}
	return &Client{http: httpClient, baseURL: o.baseURL}
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("zoom: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("zoom: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return gjson.Result{}, fmt.Errorf("zoom: %s %s: status %d: %s", method, path, resp.StatusCode, errSnippet(data))
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

// MeetingRequest carries the creation parameters for a scheduled meeting.
type MeetingRequest struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Agenda    string `json:"agenda,omitempty"`
	Password  string `json:"password,omitempty"`
}

// CreateMeeting schedules a meeting for the account owner.
func (c *Client) CreateMeeting(ctx context.Context, mr MeetingRequest) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodPost, "/users/me/meetings", nil, mr)
	if err != nil {
		return nil, err
	}
	return shapeMeeting(res), nil
}

// ListMeetings lists meetings of the account owner, mtype is "scheduled",
// "upcoming" or "live".
func (c *Client) ListMeetings(ctx context.Context, mtype string, pageSize int) ([]map[string]any, error) {
	q := url.Values{"type": {mtype}}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	res, err := c.do(ctx, http.MethodGet, "/users/me/meetings", q, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("meetings").ForEach(func(_, m gjson.Result) bool {
		out = append(out, shapeMeeting(m))
		return true
	})
	return out, nil
}

// GetMeeting fetches a meeting by ID.
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (map[string]any, error) {
	res, err := c.do(ctx, http.MethodGet, "/meetings/"+meetingID, nil, nil)
	if err != nil {
		return nil, err
	}
	return shapeMeeting(res), nil
}

// DeleteMeeting cancels a meeting.
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/meetings/"+meetingID, nil, nil)
	return err
}

// ListRecordings lists cloud recordings of the account owner between two
// dates (yyyy-mm-dd; either may be empty).
func (c *Client) ListRecordings(ctx context.Context, from, to string) ([]map[string]any, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	res, err := c.do(ctx, http.MethodGet, "/users/me/recordings", q, nil)
	if err != nil {
		return nil, err
	}
	out := []map[string]any{}
	res.Get("meetings").ForEach(func(_, m gjson.Result) bool {
		files := []map[string]any{}
		m.Get("recording_files").ForEach(func(_, f gjson.Result) bool {
			files = append(files, map[string]any{
				"type":         f.Get("file_type").String(),
				"size":         f.Get("file_size").Int(),
				"download_url": f.Get("download_url").String(),
			})
			return true
		})
		out = append(out, map[string]any{
			"id":         m.Get("id").Int(),
			"topic":      m.Get("topic").String(),
			"start_time": m.Get("start_time").String(),
			"duration":   m.Get("duration").Int(),
			"files":      files,
		})
		return true
	})
	return out, nil
}

func shapeMeeting(m gjson.Result) map[string]any {
	return map[string]any{
		"id":         m.Get("id").Int(),
		"topic":      m.Get("topic").String(),
		"status":     m.Get("status").String(),
		"start_time": m.Get("start_time").String(),
		"duration":   m.Get("duration").Int(),
		"timezone":   m.Get("timezone").String(),
		"join_url":   m.Get("join_url").String(),
		"password":   m.Get("password").String(),
	}
}
