package trello

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relayforge/saas-toolbelt/internal/logging"
)

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{Arguments: args},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func testAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New("key123", "tok456", "board789", logging.New(logr.Discard()), WithBaseURL(ts.URL))
}

func TestGetListsAuthInQuery(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board789/lists", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "key123", q.Get("key"))
		assert.Equal(t, "tok456", q.Get("token"))
		assert.Equal(t, "open", q.Get("filter"))
		io.WriteString(w, `[{"id":"l1","name":"Doing","pos":16384}]`)
	}))

	res, err := a.handleGetLists(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var lists []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &lists))
	require.Len(t, lists, 1)
	assert.Equal(t, "Doing", lists[0]["name"])
}

func TestAddCard(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cards", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "l1", q.Get("idList"))
		assert.Equal(t, "Fix login bug", q.Get("name"))
		assert.Equal(t, "Steps to reproduce in thread", q.Get("desc"))
		io.WriteString(w, `{"id":"c1","name":"Fix login bug","idList":"l1","closed":false,"shortUrl":"https://trello.com/c/c1"}`)
	}))

	res, err := a.handleAddCard(context.Background(), callReq(map[string]any{
		"list_id":     "l1",
		"name":        "Fix login bug",
		"description": "Steps to reproduce in thread",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var card map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &card))
	assert.Equal(t, "c1", card["id"])
	assert.Equal(t, "l1", card["list"])
}

func TestMoveCard(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cards/c1", r.URL.Path)
		assert.Equal(t, "l2", r.URL.Query().Get("idList"))
		io.WriteString(w, `{"id":"c1","name":"Fix login bug","idList":"l2"}`)
	}))

	res, err := a.handleMoveCard(context.Background(), callReq(map[string]any{
		"card_id": "c1",
		"list_id": "l2",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"list":"l2"`)
}

func TestAddCommentMissingText(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	res, err := a.handleAddComment(context.Background(), callReq(map[string]any{"card_id": "c1"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "text parameter is required")
}

func TestVendorErrorBecomesToolError(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "invalid id")
	}))

	res, err := a.handleArchiveCard(context.Background(), callReq(map[string]any{"card_id": "nope"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "status 404")
	assert.Contains(t, text, "invalid id")
}

func TestRecentActivity(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board789/actions", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		io.WriteString(w, `[{"id":"a1","type":"commentCard","memberCreator":{"fullName":"Ada"},"data":{"card":{"name":"Fix login bug"},"text":"done"}}]`)
	}))

	res, err := a.handleRecentActivity(context.Background(), callReq(map[string]any{"limit": 5.0}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var actions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &actions))
	require.Len(t, actions, 1)
	assert.Equal(t, "Ada", actions[0]["member"])
}
