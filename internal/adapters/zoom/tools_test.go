package zoom

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

// testAdapter injects a plain HTTP client so no OAuth handshake happens.
func testAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New("acc", "id", "secret", logging.New(logr.Discard()),
		WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
}

func TestCreateInstantMeeting(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/me/meetings", r.URL.Path)
		var mr MeetingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&mr))
		assert.Equal(t, "Standup", mr.Topic)
		assert.Equal(t, 1, mr.Type)
		io.WriteString(w, `{"id":123456,"topic":"Standup","status":"waiting","join_url":"https://zoom.us/j/123456"}`)
	}))

	res, err := a.handleCreateMeeting(context.Background(), callReq(map[string]any{"topic": "Standup"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var meeting map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &meeting))
	assert.EqualValues(t, 123456, meeting["id"])
	assert.Equal(t, "https://zoom.us/j/123456", meeting["join_url"])
}

func TestCreateScheduledMeeting(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var mr MeetingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&mr))
		assert.Equal(t, 2, mr.Type)
		assert.Equal(t, "2026-09-01T10:00:00Z", mr.StartTime)
		assert.Equal(t, 45, mr.Duration)
		io.WriteString(w, `{"id":222,"topic":"Planning","start_time":"2026-09-01T10:00:00Z","duration":45}`)
	}))

	res, err := a.handleCreateMeeting(context.Background(), callReq(map[string]any{
		"topic":      "Planning",
		"start_time": "2026-09-01T10:00:00Z",
		"duration":   45.0,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"duration":45`)
}

func TestListMeetingsDefaultType(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/meetings", r.URL.Path)
		assert.Equal(t, "scheduled", r.URL.Query().Get("type"))
		io.WriteString(w, `{"meetings":[{"id":1,"topic":"A"},{"id":2,"topic":"B"}]}`)
	}))

	res, err := a.handleListMeetings(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var meetings []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &meetings))
	assert.Len(t, meetings, 2)
}

func TestGetMeetingNotFound(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"code":3001,"message":"Meeting does not exist"}`)
	}))

	res, err := a.handleGetMeeting(context.Background(), callReq(map[string]any{"meeting_id": "999"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "status 404")
	assert.Contains(t, text, "Meeting does not exist")
}

func TestListRecordings(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/recordings", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("from"))
		io.WriteString(w, `{"meetings":[{"id":1,"topic":"Retro","recording_files":[{"file_type":"MP4","file_size":1024,"download_url":"https://zoom.us/rec/1"}]}]}`)
	}))

	res, err := a.handleListRecordings(context.Background(), callReq(map[string]any{"from": "2026-08-01"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var recordings []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &recordings))
	require.Len(t, recordings, 1)
	files := recordings[0]["files"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, "MP4", files[0].(map[string]any)["type"])
}
