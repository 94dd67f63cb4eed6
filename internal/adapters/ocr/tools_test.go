package ocr

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
	return New(NewClient("sk-test", "gpt-4o", WithBaseURL(ts.URL+"/v1")), logging.New(logr.Discard()))
}

func completionResponse(content string) string {
	return `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` + jsonString(content) + `},"finish_reason":"stop"}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestExtractTextFromURL(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 1)
		parts := messages[0].(map[string]any)["content"].([]any)
		require.Len(t, parts, 2)
		imagePart := parts[1].(map[string]any)
		assert.Equal(t, "image_url", imagePart["type"])
		assert.Equal(t, "https://example.com/receipt.png", imagePart["image_url"].(map[string]any)["url"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionResponse("TOTAL: 12.50 EUR\n"))
	}))

	res, err := a.handleExtractText(context.Background(), callReq(map[string]any{
		"image_url": "https://example.com/receipt.png",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "TOTAL: 12.50 EUR", out["text"])
}

func TestExtractTextFromBase64(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		parts := body["messages"].([]any)[0].(map[string]any)["content"].([]any)
		url := parts[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
		assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", url)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionResponse("hello"))
	}))

	res, err := a.handleExtractText(context.Background(), callReq(map[string]any{
		"image_base64": "aGVsbG8=",
		"mime_type":    "image/jpeg",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "hello")
}

func TestExtractTextRequiresAnImage(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	res, err := a.handleExtractText(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "either image_url or image_base64 is required")
}

func TestAPIErrorBecomesToolError(t *testing.T) {
	a := testAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	}))

	res, err := a.handleExtractText(context.Background(), callReq(map[string]any{
		"image_url": "https://example.com/x.png",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Incorrect API key")
}

func TestDataURLDefaultsMIMEType(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,QUJD", DataURL("", "QUJD"))
	assert.Equal(t, "data:image/webp;base64,QUJD", DataURL("image/webp", "QUJD"))
}
