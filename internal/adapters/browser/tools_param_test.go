package browser

import (
	"context"
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

// Parameter validation fails before the session is touched, so these tests
// never launch a browser.
func TestHandlersRejectMissingParams(t *testing.T) {
	a := New(true, logging.New(logr.Discard()))

	cases := []struct {
		name    string
		call    func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		missing string
	}{
		{"navigate", a.handleNavigate, "url"},
		{"click", a.handleClick, "selector"},
		{"fill", a.handleFill, "selector"},
		{"evaluate", a.handleEvaluate, "expression"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := tc.call(context.Background(), callReq(nil))
			require.NoError(t, err)
			require.True(t, res.IsError)
			text, ok := mcp.AsTextContent(res.Content[0])
			require.True(t, ok)
			assert.Contains(t, text.Text, tc.missing+" parameter is required")
		})
	}
}

func TestScreenshotIndexResource(t *testing.T) {
	a := New(true, logging.New(logr.Discard()))
	a.store.Put("zeta", []byte{1})
	a.store.Put("alpha", []byte{2})

	contents, err := a.handleIndexResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "screenshot://", tc.URI)
	assert.Equal(t, "application/json", tc.MIMEType)
	assert.JSONEq(t, `["alpha","zeta"]`, tc.Text)
}

func TestToolSurface(t *testing.T) {
	a := New(true, logging.New(logr.Discard()))
	tools := a.Tools()
	require.Len(t, tools, 5)

	names := make([]string, 0, len(tools))
	for _, st := range tools {
		names = append(names, st.Tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"browser_navigate", "browser_click", "browser_fill",
		"browser_evaluate", "browser_screenshot",
	}, names)
}
