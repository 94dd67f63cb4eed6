package adapters

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireString(t *testing.T) {
	args := map[string]any{"name": "alpha", "empty": "", "num": 3.0}

	v, err := RequireString(args, "name")
	require.NoError(t, err)
	assert.Equal(t, "alpha", v)

	_, err = RequireString(args, "missing")
	require.Error(t, err)
	assert.Equal(t, "missing parameter is required", err.Error())

	_, err = RequireString(args, "empty")
	assert.Error(t, err)

	_, err = RequireString(args, "num")
	assert.Error(t, err)
}

func TestIntArg(t *testing.T) {
	args := map[string]any{"float": 7.0, "int": 3, "str": "nope"}

	assert.Equal(t, 7, IntArg(args, "float", 0))
	assert.Equal(t, 3, IntArg(args, "int", 0))
	assert.Equal(t, 42, IntArg(args, "str", 42))
	assert.Equal(t, 42, IntArg(args, "missing", 42))
}

func TestBoolArg(t *testing.T) {
	args := map[string]any{"yes": true, "no": false, "str": "true"}

	assert.True(t, BoolArg(args, "yes", false))
	assert.False(t, BoolArg(args, "no", true))
	assert.True(t, BoolArg(args, "str", true))
	assert.False(t, BoolArg(args, "missing", false))
}

func TestJSONResult(t *testing.T) {
	res := JSONResult(map[string]any{"id": "42"})
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"42"}`, tc.Text)
}
