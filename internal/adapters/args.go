package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RequireString extracts a mandatory string argument.
func RequireString(args map[string]any, key string) (string, error) {
	value, _ := args[key].(string)
	if value == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return value, nil
}

// StringArg extracts an optional string argument, returning "" when absent.
func StringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// IntArg extracts an optional integer argument. JSON numbers arrive as
// float64 through the MCP layer.
func IntArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// BoolArg extracts an optional boolean argument.
func BoolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// JSONResult marshals v and wraps it in a text tool result.
func JSONResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return mcp.NewToolResultText(string(b))
}
