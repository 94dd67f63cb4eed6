// Package adapters defines the contract every vendor integration fulfils:
// a named set of MCP tools, optionally accompanied by readable resources.
package adapters

import (
	"github.com/mark3labs/mcp-go/server"
)

// Adapter is a single vendor integration exposed as MCP tools.
type Adapter interface {
	// Name identifies the adapter in logs and startup output.
	Name() string
	// Tools returns the tool definitions plus handlers to register.
	Tools() []server.ServerTool
}

// ResourceBinder is implemented by adapters that publish MCP resources in
// addition to tools. BindResources is called once after server construction.
type ResourceBinder interface {
	BindResources(srv *server.MCPServer)
}
