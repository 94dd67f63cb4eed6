package mcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
)

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler

	closers []interface{ Close() }
}

// New assembles the MCP server from the enabled adapters. Each adapter
// contributes its tool set; adapters that publish resources get the server
// handle to register them against.
func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"saas-toolbelt",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)

	srv := &Server{MCP: mcpServer}
	for _, adapter := range cfg.Adapters {
		tools := adapter.Tools()
		mcpServer.AddTools(tools...)
		if binder, ok := adapter.(adapters.ResourceBinder); ok {
			binder.BindResources(mcpServer)
		}
		if c, ok := adapter.(interface{ Close() }); ok {
			srv.closers = append(srv.closers, c)
		}
		cfg.Logger.Info("adapter enabled", "name", adapter.Name(), "tools", len(tools))
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)
	srv.HTTP = httpServer
	srv.Handler = httpServer
	return srv
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCP)
}

func (s *Server) Close() {
	for _, c := range s.closers {
		c.Close()
	}
}
