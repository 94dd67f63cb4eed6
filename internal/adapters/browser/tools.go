package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes a shared headless browser as MCP tools. Screenshots are
// kept in an in-memory store and published as screenshot://{name} resources
// as they are captured.
type Adapter struct {
	session *Session
	store   *Store
	log     logging.Logger

	mu  sync.Mutex
	srv *server.MCPServer
}

func New(headless bool, log logging.Logger) *Adapter {
	return &Adapter{
		session: NewSession(headless),
		store:   NewStore(),
		log:     log,
	}
}

func (a *Adapter) Name() string { return "browser" }

// Close shuts down the underlying Chrome instance.
func (a *Adapter) Close() { a.session.Close() }

const indexURI = "screenshot://"

// BindResources keeps the server handle so captured screenshots can be
// registered as resources later, and publishes an index resource listing the
// stored names.
func (a *Adapter) BindResources(srv *server.MCPServer) {
	a.mu.Lock()
	a.srv = srv
	a.mu.Unlock()
	srv.AddResource(
		mcp.NewResource(indexURI, "screenshots",
			mcp.WithResourceDescription("Names of all stored screenshots"),
			mcp.WithMIMEType("application/json"),
		),
		a.handleIndexResource,
	)
}

func (a *Adapter) handleIndexResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := json.Marshal(a.store.Names())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      indexURI,
			MIMEType: "application/json",
			Text:     string(names),
		},
	}, nil
}

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("browser_navigate",
				mcp.WithDescription("Navigate the browser to a URL and return the resulting location and title."),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("Absolute URL to open"),
				),
			),
			Handler: a.handleNavigate,
		},
		{
			Tool: mcp.NewTool("browser_click",
				mcp.WithDescription("Click the first element matching a CSS selector on the current page."),
				mcp.WithString("selector",
					mcp.Required(),
					mcp.Description("CSS selector"),
				),
			),
			Handler: a.handleClick,
		},
		{
			Tool: mcp.NewTool("browser_fill",
				mcp.WithDescription("Set the value of the first input matching a CSS selector."),
				mcp.WithString("selector",
					mcp.Required(),
					mcp.Description("CSS selector"),
				),
				mcp.WithString("value",
					mcp.Required(),
					mcp.Description("Value to set"),
				),
			),
			Handler: a.handleFill,
		},
		{
			Tool: mcp.NewTool("browser_evaluate",
				mcp.WithDescription("Evaluate a JavaScript expression on the current page and return its JSON result."),
				mcp.WithString("expression",
					mcp.Required(),
					mcp.Description("JavaScript expression"),
				),
			),
			Handler: a.handleEvaluate,
		},
		{
			Tool: mcp.NewTool("browser_screenshot",
				mcp.WithDescription("Capture a full-page screenshot. The image is returned inline and stored under screenshot://{name} for later reads."),
				mcp.WithString("name",
					mcp.Description("Name to store the screenshot under (default: a generated UUID)"),
				),
			),
			Handler: a.handleScreenshot,
		},
	}
}

func (a *Adapter) handleNavigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := adapters.RequireString(req.GetArguments(), "url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	location, title, err := a.session.Navigate(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("navigated", "url", location)
	return adapters.JSONResult(map[string]any{"url": location, "title": title}), nil
}

func (a *Adapter) handleClick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selector, err := adapters.RequireString(req.GetArguments(), "selector")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.session.Click(ctx, selector); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"clicked": selector}), nil
}

func (a *Adapter) handleFill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	selector, err := adapters.RequireString(args, "selector")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := adapters.RequireString(args, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.session.Fill(ctx, selector, value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"filled": selector}), nil
}

func (a *Adapter) handleEvaluate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression, err := adapters.RequireString(req.GetArguments(), "expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := a.session.Evaluate(ctx, expression)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"result": result}), nil
}

func (a *Adapter) handleScreenshot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := adapters.StringArg(req.GetArguments(), "name")
	if name == "" {
		name = uuid.NewString()
	}
	png, err := a.session.Screenshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.store.Put(name, png)
	a.publishResource(name)
	a.log.Debug("screenshot stored", "name", name, "bytes", len(png))
	return mcp.NewToolResultImage(
		"screenshot stored as screenshot://"+name,
		base64.StdEncoding.EncodeToString(png),
		"image/png",
	), nil
}

// publishResource registers the screenshot as a readable resource. Re-taking
// a screenshot under an existing name re-registers the same URI, which the
// server treats as an update.
func (a *Adapter) publishResource(name string) {
	a.mu.Lock()
	srv := a.srv
	a.mu.Unlock()
	if srv == nil {
		return
	}
	uri := "screenshot://" + name
	srv.AddResource(
		mcp.NewResource(uri, name,
			mcp.WithResourceDescription("Full-page screenshot captured by browser_screenshot"),
			mcp.WithMIMEType("image/png"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			png, err := a.store.Get(name)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.BlobResourceContents{
					URI:      uri,
					MIMEType: "image/png",
					Blob:     base64.StdEncoding.EncodeToString(png),
				},
			}, nil
		},
	)
}
