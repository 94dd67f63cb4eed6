package captcha

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes captcha solving as MCP tools.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(client *Client, log logging.Logger) *Adapter {
	return &Adapter{client: client, log: log}
}

func (a *Adapter) Name() string { return "captcha" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("captcha_solve_image",
				mcp.WithDescription("Solve an image captcha from base64 image data."),
				mcp.WithString("image_base64",
					mcp.Required(),
					mcp.Description("Base64-encoded captcha image"),
				),
				mcp.WithString("mime_type",
					mcp.Description("MIME type of the image (default: image/png)"),
				),
			),
			Handler: a.handleSolveImage,
		},
		{
			Tool: mcp.NewTool("captcha_solve_question",
				mcp.WithDescription("Answer a text challenge question, e.g. a security question gate."),
				mcp.WithString("question",
					mcp.Required(),
					mcp.Description("Challenge question text"),
				),
			),
			Handler: a.handleSolveQuestion,
		},
	}
}

func (a *Adapter) handleSolveImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	imageB64, err := adapters.RequireString(args, "image_base64")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := a.client.SolveImage(ctx, imageB64, adapters.StringArg(args, "mime_type"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("image captcha solved")
	return adapters.JSONResult(map[string]any{"answer": answer}), nil
}

func (a *Adapter) handleSolveQuestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := adapters.RequireString(req.GetArguments(), "question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := a.client.SolveQuestion(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"answer": answer}), nil
}
