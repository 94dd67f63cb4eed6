package ocr

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes image-to-text extraction as an MCP tool.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(client *Client, log logging.Logger) *Adapter {
	return &Adapter{client: client, log: log}
}

func (a *Adapter) Name() string { return "ocr" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("ocr_extract_text",
				mcp.WithDescription("Extract text from an image. Provide either a public image URL or base64 image data."),
				mcp.WithString("image_url",
					mcp.Description("HTTP(S) URL of the image"),
				),
				mcp.WithString("image_base64",
					mcp.Description("Base64-encoded image data"),
				),
				mcp.WithString("mime_type",
					mcp.Description("MIME type of the base64 image data (default: image/png)"),
				),
			),
			Handler: a.handleExtractText,
		},
	}
}

func (a *Adapter) handleExtractText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	imageURL := adapters.StringArg(args, "image_url")
	if imageURL == "" {
		b64 := adapters.StringArg(args, "image_base64")
		if b64 == "" {
			return mcp.NewToolResultError("either image_url or image_base64 is required"), nil
		}
		imageURL = DataURL(adapters.StringArg(args, "mime_type"), b64)
	}
	text, err := a.client.ExtractText(ctx, imageURL)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("text extracted", "chars", len(text))
	return adapters.JSONResult(map[string]any{"text": text}), nil
}
