package gdocs

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes Google Docs document operations as MCP tools.
type Adapter struct {
	svc *Service
	log logging.Logger
}

func New(svc *Service, log logging.Logger) *Adapter {
	return &Adapter{svc: svc, log: log}
}

func (a *Adapter) Name() string { return "gdocs" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("gdocs_create_document",
				mcp.WithDescription("Create an empty Google Doc with the given title."),
				mcp.WithString("title",
					mcp.Required(),
					mcp.Description("Document title"),
				),
			),
			Handler: a.handleCreate,
		},
		{
			Tool: mcp.NewTool("gdocs_read_document",
				mcp.WithDescription("Read a Google Doc as plain text."),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.Description("Document ID"),
				),
			),
			Handler: a.handleRead,
		},
		{
			Tool: mcp.NewTool("gdocs_append_text",
				mcp.WithDescription("Append text to the end of a Google Doc."),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.Description("Document ID"),
				),
				mcp.WithString("text",
					mcp.Required(),
					mcp.Description("Text to append"),
				),
			),
			Handler: a.handleAppend,
		},
		{
			Tool: mcp.NewTool("gdocs_replace_text",
				mcp.WithDescription("Replace every occurrence of a string in a Google Doc."),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.Description("Document ID"),
				),
				mcp.WithString("find",
					mcp.Required(),
					mcp.Description("Text to find"),
				),
				mcp.WithString("replace",
					mcp.Required(),
					mcp.Description("Replacement text"),
				),
				mcp.WithBoolean("match_case",
					mcp.Description("Case-sensitive matching (default: false)"),
				),
			),
			Handler: a.handleReplace,
		},
		{
			Tool: mcp.NewTool("gdocs_list_documents",
				mcp.WithDescription("List the account's Google Docs, newest first."),
				mcp.WithString("name_contains",
					mcp.Description("Only documents whose name contains this string"),
				),
				mcp.WithNumber("page_size",
					mcp.Description("Maximum documents to return (default: 25)"),
				),
			),
			Handler: a.handleList,
		},
		{
			Tool: mcp.NewTool("gdocs_delete_document",
				mcp.WithDescription("Permanently delete a Google Doc."),
				mcp.WithString("document_id",
					mcp.Required(),
					mcp.Description("Document ID"),
				),
			),
			Handler: a.handleDelete,
		},
	}
}

func (a *Adapter) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := adapters.RequireString(req.GetArguments(), "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ref, err := a.svc.Create(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("document created", "id", ref.ID)
	return adapters.JSONResult(ref), nil
}

func (a *Adapter) handleRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := adapters.RequireString(req.GetArguments(), "document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, text, err := a.svc.Read(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{
		"id":    documentID,
		"title": title,
		"text":  text,
	}), nil
}

func (a *Adapter) handleAppend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	documentID, err := adapters.RequireString(args, "document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := adapters.RequireString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.svc.Append(ctx, documentID, text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"id": documentID, "appended": len(text)}), nil
}

func (a *Adapter) handleReplace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	documentID, err := adapters.RequireString(args, "document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	find, err := adapters.RequireString(args, "find")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// empty replacement is valid, it deletes the occurrences
	replace, ok := args["replace"].(string)
	if !ok {
		return mcp.NewToolResultError("replace parameter is required"), nil
	}
	changed, err := a.svc.Replace(ctx, documentID, find, replace, adapters.BoolArg(args, "match_case", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"id": documentID, "occurrences_changed": changed}), nil
}

func (a *Adapter) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	refs, err := a.svc.List(ctx, adapters.StringArg(args, "name_contains"), int64(adapters.IntArg(args, "page_size", 25)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(refs), nil
}

func (a *Adapter) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := adapters.RequireString(req.GetArguments(), "document_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.svc.Delete(ctx, documentID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"id": documentID, "deleted": true}), nil
}
