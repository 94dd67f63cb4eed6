package airtable

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes the Airtable Web API as MCP tools.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(token string, log logging.Logger, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(token, opts...), log: log}
}

func (a *Adapter) Name() string { return "airtable" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("airtable_list_bases",
				mcp.WithDescription("List the Airtable bases accessible to the configured token."),
			),
			Handler: a.handleListBases,
		},
		{
			Tool: mcp.NewTool("airtable_list_tables",
				mcp.WithDescription("List the tables of a base, including field names."),
				mcp.WithString("base_id",
					mcp.Required(),
					mcp.Description("Base ID (app...)"),
				),
			),
			Handler: a.handleListTables,
		},
		{
			Tool: mcp.NewTool("airtable_list_records",
				mcp.WithDescription("List records of a table, optionally filtered by an Airtable formula."),
				mcp.WithString("base_id",
					mcp.Required(),
					mcp.Description("Base ID"),
				),
				mcp.WithString("table",
					mcp.Required(),
					mcp.Description("Table name or ID"),
				),
				mcp.WithString("filter_by_formula",
					mcp.Description("Optional: Airtable formula, e.g. {Status}='Done'"),
				),
				mcp.WithNumber("max_records",
					mcp.Description("Maximum records to return (default: 100)"),
				),
				mcp.WithString("view",
					mcp.Description("Optional: view name or ID"),
				),
				mcp.WithString("offset",
					mcp.Description("Pagination offset from a previous call"),
				),
			),
			Handler: a.handleListRecords,
		},
		{
			Tool: mcp.NewTool("airtable_create_record",
				mcp.WithDescription("Create a record in a table."),
				mcp.WithString("base_id",
					mcp.Required(),
					mcp.Description("Base ID"),
				),
				mcp.WithString("table",
					mcp.Required(),
					mcp.Description("Table name or ID"),
				),
				mcp.WithObject("fields",
					mcp.Required(),
					mcp.Description("Field values keyed by field name"),
				),
			),
			Handler: a.handleCreateRecord,
		},
		{
			Tool: mcp.NewTool("airtable_update_record",
				mcp.WithDescription("Update fields of an existing record."),
				mcp.WithString("base_id",
					mcp.Required(),
					mcp.Description("Base ID"),
				),
				mcp.WithString("table",
					mcp.Required(),
					mcp.Description("Table name or ID"),
				),
				mcp.WithString("record_id",
					mcp.Required(),
					mcp.Description("Record ID (rec...)"),
				),
				mcp.WithObject("fields",
					mcp.Required(),
					mcp.Description("Field values to change, keyed by field name"),
				),
			),
			Handler: a.handleUpdateRecord,
		},
		{
			Tool: mcp.NewTool("airtable_delete_record",
				mcp.WithDescription("Delete a record."),
				mcp.WithString("base_id",
					mcp.Required(),
					mcp.Description("Base ID"),
				),
				mcp.WithString("table",
					mcp.Required(),
					mcp.Description("Table name or ID"),
				),
				mcp.WithString("record_id",
					mcp.Required(),
					mcp.Description("Record ID (rec...)"),
				),
			),
			Handler: a.handleDeleteRecord,
		},
	}
}

func (a *Adapter) handleListBases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bases, err := a.client.Bases(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(bases), nil
}

func (a *Adapter) handleListTables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baseID, err := adapters.RequireString(req.GetArguments(), "base_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tables, err := a.client.Tables(ctx, baseID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(tables), nil
}

func (a *Adapter) handleListRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	baseID, err := adapters.RequireString(args, "base_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := adapters.RequireString(args, "table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := a.client.ListRecords(ctx, baseID, table, RecordQuery{
		FilterByFormula: adapters.StringArg(args, "filter_by_formula"),
		MaxRecords:      adapters.IntArg(args, "max_records", 100),
		View:            adapters.StringArg(args, "view"),
		Offset:          adapters.StringArg(args, "offset"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(page), nil
}

func fieldsArg(args map[string]any) (map[string]any, bool) {
	fields, ok := args["fields"].(map[string]any)
	return fields, ok && len(fields) > 0
}

func (a *Adapter) handleCreateRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	baseID, err := adapters.RequireString(args, "base_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := adapters.RequireString(args, "table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, ok := fieldsArg(args)
	if !ok {
		return mcp.NewToolResultError("fields parameter is required and must be a non-empty object"), nil
	}
	record, err := a.client.CreateRecord(ctx, baseID, table, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("record created", "base", baseID, "table", table, "record", record["id"])
	return adapters.JSONResult(record), nil
}

func (a *Adapter) handleUpdateRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	baseID, err := adapters.RequireString(args, "base_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := adapters.RequireString(args, "table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordID, err := adapters.RequireString(args, "record_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, ok := fieldsArg(args)
	if !ok {
		return mcp.NewToolResultError("fields parameter is required and must be a non-empty object"), nil
	}
	record, err := a.client.UpdateRecord(ctx, baseID, table, recordID, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(record), nil
}

func (a *Adapter) handleDeleteRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	baseID, err := adapters.RequireString(args, "base_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := adapters.RequireString(args, "table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordID, err := adapters.RequireString(args, "record_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.client.DeleteRecord(ctx, baseID, table, recordID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"id": recordID, "deleted": true}), nil
}
