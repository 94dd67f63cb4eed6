package clickup

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes the ClickUp task-tracking API as MCP tools.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(token string, log logging.Logger, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(token, opts...), log: log}
}

func (a *Adapter) Name() string { return "clickup" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("clickup_get_workspaces",
				mcp.WithDescription("List the ClickUp workspaces (teams) visible to the configured token."),
			),
			Handler: a.handleGetWorkspaces,
		},
		{
			Tool: mcp.NewTool("clickup_get_spaces",
				mcp.WithDescription("List the spaces inside a ClickUp workspace."),
				mcp.WithString("workspace_id",
					mcp.Required(),
					mcp.Description("Workspace (team) ID"),
				),
			),
			Handler: a.handleGetSpaces,
		},
		{
			Tool: mcp.NewTool("clickup_get_lists",
				mcp.WithDescription("List the task lists in a space, or in a folder when folder_id is given."),
				mcp.WithString("space_id",
					mcp.Required(),
					mcp.Description("Space ID"),
				),
				mcp.WithString("folder_id",
					mcp.Description("Optional: folder ID to list folder-scoped lists instead"),
				),
			),
			Handler: a.handleGetLists,
		},
		{
			Tool: mcp.NewTool("clickup_get_tasks",
				mcp.WithDescription("List tasks in a ClickUp list with optional status and assignee filters."),
				mcp.WithString("list_id",
					mcp.Required(),
					mcp.Description("List ID"),
				),
				mcp.WithString("status",
					mcp.Description("Optional: only return tasks with this status"),
				),
				mcp.WithString("assignee",
					mcp.Description("Optional: only return tasks assigned to this user ID"),
				),
				mcp.WithBoolean("include_closed",
					mcp.Description("Include closed tasks (default: false)"),
				),
				mcp.WithNumber("page",
					mcp.Description("Result page, 100 tasks per page (default: 0)"),
				),
			),
			Handler: a.handleGetTasks,
		},
		{
			Tool: mcp.NewTool("clickup_create_task",
				mcp.WithDescription("Create a task in a ClickUp list."),
				mcp.WithString("list_id",
					mcp.Required(),
					mcp.Description("List ID"),
				),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Task name"),
				),
				mcp.WithString("description",
					mcp.Description("Task description (plain text)"),
				),
				mcp.WithNumber("priority",
					mcp.Description("Priority 1 (urgent) to 4 (low)"),
				),
				mcp.WithNumber("due_date",
					mcp.Description("Due date as Unix milliseconds"),
				),
			),
			Handler: a.handleCreateTask,
		},
		{
			Tool: mcp.NewTool("clickup_update_task",
				mcp.WithDescription("Update name, description or status of an existing ClickUp task."),
				mcp.WithString("task_id",
					mcp.Required(),
					mcp.Description("Task ID"),
				),
				mcp.WithString("name",
					mcp.Description("New task name"),
				),
				mcp.WithString("description",
					mcp.Description("New description"),
				),
				mcp.WithString("status",
					mcp.Description("New status"),
				),
			),
			Handler: a.handleUpdateTask,
		},
	}
}

func (a *Adapter) handleGetWorkspaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teams, err := a.client.Workspaces(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(teams), nil
}

func (a *Adapter) handleGetSpaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	teamID, err := adapters.RequireString(args, "workspace_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	spaces, err := a.client.Spaces(ctx, teamID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(spaces), nil
}

func (a *Adapter) handleGetLists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	spaceID, err := adapters.RequireString(args, "space_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lists, err := a.client.Lists(ctx, spaceID, adapters.StringArg(args, "folder_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(lists), nil
}

func (a *Adapter) handleGetTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	listID, err := adapters.RequireString(args, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tq := TaskQuery{
		Page:          adapters.IntArg(args, "page", 0),
		IncludeClosed: adapters.BoolArg(args, "include_closed", false),
	}
	if status := adapters.StringArg(args, "status"); status != "" {
		tq.Statuses = []string{status}
	}
	if assignee := adapters.StringArg(args, "assignee"); assignee != "" {
		tq.Assignees = []string{assignee}
	}
	tasks, err := a.client.Tasks(ctx, listID, tq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(tasks), nil
}

func (a *Adapter) handleCreateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	listID, err := adapters.RequireString(args, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := adapters.RequireString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields := map[string]any{"name": name}
	if desc := adapters.StringArg(args, "description"); desc != "" {
		fields["description"] = desc
	}
	if p := adapters.IntArg(args, "priority", 0); p > 0 {
		fields["priority"] = p
	}
	if due := adapters.IntArg(args, "due_date", 0); due > 0 {
		fields["due_date"] = due
	}
	task, err := a.client.CreateTask(ctx, listID, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("task created", "list", listID, "task", task["id"])
	return adapters.JSONResult(task), nil
}

func (a *Adapter) handleUpdateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	taskID, err := adapters.RequireString(args, "task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields := map[string]any{}
	for _, key := range []string{"name", "description", "status"} {
		if v := adapters.StringArg(args, key); v != "" {
			fields[key] = v
		}
	}
	if len(fields) == 0 {
		return mcp.NewToolResultError("at least one of name, description or status must be provided"), nil
	}
	task, err := a.client.UpdateTask(ctx, taskID, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(task), nil
}
