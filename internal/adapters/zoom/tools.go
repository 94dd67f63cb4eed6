package zoom

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes the Zoom meeting API as MCP tools.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(accountID, clientID, clientSecret string, log logging.Logger, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(accountID, clientID, clientSecret, opts...), log: log}
}

func (a *Adapter) Name() string { return "zoom" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("zoom_create_meeting",
				mcp.WithDescription("Schedule a Zoom meeting for the account owner."),
				mcp.WithString("topic",
					mcp.Required(),
					mcp.Description("Meeting topic"),
				),
				mcp.WithString("start_time",
					mcp.Description("Start time, ISO-8601 (e.g. 2024-06-01T10:00:00Z). Omit for an instant meeting."),
				),
				mcp.WithNumber("duration",
					mcp.Description("Duration in minutes (default: 30)"),
				),
				mcp.WithString("timezone",
					mcp.Description("Timezone ID, e.g. Europe/Berlin"),
				),
				mcp.WithString("agenda",
					mcp.Description("Meeting agenda"),
				),
			),
			Handler: a.handleCreateMeeting,
		},
		{
			Tool: mcp.NewTool("zoom_list_meetings",
				mcp.WithDescription("List meetings of the account owner."),
				mcp.WithString("type",
					mcp.Description("Meeting type filter"),
					mcp.Enum("scheduled", "upcoming", "live"),
				),
				mcp.WithNumber("page_size",
					mcp.Description("Maximum meetings to return (default: 30)"),
				),
			),
			Handler: a.handleListMeetings,
		},
		{
			Tool: mcp.NewTool("zoom_get_meeting",
				mcp.WithDescription("Fetch details of a meeting by ID."),
				mcp.WithString("meeting_id",
					mcp.Required(),
					mcp.Description("Meeting ID"),
				),
			),
			Handler: a.handleGetMeeting,
		},
		{
			Tool: mcp.NewTool("zoom_delete_meeting",
				mcp.WithDescription("Cancel a meeting."),
				mcp.WithString("meeting_id",
					mcp.Required(),
					mcp.Description("Meeting ID"),
				),
			),
			Handler: a.handleDeleteMeeting,
		},
		{
			Tool: mcp.NewTool("zoom_list_recordings",
				mcp.WithDescription("List cloud recordings of the account owner."),
				mcp.WithString("from",
					mcp.Description("Start date, yyyy-mm-dd"),
				),
				mcp.WithString("to",
					mcp.Description("End date, yyyy-mm-dd"),
				),
			),
			Handler: a.handleListRecordings,
		},
	}
}

func (a *Adapter) handleCreateMeeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	topic, err := adapters.RequireString(args, "topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mr := MeetingRequest{
		Topic:     topic,
		Type:      1, // instant
		StartTime: adapters.StringArg(args, "start_time"),
		Duration:  adapters.IntArg(args, "duration", 30),
		Timezone:  adapters.StringArg(args, "timezone"),
		Agenda:    adapters.StringArg(args, "agenda"),
	}
	if mr.StartTime != "" {
		mr.Type = 2 // scheduled
	}
	meeting, err := a.client.CreateMeeting(ctx, mr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("meeting created", "id", meeting["id"])
	return adapters.JSONResult(meeting), nil
}

func (a *Adapter) handleListMeetings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	mtype := adapters.StringArg(args, "type")
	if mtype == "" {
		mtype = "scheduled"
	}
	meetings, err := a.client.ListMeetings(ctx, mtype, adapters.IntArg(args, "page_size", 30))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(meetings), nil
}

func (a *Adapter) handleGetMeeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := adapters.RequireString(req.GetArguments(), "meeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	meeting, err := a.client.GetMeeting(ctx, meetingID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(meeting), nil
}

func (a *Adapter) handleDeleteMeeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := adapters.RequireString(req.GetArguments(), "meeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := a.client.DeleteMeeting(ctx, meetingID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(map[string]any{"id": meetingID, "deleted": true}), nil
}

func (a *Adapter) handleListRecordings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	recordings, err := a.client.ListRecordings(ctx, adapters.StringArg(args, "from"), adapters.StringArg(args, "to"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(recordings), nil
}
