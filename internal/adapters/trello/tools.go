package trello

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes a single Trello board as MCP tools. The board is fixed at
// startup, one board per deployment.
type Adapter struct {
	client *Client
	log    logging.Logger
}

func New(key, token, boardID string, log logging.Logger, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(key, token, boardID, opts...), log: log}
}

func (a *Adapter) Name() string { return "trello" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("trello_get_lists",
				mcp.WithDescription("List the open lists on the configured Trello board."),
			),
			Handler: a.handleGetLists,
		},
		{
			Tool: mcp.NewTool("trello_get_cards_by_list",
				mcp.WithDescription("List the cards in a Trello list."),
				mcp.WithString("list_id",
					mcp.Required(),
					mcp.Description("List ID"),
				),
			),
			Handler: a.handleGetCards,
		},
		{
			Tool: mcp.NewTool("trello_add_card",
				mcp.WithDescription("Create a card in a Trello list."),
				mcp.WithString("list_id",
					mcp.Required(),
					mcp.Description("Destination list ID"),
				),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Card title"),
				),
				mcp.WithString("description",
					mcp.Description("Card description (Markdown)"),
				),
				mcp.WithString("due",
					mcp.Description("Due date, ISO-8601"),
				),
			),
			Handler: a.handleAddCard,
		},
		{
			Tool: mcp.NewTool("trello_move_card",
				mcp.WithDescription("Move a card to another list."),
				mcp.WithString("card_id",
					mcp.Required(),
					mcp.Description("Card ID"),
				),
				mcp.WithString("list_id",
					mcp.Required(),
					mcp.Description("Destination list ID"),
				),
			),
			Handler: a.handleMoveCard,
		},
		{
			Tool: mcp.NewTool("trello_add_comment",
				mcp.WithDescription("Add a comment to a card."),
				mcp.WithString("card_id",
					mcp.Required(),
					mcp.Description("Card ID"),
				),
				mcp.WithString("text",
					mcp.Required(),
					mcp.Description("Comment text"),
				),
			),
			Handler: a.handleAddComment,
		},
		{
			Tool: mcp.NewTool("trello_archive_card",
				mcp.WithDescription("Archive (close) a card."),
				mcp.WithString("card_id",
					mcp.Required(),
					mcp.Description("Card ID"),
				),
			),
			Handler: a.handleArchiveCard,
		},
		{
			Tool: mcp.NewTool("trello_get_recent_activity",
				mcp.WithDescription("Fetch recent activity on the configured board."),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of actions to return (default: 10)"),
				),
			),
			Handler: a.handleRecentActivity,
		},
	}
}

func (a *Adapter) handleGetLists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lists, err := a.client.Lists(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(lists), nil
}

func (a *Adapter) handleGetCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID, err := adapters.RequireString(req.GetArguments(), "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cards, err := a.client.CardsByList(ctx, listID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(cards), nil
}

func (a *Adapter) handleAddCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	listID, err := adapters.RequireString(args, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := adapters.RequireString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	card, err := a.client.AddCard(ctx, CardRequest{
		ListID:      listID,
		Name:        name,
		Description: adapters.StringArg(args, "description"),
		Due:         adapters.StringArg(args, "due"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a.log.Debug("card created", "list", listID, "card", card["id"])
	return adapters.JSONResult(card), nil
}

func (a *Adapter) handleMoveCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	cardID, err := adapters.RequireString(args, "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listID, err := adapters.RequireString(args, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	card, err := a.client.MoveCard(ctx, cardID, listID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(card), nil
}

func (a *Adapter) handleAddComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	cardID, err := adapters.RequireString(args, "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := adapters.RequireString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comment, err := a.client.AddComment(ctx, cardID, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(comment), nil
}

func (a *Adapter) handleArchiveCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, err := adapters.RequireString(req.GetArguments(), "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	card, err := a.client.ArchiveCard(ctx, cardID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(card), nil
}

func (a *Adapter) handleRecentActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := adapters.IntArg(req.GetArguments(), "limit", 10)
	if limit <= 0 {
		limit = 10
	}
	actions, err := a.client.RecentActivity(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(actions), nil
}
