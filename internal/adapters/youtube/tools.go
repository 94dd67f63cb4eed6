package youtube

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

// Adapter exposes the YouTube Data API as MCP tools, including the
// comment-driven short-extraction helper.
type Adapter struct {
	svc *Service
	log logging.Logger
}

func New(svc *Service, log logging.Logger) *Adapter {
	return &Adapter{svc: svc, log: log}
}

func (a *Adapter) Name() string { return "youtube" }

func (a *Adapter) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("youtube_search_videos",
				mcp.WithDescription("Search YouTube videos by query."),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Search query"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum results to return (default: 10)"),
				),
			),
			Handler: a.handleSearch,
		},
		{
			Tool: mcp.NewTool("youtube_get_video",
				mcp.WithDescription("Fetch metadata, statistics and duration of a video."),
				mcp.WithString("video_id",
					mcp.Required(),
					mcp.Description("Video ID"),
				),
			),
			Handler: a.handleGetVideo,
		},
		{
			Tool: mcp.NewTool("youtube_get_channel",
				mcp.WithDescription("Fetch metadata and statistics of a channel."),
				mcp.WithString("channel_id",
					mcp.Required(),
					mcp.Description("Channel ID"),
				),
			),
			Handler: a.handleGetChannel,
		},
		{
			Tool: mcp.NewTool("youtube_get_comments",
				mcp.WithDescription("Fetch top-level comments of a video, ordered by relevance."),
				mcp.WithString("video_id",
					mcp.Required(),
					mcp.Description("Video ID"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum comments to return (default: 50)"),
				),
			),
			Handler: a.handleGetComments,
		},
		{
			Tool: mcp.NewTool("youtube_extract_shorts",
				mcp.WithDescription("Suggest short-clip segments of a video scored from timestamps viewers mention in comments. Returns segments with start/end seconds and a confidence in [0,1]."),
				mcp.WithString("video_id",
					mcp.Required(),
					mcp.Description("Video ID"),
				),
				mcp.WithNumber("max_segments",
					mcp.Description("Maximum segments to suggest (default: 3)"),
				),
				mcp.WithNumber("clip_seconds",
					mcp.Description("Target clip length in seconds (default: 45)"),
				),
			),
			Handler: a.handleExtractShorts,
		},
	}
}

func (a *Adapter) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	q, err := adapters.RequireString(args, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := a.svc.Search(ctx, q, int64(adapters.IntArg(args, "max_results", 10)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(hits), nil
}

func (a *Adapter) handleGetVideo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, err := adapters.RequireString(req.GetArguments(), "video_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	video, err := a.svc.Video(ctx, videoID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(video), nil
}

func (a *Adapter) handleGetChannel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channelID, err := adapters.RequireString(req.GetArguments(), "channel_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	channel, err := a.svc.Channel(ctx, channelID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(channel), nil
}

func (a *Adapter) handleGetComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	videoID, err := adapters.RequireString(args, "video_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comments, err := a.svc.Comments(ctx, videoID, int64(adapters.IntArg(args, "max_results", 50)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return adapters.JSONResult(comments), nil
}

func (a *Adapter) handleExtractShorts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	videoID, err := adapters.RequireString(args, "video_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	video, err := a.svc.Video(ctx, videoID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comments, err := a.svc.Comments(ctx, videoID, 100)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	segments := extractSegments(
		video.DurationSeconds,
		comments,
		adapters.IntArg(args, "clip_seconds", defaultClipSeconds),
		adapters.IntArg(args, "max_segments", 3),
	)
	a.log.Debug("shorts extracted", "video", videoID, "segments", len(segments))
	return adapters.JSONResult(map[string]any{
		"video_id":         videoID,
		"duration_seconds": video.DurationSeconds,
		"segments":         segments,
	}), nil
}
