package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Service wraps the YouTube Data API v3 client for the read-only surfaces the
// tools need.
type Service struct {
	yt *yt.Service
}

func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Service, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &Service{yt: svc}, nil
}

// VideoHit is one search result.
type VideoHit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	PublishedAt string `json:"published_at"`
	Description string `json:"description"`
}

// Search runs a video search.
func (s *Service) Search(ctx context.Context, q string, maxResults int64) ([]VideoHit, error) {
	call := s.yt.Search.List([]string{"snippet"}).
		Q(q).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: search: %w", err)
	}
	hits := make([]VideoHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, VideoHit{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
			Description: item.Snippet.Description,
		})
	}
	return hits, nil
}

// VideoDetails is the shaped videos.list response.
type VideoDetails struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Channel         string   `json:"channel"`
	PublishedAt     string   `json:"published_at"`
	DurationSeconds int      `json:"duration_seconds"`
	Views           uint64   `json:"views"`
	Likes           uint64   `json:"likes"`
	Comments        uint64   `json:"comments"`
	Tags            []string `json:"tags,omitempty"`
}

// Video fetches snippet, statistics and duration for one video.
func (s *Service) Video(ctx context.Context, videoID string) (*VideoDetails, error) {
	resp, err := s.yt.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: get video: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("youtube: video %s not found", videoID)
	}
	v := resp.Items[0]
	return &VideoDetails{
		ID:              v.Id,
		Title:           v.Snippet.Title,
		Channel:         v.Snippet.ChannelTitle,
		PublishedAt:     v.Snippet.PublishedAt,
		DurationSeconds: parseISODuration(v.ContentDetails.Duration),
		Views:           v.Statistics.ViewCount,
		Likes:           v.Statistics.LikeCount,
		Comments:        v.Statistics.CommentCount,
		Tags:            v.Snippet.Tags,
	}, nil
}

// ChannelInfo is the shaped channels.list response.
type ChannelInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subscribers uint64 `json:"subscribers"`
	Videos      uint64 `json:"videos"`
	Views       uint64 `json:"views"`
}

// Channel fetches channel metadata and statistics.
func (s *Service) Channel(ctx context.Context, channelID string) (*ChannelInfo, error) {
	resp, err := s.yt.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: get channel: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("youtube: channel %s not found", channelID)
	}
	ch := resp.Items[0]
	return &ChannelInfo{
		ID:          ch.Id,
		Title:       ch.Snippet.Title,
		Description: ch.Snippet.Description,
		Subscribers: ch.Statistics.SubscriberCount,
		Videos:      ch.Statistics.VideoCount,
		Views:       ch.Statistics.ViewCount,
	}, nil
}

// Comment is one top-level comment on a video.
type Comment struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	Likes       int64  `json:"likes"`
	PublishedAt string `json:"published_at"`
}

// Comments fetches top-level comments ordered by relevance.
func (s *Service) Comments(ctx context.Context, videoID string, maxResults int64) ([]Comment, error) {
	resp, err := s.yt.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		Order("relevance").
		MaxResults(maxResults).
		TextFormat("plainText").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: get comments: %w", err)
	}
	comments := make([]Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		top := item.Snippet.TopLevelComment
		if top == nil || top.Snippet == nil {
			continue
		}
		comments = append(comments, Comment{
			Author:      top.Snippet.AuthorDisplayName,
			Text:        top.Snippet.TextDisplay,
			Likes:       top.Snippet.LikeCount,
			PublishedAt: top.Snippet.PublishedAt,
		})
	}
	return comments, nil
}
