package ocr

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const extractPrompt = "Extract all text visible in this image. Return only the extracted text, preserving line breaks. If the image contains no text, return an empty string."

// Client runs OCR through an OpenAI vision model.
type Client struct {
	api   *openai.Client
	model string
}

type Option func(*openai.ClientConfig)

// WithBaseURL points the client at an alternate API endpoint.
func WithBaseURL(u string) Option {
	return func(cfg *openai.ClientConfig) { cfg.BaseURL = u }
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// ExtractText reads the text out of the image at imageURL. The URL may be a
// regular http(s) URL or a data URL built by DataURL.
func (c *Client) ExtractText(ctx context.Context, imageURL string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: extractPrompt,
				},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
				},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("ocr: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ocr: model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DataURL wraps base64 image bytes in a data URL the vision API accepts.
func DataURL(mimeType, b64 string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + b64
}
