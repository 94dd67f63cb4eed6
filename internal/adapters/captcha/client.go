package captcha

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const (
	imagePrompt = "This image shows a CAPTCHA challenge. Read the characters or solve the task it presents and answer with the solution only, no explanation."
	textPrompt  = "Answer the following challenge question with the answer only, no explanation:\n\n"
)

// Client solves captcha challenges with a Gemini vision model.
type Client struct {
	llm llms.Model
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("captcha: create gemini client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// NewClientWithModel wires an existing model, used by tests.
func NewClientWithModel(llm llms.Model) *Client {
	return &Client{llm: llm}
}

// SolveImage answers an image captcha given base64 image data.
func (c *Client) SolveImage(ctx context.Context, imageB64, mimeType string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", fmt.Errorf("captcha: decode image data: %w", err)
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextContent{Text: imagePrompt},
				llms.BinaryContent{MIMEType: mimeType, Data: data},
			},
		},
	}
	return c.generate(ctx, messages)
}

// SolveQuestion answers a text challenge question.
func (c *Client) SolveQuestion(ctx context.Context, question string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: textPrompt + question}},
		},
	}
	return c.generate(ctx, messages)
}

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("captcha: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("captcha: empty model response")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
