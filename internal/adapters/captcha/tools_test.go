package captcha

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/relayforge/saas-toolbelt/internal/logging"
)

type fakeModel struct {
	lastMessages []llms.MessageContent
	answer       string
	err          error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.lastMessages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.answer}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.answer, f.err
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{Arguments: args},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestSolveImage(t *testing.T) {
	model := &fakeModel{answer: " X7KQ9 \n"}
	a := New(NewClientWithModel(model), logging.New(logr.Discard()))

	png := []byte{0x89, 0x50, 0x4e, 0x47}
	res, err := a.handleSolveImage(context.Background(), callReq(map[string]any{
		"image_base64": base64.StdEncoding.EncodeToString(png),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"answer":"X7KQ9"`)

	// The image reaches the model as a binary part next to the instruction.
	require.Len(t, model.lastMessages, 1)
	parts := model.lastMessages[0].Parts
	require.Len(t, parts, 2)
	binary, ok := parts[1].(llms.BinaryContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", binary.MIMEType)
	assert.Equal(t, png, binary.Data)
}

func TestSolveImageRejectsBadBase64(t *testing.T) {
	a := New(NewClientWithModel(&fakeModel{}), logging.New(logr.Discard()))

	res, err := a.handleSolveImage(context.Background(), callReq(map[string]any{
		"image_base64": "not base64!!!",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "decode image data")
}

func TestSolveQuestion(t *testing.T) {
	model := &fakeModel{answer: "42"}
	a := New(NewClientWithModel(model), logging.New(logr.Discard()))

	res, err := a.handleSolveQuestion(context.Background(), callReq(map[string]any{
		"question": "What is six times seven?",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"answer":"42"`)

	text, ok := model.lastMessages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "What is six times seven?")
}

func TestEmptyModelResponse(t *testing.T) {
	model := &fakeModel{}
	a := New(NewClientWithModel(model), logging.New(logr.Discard()))

	res, err := a.handleSolveQuestion(context.Background(), callReq(map[string]any{"question": "hm"}))
	require.NoError(t, err)
	// An empty answer still counts as a choice; only a missing choice errors.
	require.False(t, res.IsError)
}
