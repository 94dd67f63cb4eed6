package gdocs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
)

func textRun(s string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: s}},
			},
		},
	}
}

func TestFlattenBody(t *testing.T) {
	body := &docs.Body{Content: []*docs.StructuralElement{
		textRun("Title\n"),
		textRun("First paragraph.\n"),
		{
			Table: &docs.Table{
				TableRows: []*docs.TableRow{
					{
						TableCells: []*docs.TableCell{
							{Content: []*docs.StructuralElement{textRun("cell a\n")}},
							{Content: []*docs.StructuralElement{textRun("cell b\n")}},
						},
					},
				},
			},
		},
		{SectionBreak: &docs.SectionBreak{}},
	}}

	assert.Equal(t, "Title\nFirst paragraph.\ncell a\ncell b\n", flattenBody(body))
}

func TestFlattenBodyEmpty(t *testing.T) {
	assert.Equal(t, "", flattenBody(nil))
	assert.Equal(t, "", flattenBody(&docs.Body{}))
}

func TestFlattenBodySkipsNonTextElements(t *testing.T) {
	body := &docs.Body{Content: []*docs.StructuralElement{
		{
			Paragraph: &docs.Paragraph{
				Elements: []*docs.ParagraphElement{
					{InlineObjectElement: &docs.InlineObjectElement{}},
					{TextRun: &docs.TextRun{Content: "after image\n"}},
				},
			},
		},
	}}

	assert.Equal(t, "after image\n", flattenBody(body))
}

func TestTokenSourceStaticWithoutRefreshCredentials(t *testing.T) {
	ts := TokenSource(context.Background(), Credentials{AccessToken: "ya29.access"})
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.access", tok.AccessToken)
	// no expiry means the token is used as-is, never refreshed
	assert.True(t, tok.Expiry.IsZero())
}
