package gdocs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const docMIMEType = "application/vnd.google-apps.document"

// Credentials carries the per-agent OAuth tokens handed to this adapter.
// Client ID/secret are only needed when the refresh token should be used.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// TokenSource builds an oauth2 token source from the handed-in tokens. With
// refresh credentials present the source refreshes through the Google token
// endpoint; otherwise the access token is used as-is.
func TokenSource(ctx context.Context, creds Credentials) oauth2.TokenSource {
	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}
	if creds.RefreshToken == "" || creds.ClientID == "" {
		return oauth2.StaticTokenSource(tok)
	}
	// The token's remaining lifetime is not transmitted alongside it; assume
	// the Google default of one hour, half consumed.
	tok.Expiry = time.Now().Add(30 * time.Minute)
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	return cfg.TokenSource(ctx, tok)
}

// Service wraps the Google Docs and Drive APIs for document-level operations.
type Service struct {
	docs  *docs.Service
	drive *drive.Service
}

func NewService(ctx context.Context, creds Credentials, opts ...option.ClientOption) (*Service, error) {
	all := append([]option.ClientOption{option.WithTokenSource(TokenSource(ctx, creds))}, opts...)
	docsSvc, err := docs.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("gdocs: create docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("gdocs: create drive service: %w", err)
	}
	return &Service{docs: docsSvc, drive: driveSvc}, nil
}

// DocumentRef identifies a created or listed document.
type DocumentRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Modified string `json:"modified,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Create makes an empty document with the given title.
func (s *Service) Create(ctx context.Context, title string) (*DocumentRef, error) {
	doc, err := s.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gdocs: create document: %w", err)
	}
	return &DocumentRef{
		ID:    doc.DocumentId,
		Title: doc.Title,
		Link:  "https://docs.google.com/document/d/" + doc.DocumentId + "/edit",
	}, nil
}

// Read returns the title and plain-text body of a document.
func (s *Service) Read(ctx context.Context, documentID string) (string, string, error) {
	doc, err := s.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("gdocs: read document: %w", err)
	}
	return doc.Title, flattenBody(doc.Body), nil
}

// Append inserts text at the end of the document body.
func (s *Service) Append(ctx context.Context, documentID, text string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Text:                 text,
				EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			},
		}},
	}
	if _, err := s.docs.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gdocs: append text: %w", err)
	}
	return nil
}

// Replace substitutes every occurrence of find with replace and reports the
// number of occurrences changed.
func (s *Service) Replace(ctx context.Context, documentID, find, replace string, matchCase bool) (int64, error) {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: &docs.SubstringMatchCriteria{Text: find, MatchCase: matchCase},
				ReplaceText:  replace,
			},
		}},
	}
	resp, err := s.docs.Documents.BatchUpdate(documentID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("gdocs: replace text: %w", err)
	}
	var changed int64
	for _, reply := range resp.Replies {
		if reply.ReplaceAllText != nil {
			changed += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return changed, nil
}

// List returns the caller's documents from Drive, newest first, optionally
// filtered by a name substring.
func (s *Service) List(ctx context.Context, nameContains string, pageSize int64) ([]DocumentRef, error) {
	q := fmt.Sprintf("mimeType='%s' and trashed=false", docMIMEType)
	if nameContains != "" {
		q += fmt.Sprintf(" and name contains '%s'", strings.ReplaceAll(nameContains, "'", `\'`))
	}
	if pageSize <= 0 {
		pageSize = 25
	}
	resp, err := s.drive.Files.List().
		Q(q).
		OrderBy("modifiedTime desc").
		PageSize(pageSize).
		Fields("files(id,name,modifiedTime,webViewLink)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gdocs: list documents: %w", err)
	}
	refs := make([]DocumentRef, 0, len(resp.Files))
	for _, f := range resp.Files {
		refs = append(refs, DocumentRef{
			ID:       f.Id,
			Title:    f.Name,
			Modified: f.ModifiedTime,
			Link:     f.WebViewLink,
		})
	}
	return refs, nil
}

// Delete removes the document permanently, skipping the Drive trash bin.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if err := s.drive.Files.Delete(documentID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gdocs: delete document: %w", err)
	}
	return nil
}

// flattenBody walks the structural elements of a document and concatenates
// every text run, including table cells, into plain text.
func flattenBody(body *docs.Body) string {
	if body == nil {
		return ""
	}
	var sb strings.Builder
	flattenElements(&sb, body.Content)
	return sb.String()
}

func flattenElements(sb *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun != nil {
					sb.WriteString(pe.TextRun.Content)
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					flattenElements(sb, cell.Content)
				}
			}
		}
	}
}
