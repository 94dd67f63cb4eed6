package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/relayforge/saas-toolbelt/internal/adapters"
	"github.com/relayforge/saas-toolbelt/internal/adapters/airtable"
	"github.com/relayforge/saas-toolbelt/internal/adapters/browser"
	"github.com/relayforge/saas-toolbelt/internal/adapters/captcha"
	"github.com/relayforge/saas-toolbelt/internal/adapters/clickup"
	"github.com/relayforge/saas-toolbelt/internal/adapters/gdocs"
	"github.com/relayforge/saas-toolbelt/internal/adapters/ocr"
	"github.com/relayforge/saas-toolbelt/internal/adapters/trello"
	"github.com/relayforge/saas-toolbelt/internal/adapters/youtube"
	"github.com/relayforge/saas-toolbelt/internal/adapters/zoom"
	"github.com/relayforge/saas-toolbelt/internal/config"
	"github.com/relayforge/saas-toolbelt/internal/logging"
)

type Config struct {
	Adapters []adapters.Adapter
	Options  []server.StreamableHTTPOption
	Logger   logging.Logger
}

// DefaultConfig enables every adapter whose credentials are configured. An
// adapter that fails to initialize is skipped with a logged error rather
// than failing the whole server, so one bad credential set does not take the
// rest of the toolbelt down.
func DefaultConfig(ctx context.Context) Config {
	log := logging.New(logging.ForLevel(config.LogLevel()))

	var enabled []adapters.Adapter
	if token := config.ClickUpAPIToken(); token != "" {
		enabled = append(enabled, clickup.New(token, log.WithName("clickup")))
	}
	if key, token := config.TrelloAPIKey(), config.TrelloToken(); key != "" && token != "" {
		enabled = append(enabled, trello.New(key, token, config.TrelloBoardID(), log.WithName("trello")))
	}
	if key := config.AirtableAPIKey(); key != "" {
		enabled = append(enabled, airtable.New(key, log.WithName("airtable")))
	}
	if key := config.YouTubeAPIKey(); key != "" {
		svc, err := youtube.NewService(ctx, key)
		if err != nil {
			log.Error(err, "skipping youtube adapter")
		} else {
			enabled = append(enabled, youtube.New(svc, log.WithName("youtube")))
		}
	}
	if account, id, secret := config.ZoomAccountID(), config.ZoomClientID(), config.ZoomClientSecret(); account != "" && id != "" && secret != "" {
		enabled = append(enabled, zoom.New(account, id, secret, log.WithName("zoom")))
	}
	if token := config.GDocsAccessToken(); token != "" {
		svc, err := gdocs.NewService(ctx, gdocs.Credentials{
			AccessToken:  token,
			RefreshToken: config.GDocsRefreshToken(),
			ClientID:     config.GoogleClientID(),
			ClientSecret: config.GoogleClientSecret(),
		})
		if err != nil {
			log.Error(err, "skipping gdocs adapter")
		} else {
			enabled = append(enabled, gdocs.New(svc, log.WithName("gdocs")))
		}
	}
	if config.BrowserEnabled() {
		enabled = append(enabled, browser.New(config.BrowserHeadless(), log.WithName("browser")))
	}
	if key := config.OpenAIAPIKey(); key != "" {
		enabled = append(enabled, ocr.New(ocr.NewClient(key, config.OCRModel()), log.WithName("ocr")))
	}
	if key := config.GeminiAPIKey(); key != "" {
		client, err := captcha.NewClient(ctx, key, config.CaptchaModel())
		if err != nil {
			log.Error(err, "skipping captcha adapter")
		} else {
			enabled = append(enabled, captcha.New(client, log.WithName("captcha")))
		}
	}

	return Config{
		Adapters: enabled,
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Logger: log,
	}
}
