package config

const (
	KeyLogLevel = "log_level"

	KeyClickUpAPIToken = "clickup_api_token"

	KeyTrelloAPIKey  = "trello_api_key"
	KeyTrelloToken   = "trello_token"
	KeyTrelloBoardID = "trello_board_id"

	KeyAirtableAPIKey = "airtable_api_key"

	KeyYouTubeAPIKey = "youtube_api_key"

	KeyZoomAccountID    = "zoom_account_id"
	KeyZoomClientID     = "zoom_client_id"
	KeyZoomClientSecret = "zoom_client_secret"

	KeyGDocsAccessToken  = "gdocs_access_token"
	KeyGDocsRefreshToken = "gdocs_refresh_token"
	KeyGoogleClientID    = "google_client_id"
	KeyGoogleClientSec   = "google_client_secret"

	KeyBrowserEnabled  = "browser_enabled"
	KeyBrowserHeadless = "browser_headless"

	KeyOpenAIAPIKey = "openai_api_key"
	KeyOCRModel     = "ocr_model"

	KeyGeminiAPIKey = "gemini_api_key"
	KeyCaptchaModel = "captcha_model"
)
