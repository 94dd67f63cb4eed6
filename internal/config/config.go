package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyBrowserHeadless, true)
	viper.SetDefault(KeyOCRModel, "gpt-4o")
	viper.SetDefault(KeyCaptchaModel, "gemini-1.5-flash")
}

func LogLevel() string          { return viper.GetString(KeyLogLevel) }
func ClickUpAPIToken() string   { return viper.GetString(KeyClickUpAPIToken) }
func TrelloAPIKey() string      { return viper.GetString(KeyTrelloAPIKey) }
func TrelloToken() string       { return viper.GetString(KeyTrelloToken) }
func TrelloBoardID() string     { return viper.GetString(KeyTrelloBoardID) }
func AirtableAPIKey() string    { return viper.GetString(KeyAirtableAPIKey) }
func YouTubeAPIKey() string     { return viper.GetString(KeyYouTubeAPIKey) }
func ZoomAccountID() string     { return viper.GetString(KeyZoomAccountID) }
func ZoomClientID() string      { return viper.GetString(KeyZoomClientID) }
func ZoomClientSecret() string  { return viper.GetString(KeyZoomClientSecret) }
func GDocsAccessToken() string  { return viper.GetString(KeyGDocsAccessToken) }
func GDocsRefreshToken() string { return viper.GetString(KeyGDocsRefreshToken) }
func GoogleClientID() string    { return viper.GetString(KeyGoogleClientID) }
func GoogleClientSecret() string { return viper.GetString(KeyGoogleClientSec) }
func BrowserEnabled() bool      { return viper.GetBool(KeyBrowserEnabled) }
func BrowserHeadless() bool     { return viper.GetBool(KeyBrowserHeadless) }
func OpenAIAPIKey() string      { return viper.GetString(KeyOpenAIAPIKey) }
func OCRModel() string          { return viper.GetString(KeyOCRModel) }
func GeminiAPIKey() string      { return viper.GetString(KeyGeminiAPIKey) }
func CaptchaModel() string      { return viper.GetString(KeyCaptchaModel) }
