// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "MyLangBackend"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultJWTExpiryMinutes = 60
	DefaultGeminiModel      = "gemini-1.5-flash"
	DefaultChatHistoryLimit = 10
)
