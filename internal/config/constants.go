// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "Project Generator API"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":8080"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultLogLevel        = "info"
	DefaultDatabaseDriver  = "postgres"
	DefaultEnhancerType    = "openai"
	DefaultOpenAIBaseURL   = "https://api.openai.com"
	DefaultOpenAIModel     = "gpt-4o"
	DefaultOpenAITimeout   = 60 * time.Second
	DefaultOpenAIRateLimit = 1.0
	DefaultOpenAIBurst     = 3
	DefaultLockTTL         = 2 * time.Minute
	DefaultLockWait        = 90 * time.Second
)

// 強化処理の種別
const (
	EnhancerTypeOpenAI   = "openai"
	EnhancerTypeDisabled = "disabled"
)
