// internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type OpenAIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // 1秒あたりのリクエスト数
	Burst     int           `mapstructure:"burst"`
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"` // 空なら Redis ロックを使わない
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
	LockWait time.Duration `mapstructure:"lock_wait"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Database struct {
		Driver      string `mapstructure:"driver"` // postgres | sqlite
		URL         string `mapstructure:"url"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`
	Server struct {
		Port           string        `mapstructure:"port"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS CORSConfig `mapstructure:"cors"`
	Auth struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"auth"`
	Enhancer struct {
		Type string `mapstructure:"type"` // openai | disabled
	} `mapstructure:"enhancer"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

var Cfg Config

func LoadConfig(path string) error {
	// .env があれば先に環境変数へ読み込む (無くてもエラーにしない)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// APP_SERVER_PORT のように接頭辞付きの環境変数でも上書きできる
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.driver", "DATABASE_DRIVER")
	viper.BindEnv("auth.api_key", "API_KEY")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL")
	viper.BindEnv("enhancer.type", "ENHANCER_TYPE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&Cfg)

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Enhancer: %s (model %s)", Cfg.Enhancer.Type, Cfg.OpenAI.Model)
	log.Printf("Redis lock enabled: %t", Cfg.Redis.URL != "")

	return nil
}

// --- デフォルト値の設定 ---
func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDatabaseDriver
	}
	if c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if c.Auth.APIKey == "" {
		log.Println("Warning: API key is not set. Create and delete endpoints will reject every request.")
	}
	if c.Enhancer.Type == "" {
		c.Enhancer.Type = DefaultEnhancerType
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = DefaultOpenAIBaseURL
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultOpenAIModel
	}
	if c.OpenAI.Timeout <= 0 {
		c.OpenAI.Timeout = DefaultOpenAITimeout
	}
	if c.OpenAI.RateLimit <= 0 {
		c.OpenAI.RateLimit = DefaultOpenAIRateLimit
	}
	if c.OpenAI.Burst <= 0 {
		c.OpenAI.Burst = DefaultOpenAIBurst
	}
	if c.Redis.LockTTL <= 0 {
		c.Redis.LockTTL = DefaultLockTTL
	}
	if c.Redis.LockWait <= 0 {
		c.Redis.LockWait = DefaultLockWait
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "X-API-Key"}
	}
}
