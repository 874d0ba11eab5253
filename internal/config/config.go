package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int     `mapstructure:"APP_PORT" validate:"min=1,max=65535"`
	LogLevel         string  `mapstructure:"LOG_LEVEL"`
	StorageDriver    string  `mapstructure:"STORAGE_DRIVER" validate:"oneof=sqlite redis bolt"`
	DatabasePath     string  `mapstructure:"DATABASE_PATH" validate:"required_if=StorageDriver sqlite"`
	RedisAddr        string  `mapstructure:"REDIS_ADDR" validate:"required_if=StorageDriver redis"`
	BoltPath         string  `mapstructure:"BOLT_PATH" validate:"required_if=StorageDriver bolt"`
	SessionKey       string  `mapstructure:"SESSION_KEY" validate:"required"`
	GeminiAPIKey     string  `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string  `mapstructure:"GEMINI_MODEL" validate:"required"`
	GeminiBaseURL    string  `mapstructure:"GEMINI_BASE_URL" validate:"required,url"`
	Temperature      float64 `mapstructure:"TEMPERATURE" validate:"gte=0,lte=2"`
	DefaultLanguage  string  `mapstructure:"DEFAULT_LANGUAGE" validate:"oneof=en ur"`
	QuickRepliesFile string  `mapstructure:"QUICK_REPLIES_FILE"`
	ExportTimezone   string  `mapstructure:"EXPORT_TIMEZONE"`

	// ConfigFile is the .env file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "/data/wanderlust.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("BOLT_PATH", "/data/wanderlust.bolt")
	v.SetDefault("SESSION_KEY", "wanderlust_chat")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("TEMPERATURE", 0.7)
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("QUICK_REPLIES_FILE", "")
	v.SetDefault("EXPORT_TIMEZONE", "Local")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
