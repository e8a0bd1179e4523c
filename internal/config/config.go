package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for tabviz
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Upload  UploadConfig  `mapstructure:"upload"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SessionConfig holds session cache configuration
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// SuggestConfig holds suggestion generation configuration
type SuggestConfig struct {
	Language string `mapstructure:"language"`
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("TABVIZ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.sweep_interval", 5*time.Minute)

	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")

	v.SetDefault("suggest.language", "Spanish")

	v.SetDefault("upload.max_bytes", int64(25*1024*1024))

	v.SetDefault("cors.allow_origins", []string{"*"})
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
