// Package config loads the application configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Scheduler *SchedulerConfig `mapstructure:"scheduler"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type SchedulerConfig struct {
	// ExpiryHour is the local hour of day the expiry sweep fires at.
	ExpiryHour int `mapstructure:"expiry_hour"`
}

// Load reads the YAML file at path. Any key can be overridden with an
// environment variable, e.g. API_JWT_SIGNING_KEY for api.jwt_signing_key.
// The file is watched so edits apply on the next read of the config.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))

		if err := v.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
		}
	})
	v.WatchConfig()

	return conf, nil
}
