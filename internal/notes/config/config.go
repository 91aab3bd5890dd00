// Package config содержит конфигурацию приложения заметок.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "localnotes/pkg/config"
	"localnotes/pkg/logger"
)

// ConfigFileEnv - переменная окружения с путем к файлу конфигурации.
// Формат определяется расширением: .yaml, .yml, .json, .toml или .env.
const ConfigFileEnv = "NOTES_CONFIG_FILE"

const serviceName = "notes"

// Config представляет полную конфигурацию приложения.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Locale   string         `yaml:"locale" env:"NOTES_LOCALE" env-default:"en"`
}

// Load загружает конфигурацию из файла NOTES_CONFIG_FILE (если задан) и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(ConfigFileEnv))
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "notes configuration",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("locale", cfg.Locale),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
