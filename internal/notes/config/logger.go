package config

import (
	"localnotes/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
// Output - файл журнала; терминал занят интерфейсом, поэтому stdout не используется.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode   string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
	Output string `yaml:"output" env:"NOTES_LOGGER_OUTPUT" env-default:"notes.log"`
}

// GetEnvironment получает строку режима в logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
