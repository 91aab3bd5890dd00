package config

// Поддерживаемые драйверы хранилища снимков.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StorageConfig выбирает бэкенд хранилища снимков.
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"file"`
	Dir        string `yaml:"dir" env:"NOTES_STORAGE_DIR" env-default:"data"`
	SQLitePath string `yaml:"sqlite_path" env:"NOTES_SQLITE_PATH" env-default:"notes.db"`
}
