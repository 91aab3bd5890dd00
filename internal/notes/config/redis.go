package config

import (
	"time"

	redispkg "localnotes/pkg/db/redis"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host      string `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port      int    `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password  string `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB        int    `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize  int    `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   int    `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"3"`
	KeyPrefix string `yaml:"key_prefix" env:"NOTES_REDIS_KEY_PREFIX" env-default:""`
}

// ToClientConfig преобразует настройки в конфигурацию клиента.
func (r *RedisConfig) ToClientConfig() *redispkg.Config {
	return &redispkg.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  time.Duration(r.Timeout) * time.Second,
	}
}
