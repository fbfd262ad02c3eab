package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Session  Session `yaml:"session"`
	Redis    Redis   `yaml:"redis"`
}

type Session struct {
	Storage  string        `yaml:"storage" env:"SESSION_STORAGE" env-default:"memory"`
	TTL      time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	Capacity int           `yaml:"capacity" env:"SESSION_CAPACITY" env-default:"10000"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Session.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown session storage %q", that.Session.Storage)
	}

	if that.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", that.Session.TTL)
	}

	if that.Session.Capacity <= 0 {
		return fmt.Errorf("session capacity must be positive, got %d", that.Session.Capacity)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
