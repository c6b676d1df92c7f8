package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel           string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort           string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage            string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	SessionTTL         time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	StarterPolicy      string        `yaml:"starter-policy" env:"STARTER_POLICY" env-default:"first"`
	CORSAllowedOrigins []string      `yaml:"cors-allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	Redis              Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the yml file at path with env overrides. A missing file is not an
// error: env and defaults are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if config.Storage != StorageMemory && config.Storage != StorageRedis {
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
