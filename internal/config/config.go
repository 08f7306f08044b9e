package config

import (
	"fmt"
	"net"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const DefaultAPIURL = "https://task-backend-gfbf.onrender.com"

type Config struct {
	Env    string `env:"TASKSYNC_ENV" env-default:"prod"`
	API    APIConfig
	Log    LogConfig
	Server ServerConfig
}

type APIConfig struct {
	BaseURL string `env:"TASKSYNC_API_URL" env-default:"https://task-backend-gfbf.onrender.com"`
}

type LogConfig struct {
	// File receives TUI logs; empty discards them.
	File string `env:"TASKSYNC_LOG_FILE"`
}

type ServerConfig struct {
	Host            string        `env:"TASKSYNC_SERVER_HOST" env-default:"127.0.0.1"`
	Port            string        `env:"TASKSYNC_SERVER_PORT" env-default:"8080"`
	DBPath          string        `env:"TASKSYNC_DB_PATH" env-default:"tasksync.db"`
	ShutdownTimeout time.Duration `env:"TASKSYNC_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api base url is required")
	}
	return nil
}
