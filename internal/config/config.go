package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Push        PushConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

type PushConfig struct {
	GatewayTimeoutMS int
	GatewayToken     string
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("roomsignal_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("roomsignal_port", 8008)
	v.SetDefault("roomsignal_db_path", "data/roomsignal")
	v.SetDefault("roomsignal_db_timing", false)
	v.SetDefault("roomsignal_gateway_timeout_ms", 30000)
	v.SetDefault("roomsignal_gateway_token", "")

	env := resolveEnvironment(v)
	port := v.GetInt("roomsignal_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid ROOMSIGNAL_PORT: %d", port)
	}

	gatewayTimeout := v.GetInt("roomsignal_gateway_timeout_ms")
	if gatewayTimeout <= 0 {
		gatewayTimeout = 30000
	}
	if gatewayTimeout > 120000 {
		gatewayTimeout = 120000
	}

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("roomsignal_db_path")),
			LogTiming: v.GetBool("roomsignal_db_timing"),
		},
		Push: PushConfig{
			GatewayTimeoutMS: gatewayTimeout,
			GatewayToken:     strings.TrimSpace(v.GetString("roomsignal_gateway_token")),
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/roomsignal"
	}

	return cfg, nil
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func (c Config) GatewayTimeout() time.Duration {
	return time.Duration(c.Push.GatewayTimeoutMS) * time.Millisecond
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"roomsignal_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
