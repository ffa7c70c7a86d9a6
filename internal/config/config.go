// Package config builds the process-wide configuration once at startup.
// The resulting Config is never mutated afterwards; components receive the
// values they need from it explicitly.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Deployment environments selected through APP_ENV.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings for the API server.
type Config struct {
	Env            string
	Port           string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	RabbitMQURL    string // empty disables product event publishing
}

var defaults = map[string]map[string]string{
	EnvDevelopment: {
		"APP_PORT":        ":3000",
		"DATABASE_DRIVER": DriverPostgres,
		"DATABASE_DSN":    "host=127.0.0.1 user=postgres password=postgres dbname=devurai port=5432 sslmode=disable",
		"JWT_SECRET":      "asdfsadfl;234234",
	},
	EnvTest: {
		"APP_PORT":        ":3001",
		"DATABASE_DRIVER": DriverSQLite,
		"DATABASE_DSN":    "file::memory:?cache=shared",
		"JWT_SECRET":      "sadfj2390sdfnkm'mfk",
	},
	EnvProduction: {
		"APP_PORT":        ":8080",
		"DATABASE_DRIVER": DriverPostgres,
	},
}

// Load reads APP_ENV, applies that environment's defaults, then overlays an
// optional config.yaml and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.AutomaticEnv()

	env := strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV")))
	envDefaults, ok := defaults[env]
	if !ok {
		return nil, fmt.Errorf("unknown environment %q", env)
	}
	for key, value := range envDefaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		Env:            env,
		Port:           v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in %s", c.Env)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required in %s", c.Env)
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if !strings.HasPrefix(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	return nil
}
