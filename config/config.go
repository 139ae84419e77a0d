package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"obstacle-detection/models"
)

type Config struct {
	Log      LogConfig           `yaml:"log"`
	Sentry   SentryConfig        `yaml:"sentry"`
	Database DatabaseConfig      `yaml:"database"`
	Redis    RedisConfig         `yaml:"redis"`
	Server   ServerConfig        `yaml:"server"`
	Boundary models.BoundaryJSON `yaml:"boundary"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
	// InputLogFilepath enables logging of every received datagram, empty to disable
	InputLogFilepath string `yaml:"inputLogFilepath"`
}

type SentryConfig struct {
	Dsn              string  `yaml:"dsn"`
	TracesSampleRate float64 `yaml:"tracesSampleRate"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dsn     string `yaml:"dsn"`
	Retries int    `yaml:"retries"`
	// Seconds between connection attempts
	RetryDelay float32 `yaml:"retryDelay"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	Port             int     `yaml:"port"`
	KeepAliveTimeout float32 `yaml:"keepAliveTimeout"` // Seconds, 0 for no timeout
	BoundaryName     string  `yaml:"boundaryName"`
	DebugAddr        string  `yaml:"debugAddr"` // pprof listen address, empty to disable
	// Reject reset_boundary requests with negative dimensions
	ValidateBoundaries bool `yaml:"validateBoundaries"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Sentry: SentryConfig{
			TracesSampleRate: 1.0,
		},
		Database: DatabaseConfig{
			Enabled:    true,
			Dsn:        "host=127.0.0.1 user=postgres password=postgres dbname=postgres port=5555 sslmode=disable",
			Retries:    10,
			RetryDelay: 3,
		},
		Redis: RedisConfig{
			Enabled: true,
			Addr:    "redis:6379",
		},
		Server: ServerConfig{
			Port:             6060,
			KeepAliveTimeout: 0,
			BoundaryName:     "default",
		},
	}
}

// Load reads the YAML file at path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := LoadYAML(file)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func LoadYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
