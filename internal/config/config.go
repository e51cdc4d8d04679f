// Package config loads service configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Feed          FeedConfig          `yaml:"feed"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP and gRPC server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"`
	HTTPPort           int           `yaml:"http_port"`
	GRPCPort           int           `yaml:"grpc_port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	GracefulShutdown   time.Duration `yaml:"graceful_shutdown"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

// FeedConfig holds settings for the product feed and table build.
type FeedConfig struct {
	// Location is a local path or an http(s) URL.
	Location  string        `yaml:"location"`
	Timeout   time.Duration `yaml:"timeout"`
	Strict    bool          `yaml:"strict"`
	EagerLoad bool          `yaml:"eager_load"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads the YAML file at path (if any), applies env overrides and validates.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			HTTPPort:           8080,
			GRPCPort:           9090,
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       5 * time.Minute,
			IdleTimeout:        120 * time.Second,
			GracefulShutdown:   10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Feed: FeedConfig{
			Location: "dumps/netaporter_gb.json",
			Timeout:  5 * time.Minute,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "pricecomp-service",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("server.grpc_port %d out of range", c.Server.GRPCPort))
	}
	if c.Server.HTTPPort == c.Server.GRPCPort {
		errs = append(errs, fmt.Errorf("server.http_port and server.grpc_port are both %d", c.Server.HTTPPort))
	}
	if strings.TrimSpace(c.Feed.Location) == "" {
		errs = append(errs, errors.New("feed.location is required"))
	}
	if c.Feed.Timeout < 0 {
		errs = append(errs, errors.New("feed.timeout must not be negative"))
	}
	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("observability.log_format %q must be json or console", c.Observability.LogFormat))
	}

	return errors.Join(errs...)
}

// HTTPAddr returns the HTTP listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// GRPCAddr returns the gRPC listen address.
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		cfg.Server.HTTPPort = port
	}

	if v := os.Getenv("GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRPC_PORT: %w", err)
		}
		cfg.Server.GRPCPort = port
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSAllowedOrigins = origins
	}

	if v := os.Getenv("FEED_LOCATION"); v != "" {
		cfg.Feed.Location = v
	}

	if v := os.Getenv("FEED_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FEED_TIMEOUT: %w", err)
		}
		cfg.Feed.Timeout = d
	}

	if v := os.Getenv("FEED_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FEED_STRICT: %w", err)
		}
		cfg.Feed.Strict = b
	}

	if v := os.Getenv("FEED_EAGER_LOAD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FEED_EAGER_LOAD: %w", err)
		}
		cfg.Feed.EagerLoad = b
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}

	return nil
}
