package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Source    SourceConfig    `yaml:"source"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// SourceConfig selects where collections are read from and written to.
type SourceConfig struct {
	Kind       string        `yaml:"kind"`
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

type DashboardConfig struct {
	WeeksBack       int           `yaml:"weeks_back"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	ExcludedLevel   string        `yaml:"excluded_level"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		DB: DBConfig{
			Path: "coachboard.db",
		},
		Source: SourceConfig{
			Kind:       SourceSQLite,
			Timeout:    10 * time.Second,
			MaxRetries: 3,
		},
		Dashboard: DashboardConfig{
			WeeksBack:       8,
			RefreshInterval: 5 * time.Minute,
			ExcludedLevel:   "1-Month Challenge",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables, in that order.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("COACHBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"COACHBOARD_SERVER_HOST":              &cfg.Server.Host,
		"COACHBOARD_TRANSPORT":                &cfg.Transport.Mode,
		"COACHBOARD_DB_PATH":                  &cfg.DB.Path,
		"COACHBOARD_SOURCE_KIND":              &cfg.Source.Kind,
		"COACHBOARD_SOURCE_BASE_URL":          &cfg.Source.BaseURL,
		"COACHBOARD_SOURCE_TOKEN":             &cfg.Source.Token,
		"COACHBOARD_DASHBOARD_EXCLUDED_LEVEL": &cfg.Dashboard.ExcludedLevel,
		"COACHBOARD_LOG_LEVEL":                &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"COACHBOARD_SERVER_PORT":          &cfg.Server.Port,
		"COACHBOARD_SOURCE_MAX_RETRIES":   &cfg.Source.MaxRetries,
		"COACHBOARD_DASHBOARD_WEEKS_BACK": &cfg.Dashboard.WeeksBack,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"COACHBOARD_SOURCE_TIMEOUT":             &cfg.Source.Timeout,
		"COACHBOARD_DASHBOARD_REFRESH_INTERVAL": &cfg.Dashboard.RefreshInterval,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("COACHBOARD_AUTH_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid COACHBOARD_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = b
	}
	return nil
}

// Validate reports settings that cannot start a server.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q (expected http or stdio)", c.Transport.Mode)
	}
	switch c.Source.Kind {
	case SourceSQLite:
	case SourceRemote:
		if c.Source.BaseURL == "" {
			return errors.New("source.base_url is required for the remote source")
		}
	default:
		return fmt.Errorf("invalid source kind %q (expected sqlite or remote)", c.Source.Kind)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Dashboard.WeeksBack < 1 || c.Dashboard.WeeksBack > refdate.MaxWeeks {
		return fmt.Errorf("dashboard.weeks_back must be between 1 and %d, got %d", refdate.MaxWeeks, c.Dashboard.WeeksBack)
	}
	if c.Dashboard.RefreshInterval < 0 {
		return errors.New("dashboard.refresh_interval must not be negative")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
