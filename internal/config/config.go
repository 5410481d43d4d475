package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for askdesk
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Upload       UploadConfig       `mapstructure:"upload"`
	Query        QueryConfig        `mapstructure:"query"`
	Notify       NotifyConfig       `mapstructure:"notify"`
	Progress     ProgressConfig     `mapstructure:"progress"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
}

// ServerConfig holds the remote service location
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UploadConfig holds upload form configuration
type UploadConfig struct {
	Field string `mapstructure:"field"`
}

// QueryConfig holds query form configuration
type QueryConfig struct {
	Field string `mapstructure:"field"`
}

// NotifyConfig holds transient notification configuration
type NotifyConfig struct {
	DismissAfter time.Duration `mapstructure:"dismiss_after"`
}

// ProgressConfig holds progress rotation configuration
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ConnectivityConfig holds connectivity observer configuration
type ConnectivityConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	HealthPath    string        `mapstructure:"health_path"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("askdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables, e.g. ASKDESK_SERVER_BASE_URL
	v.SetEnvPrefix("ASKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.api_key", "")
	// no client-side deadline unless configured
	v.SetDefault("server.timeout", time.Duration(0))

	v.SetDefault("upload.field", "file")
	v.SetDefault("query.field", "question")

	v.SetDefault("notify.dismiss_after", 4*time.Second)
	v.SetDefault("progress.interval", 2*time.Second)

	v.SetDefault("connectivity.enabled", true)
	v.SetDefault("connectivity.probe_interval", 10*time.Second)
	v.SetDefault("connectivity.health_path", "/health")
}

// Validate checks values that would otherwise fail later
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server.base_url %q: scheme must be http or https", c.Server.BaseURL)
	}
	if c.Upload.Field == "" || c.Query.Field == "" {
		return fmt.Errorf("upload.field and query.field must not be empty")
	}
	if c.Notify.DismissAfter <= 0 || c.Progress.Interval <= 0 {
		return fmt.Errorf("notify.dismiss_after and progress.interval must be positive")
	}
	if c.Connectivity.Enabled && c.Connectivity.ProbeInterval <= 0 {
		return fmt.Errorf("connectivity.probe_interval must be positive")
	}
	return nil
}
