// Package config provides configuration loading and management for ctpostman.
//
// Configuration is loaded using Viper, supporting YAML (or JSON) config files and
// environment variable overrides. The defaults point at the public demo API, so
// the tool works without any configuration file.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [APIConfig] contains the remote API endpoints
//   - [LogConfig] controls structured logging
//
// Configuration priority (highest to lowest):
//  1. Environment variables (CTPOSTMAN_ prefix, e.g. CTPOSTMAN_API_USERS_URL)
//  2. Config file specified by CTPOSTMAN_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/ctpostman/config.yaml
//     - macOS: ~/Library/Application Support/ctpostman/config.yaml
//     - Windows: %APPDATA%\ctpostman\config.yaml
//  4. ./config.yaml
//  5. [DefaultConfig] defaults
package config

import "time"

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// API contains the remote demo API endpoints.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Log contains structured logging configuration.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Output contains terminal output configuration.
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// APIConfig contains the remote API configuration.
type APIConfig struct {
	// UsersURL is the collection URL of the demo users resource. The wizard
	// creates, reads, patches and lists records under this URL.
	// Can be overridden with CTPOSTMAN_USERS_URL.
	UsersURL string `mapstructure:"users_url" yaml:"users_url"`

	// AuthURL is the base URL of the login/signup API.
	// Can be overridden with CTPOSTMAN_AUTH_URL.
	AuthURL string `mapstructure:"auth_url" yaml:"auth_url"`

	// RequestTimeout bounds a single remote call. Zero disables the bound,
	// in which case a hung call keeps the step busy until it returns.
	// Default: 30s
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: warn
	Level string `mapstructure:"level" yaml:"level"`

	// File, when set, receives JSON log lines instead of stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// OutputConfig contains terminal output configuration.
type OutputConfig struct {
	// Color enables lipgloss styling. Default: true
	Color bool `mapstructure:"color" yaml:"color"`
}

// Default endpoint values.
const (
	DefaultUsersURL       = "https://fordemo-ot4j.onrender.com/users"
	DefaultAuthURL        = "https://postman-backend-j2dq.onrender.com/api"
	DefaultRequestTimeout = 30 * time.Second
)

// DefaultConfig returns a new [Config] with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			UsersURL:       DefaultUsersURL,
			AuthURL:        DefaultAuthURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}
