package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvAPIURL overrides [APIConfig.BaseURL] when set.
const EnvAPIURL = "VNX_API_URL"

// DefaultLogFile receives logs while the TUI owns the terminal.
const DefaultLogFile = "./tmp/vnx-tui.log"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Session  SessionConfig  `toml:"session"`
	Export   ExportConfig   `toml:"export"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig points the client at the notes service.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SessionConfig controls how session cookies outlive the process.
type SessionConfig struct {
	PersistCookies bool `toml:"persist_cookies"`
}

// ExportConfig contains defaults for note exports.
type ExportConfig struct {
	OutputDir string  `toml:"output_dir"`
	Format    string  `toml:"format"`
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// ServerConfig contains settings for the development backend.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	JWTSecret       string `toml:"jwt_secret"`
	AccessTokenTTL  string `toml:"access_token_ttl"`
	RefreshTokenTTL string `toml:"refresh_token_ttl"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AccessTTL parses the access token lifetime, defaulting to one hour.
func (s ServerConfig) AccessTTL() time.Duration {
	return parseDurationOr(s.AccessTokenTTL, time.Hour)
}

// RefreshTTL parses the refresh token lifetime, defaulting to one day.
func (s ServerConfig) RefreshTTL() time.Duration {
	return parseDurationOr(s.RefreshTokenTTL, 24*time.Hour)
}

// LogLevel parses the configured [log.Level], falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate checks fields that would otherwise fail late and far from the config file.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url must be an absolute URL, got %q", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	for name, v := range map[string]string{
		"server.access_token_ttl":  c.Server.AccessTokenTTL,
		"server.refresh_token_ttl": c.Server.RefreshTokenTTL,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment overrides onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// ResolveConfig loads the config at path when it exists, otherwise the defaults, then applies environment overrides.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if config, err = LoadConfig(path); err != nil {
				return nil, err
			}
		}
	}
	config.ApplyEnv()
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes the config back to disk as TOML.
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
