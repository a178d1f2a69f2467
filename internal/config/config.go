// Package config loads server settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Token store backends.
const (
	StoreSQLite   = "sqlite"
	StoreKeychain = "keychain"
	StoreMemory   = "memory"
)

// Config is the full server configuration.
type Config struct {
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`

	Transport string `yaml:"transport"` // stdio | http
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`

	CredentialsDir  string `yaml:"credentials_dir"`
	CredentialsFile string `yaml:"credentials_file"` // authorized-user JSON re-imported on change
	TokenStore      string `yaml:"token_store"`      // sqlite | keychain | memory

	LogLevel        string `yaml:"log_level"`
	RefreshSchedule string `yaml:"token_refresh_schedule"`

	SlidesBaseURL string        `yaml:"slides_api_base_url"`
	DriveBaseURL  string        `yaml:"drive_api_base_url"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

// Default returns the built-in settings.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Transport:       TransportStdio,
		Host:            "127.0.0.1",
		Port:            8000,
		CredentialsDir:  filepath.Join(home, ".google-slides-mcp"),
		TokenStore:      StoreSQLite,
		LogLevel:        "info",
		RefreshSchedule: "@every 30m",
		HTTPTimeout:     30 * time.Second,
	}
}

// Load reads .env (if present), then the YAML file at path (or
// $SLIDES_MCP_CONFIG when path is empty), then the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path == "" {
		path, _ = lookup("SLIDES_MCP_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"GOOGLE_CLIENT_ID":       &c.GoogleClientID,
		"GOOGLE_CLIENT_SECRET":   &c.GoogleClientSecret,
		"MCP_TRANSPORT":          &c.Transport,
		"MCP_SERVER_HOST":        &c.Host,
		"CREDENTIALS_DIR":        &c.CredentialsDir,
		"CREDENTIALS_FILE":       &c.CredentialsFile,
		"TOKEN_STORE":            &c.TokenStore,
		"LOG_LEVEL":              &c.LogLevel,
		"TOKEN_REFRESH_SCHEDULE": &c.RefreshSchedule,
		"SLIDES_API_BASE_URL":    &c.SlidesBaseURL,
		"DRIVE_API_BASE_URL":     &c.DriveBaseURL,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MCP_SERVER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCP_SERVER_PORT: %q is not a number", v)
		}
		c.Port = port
	}
	if v, ok := lookup("HTTP_TIMEOUT"); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration or a plain number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}

func (c *Config) applyDefaults() {
	c.Transport = strings.ToLower(c.Transport)
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.TokenStore = strings.ToLower(c.TokenStore)
	c.CredentialsDir = expandHome(c.CredentialsDir)
	if c.CredentialsFile == "" {
		c.CredentialsFile = filepath.Join(c.CredentialsDir, "credentials.json")
	}
	c.CredentialsFile = expandHome(c.CredentialsFile)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport must be %s or %s, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be > 0")
	}
	switch c.TokenStore {
	case StoreSQLite, StoreKeychain, StoreMemory:
	default:
		return fmt.Errorf("token_store must be sqlite, keychain or memory, got %q", c.TokenStore)
	}
	if c.CredentialsDir == "" {
		return fmt.Errorf("credentials_dir is required")
	}
	if strings.TrimSpace(c.RefreshSchedule) == "" {
		return fmt.Errorf("token_refresh_schedule is required")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBPath is the SQLite token database.
func (c *Config) DBPath() string {
	return filepath.Join(c.CredentialsDir, "tokens.db")
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level must be debug, info, warn or error, got %q", s)
}
