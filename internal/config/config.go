package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config and logs.
const DirName = ".pathfinder"

// Config holds all pathfinder configuration.
type Config struct {
	Name string `yaml:"name"`

	// Prediction endpoint
	Endpoint EndpointConfig `yaml:"endpoint"`

	// Page markup the form is built from
	Form FormConfig `yaml:"form"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	Logging LoggingConfig `yaml:"logging"`
}

// EndpointConfig configures the remote prediction endpoint.
type EndpointConfig struct {
	BaseURL   string `yaml:"base_url"`
	Path      string `yaml:"path"`
	Timeout   string `yaml:"timeout"` // empty = no timeout
	UserAgent string `yaml:"user_agent"`
}

// FormConfig configures where widget declarations come from.
type FormConfig struct {
	Page string `yaml:"page"` // empty = embedded page
}

// UIConfig configures the terminal form.
type UIConfig struct {
	Theme     string `yaml:"theme"` // auto, light, dark
	AltScreen bool   `yaml:"alt_screen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "pathfinder",
		Endpoint: EndpointConfig{
			BaseURL:   "http://127.0.0.1:5000",
			Path:      "/predict",
			UserAgent: "pathfinder/1.0",
		},
		UI: UIConfig{
			Theme:     "auto",
			AltScreen: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        filepath.Join(DirName, "logs"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultConfigPath returns the config file inside the current workspace.
func DefaultConfigPath() string {
	return filepath.Join(DirName, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// A .env file next to the config directory, or in the working directory, is
// loaded first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	loadEnvFile(path)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func loadEnvFile(configPath string) {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(filepath.Dir(configPath)), ".env"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PATHFINDER_ENDPOINT"); v != "" {
		c.Endpoint.BaseURL = v
	}
	if v := os.Getenv("PATHFINDER_TIMEOUT"); v != "" {
		c.Endpoint.Timeout = v
	}
	if v := os.Getenv("PATHFINDER_PAGE"); v != "" {
		c.Form.Page = v
	}
	if v := os.Getenv("PATHFINDER_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("PATHFINDER_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// GetTimeout returns the exchange timeout. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	if c.Endpoint.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Endpoint.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// PredictURL joins the base URL and the endpoint path.
func (c *Config) PredictURL() string {
	return strings.TrimRight(c.Endpoint.BaseURL, "/") + "/" + strings.TrimLeft(c.Endpoint.Path, "/")
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint base_url: %q (want http(s)://host[:port])", c.Endpoint.BaseURL)
	}
	if c.Endpoint.Path == "" {
		return fmt.Errorf("endpoint path not configured")
	}
	if c.Endpoint.Timeout != "" {
		d, err := time.ParseDuration(c.Endpoint.Timeout)
		if err != nil {
			return fmt.Errorf("invalid endpoint timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("endpoint timeout must not be negative: %s", c.Endpoint.Timeout)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return c.Logging.Validate()
}
