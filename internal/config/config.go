package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/vango-dev/querystate/internal/errors"
	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "querystate.json"

	// DefaultAddr is the default listen address for serve.
	DefaultAddr = ":8080"

	// DefaultWSPath is the default WebSocket endpoint path.
	DefaultWSPath = "/ws"

	// DefaultMetricsPath is the default Prometheus endpoint path.
	DefaultMetricsPath = "/metrics"
)

// Config represents querystate.json.
type Config struct {
	// Fields declares the bound query fields, in order.
	Fields []querycodec.Field `json:"fields"`

	// Debounce is the deferred flush window (e.g., "600ms").
	Debounce string `json:"debounce,omitempty"`

	// Server configures the serve command.
	Server ServerConfig `json:"server,omitempty"`

	configPath string
}

// ServerConfig configures the navigator server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// WSPath is the WebSocket endpoint path.
	WSPath string `json:"wsPath,omitempty"`

	// MetricsPath is the Prometheus endpoint path.
	MetricsPath string `json:"metricsPath,omitempty"`

	// AllowedOrigins restricts WebSocket upgrades. Empty means same-origin
	// only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Debounce: querysync.DefaultWindow.String(),
		Server: ServerConfig{
			Addr:        DefaultAddr,
			WSPath:      DefaultWSPath,
			MetricsPath: DefaultMetricsPath,
		},
	}
}

// Load reads querystate.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("Q101").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Pass --field name=kind flags or create " + ConfigFileName)
		}
		return nil, errors.New("Q102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("Q102").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON and every kind is a known field kind")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("Q102").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("Q102").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Debounce == "" {
		c.Debounce = querysync.DefaultWindow.String()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.WSPath == "" {
		c.Server.WSPath = DefaultWSPath
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
}

// Validate checks the field declarations and the debounce window.
func (c *Config) Validate() error {
	if _, err := c.Mapping(); err != nil {
		return err
	}
	if _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// Mapping builds the field mapping.
func (c *Config) Mapping() (*querycodec.Mapping, error) {
	m, err := querycodec.NewMapping(c.Fields...)
	if err != nil {
		return nil, errors.New("Q103").Wrap(err)
	}
	return m, nil
}

// Window parses the debounce window.
func (c *Config) Window() (time.Duration, error) {
	if c.Debounce == "" {
		return querysync.DefaultWindow, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return 0, errors.New("Q102").
			WithDetail("debounce must be a positive duration such as \"600ms\", got " + c.Debounce)
	}
	return d, nil
}
