package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when the configuration file is absent or leaves
// a field unset.
const (
	DefaultListenAddress  = "localhost:8123"
	DefaultStateDir       = "state"
	DefaultResolveTimeout = Duration(10 * time.Second)
	DefaultLogLevel       = "info"
)

// Duration wraps time.Duration so YAML values can be written as "10s" or
// "2m30s" instead of raw nanoseconds.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string or an integer second count.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the daemon configuration, loaded from a YAML file.
type Config struct {
	// ListenAddress is the address the WebSocket API listens on.
	ListenAddress string `yaml:"listen_address,omitempty"`

	// StateDir is the directory holding the persisted dataset store.
	StateDir string `yaml:"state_dir,omitempty"`

	// AuditLog is the path of the CBOR audit log. Empty disables audit
	// logging.
	AuditLog string `yaml:"audit_log,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	Discovery DiscoveryConfig `yaml:"discovery,omitempty"`
}

// DiscoveryConfig configures border router discovery.
type DiscoveryConfig struct {
	// Interface restricts mDNS browsing to one network interface.
	// Empty browses all multicast-capable interfaces.
	Interface string `yaml:"interface,omitempty"`

	// ResolveTimeout bounds each service resolution.
	ResolveTimeout Duration `yaml:"resolve_timeout,omitempty"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		StateDir:      DefaultStateDir,
		LogLevel:      DefaultLogLevel,
		Discovery: DiscoveryConfig{
			ResolveTimeout: DefaultResolveTimeout,
		},
	}
}

// Load reads the configuration from the given path. A missing file yields
// the defaults; a present file is merged over them, so a partial file only
// overrides the fields it sets.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.ListenAddress == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Discovery.ResolveTimeout < 0 {
		return fmt.Errorf("resolve timeout must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = DefaultListenAddress
	}
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Discovery.ResolveTimeout == 0 {
		c.Discovery.ResolveTimeout = DefaultResolveTimeout
	}
}
