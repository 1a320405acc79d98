package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"mocha/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	}
	Poll struct {
		Interval     time.Duration `yaml:"interval"`
		MaxReadBytes int64         `yaml:"maxReadBytes"`
	}
	UI struct {
		Theme          string `yaml:"theme"`
		WrapDefault    bool   `yaml:"wrapDefault"`
		ShowTimestamps bool   `yaml:"showTimestamps"`
	}
	Sentry struct {
		DSN     string `yaml:"dsn"`
		Enabled bool   `yaml:"enabled"`
	}
	Version int
}

// Declared represents the log sources declared in mocha.yaml, keyed by
// display name, with the mapping order of the file preserved
type Declared struct {
	Order []string
	Paths map[string]string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.Poll.Interval = DefaultPollInterval
	cfg.Poll.MaxReadBytes = DefaultMaxReadBytes

	cfg.UI.Theme = DefaultTheme
	cfg.UI.ShowTimestamps = true

	return cfg
}

// DefaultDeclared returns an empty declared source set
func DefaultDeclared() *Declared {
	return &Declared{
		Order: []string{},
		Paths: make(map[string]string),
	}
}

// Load loads the configuration from file and returns read-only config with
// the declared sources in file order
func Load() (*Config, *Declared, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := readConfigFile()
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, DefaultDeclared(), nil
		}

		return nil, nil, errors.ErrFailedToReadConfig
	}

	declared, err := parseSourceOrder(data)
	if err != nil {
		return nil, nil, errors.ErrFailedToParseConfig
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MOCHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, errors.ErrFailedToParseConfig
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, declared, nil
}

// readConfigFile locates mocha.yaml in the working directory first, then in
// the user config directory
func readConfigFile() ([]byte, error) {
	data, err := os.ReadFile(ConfigFileName)
	if err == nil {
		return data, nil
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	configDir, dirErr := os.UserConfigDir()
	if dirErr != nil {
		return nil, err
	}

	return os.ReadFile(filepath.Join(configDir, AppDirName, ConfigFileName))
}

// setDefaults registers defaults with viper so environment variables are
// picked up even when the config file omits the key
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("poll.interval", cfg.Poll.Interval)
	v.SetDefault("poll.maxReadBytes", cfg.Poll.MaxReadBytes)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.wrapDefault", cfg.UI.WrapDefault)
	v.SetDefault("ui.showTimestamps", cfg.UI.ShowTimestamps)
	v.SetDefault("sentry.dsn", cfg.Sentry.DSN)
	v.SetDefault("sentry.enabled", cfg.Sentry.Enabled)
}

// ApplyDefaults fills unset fields with default values
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}

	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Poll.Interval == 0 {
		c.Poll.Interval = DefaultPollInterval
	}

	if c.Poll.MaxReadBytes == 0 {
		c.Poll.MaxReadBytes = DefaultMaxReadBytes
	}

	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
}

// parseSourceOrder reads mocha.yaml and extracts the declared sources in
// mapping order, which viper's map-based unmarshal cannot preserve
func parseSourceOrder(data []byte) (*Declared, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	declared := DefaultDeclared()

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return declared, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return declared, nil
	}

	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i]
		value := doc.Content[i+1]

		if key.Value != "sources" || value.Kind != yaml.MappingNode {
			continue
		}

		for j := 0; j < len(value.Content); j += 2 {
			name := value.Content[j].Value
			pathNode := value.Content[j+1]

			if pathNode.Kind != yaml.ScalarNode || pathNode.Value == "" {
				continue
			}

			if _, ok := declared.Paths[name]; ok {
				continue
			}

			declared.Order = append(declared.Order, name)
			declared.Paths[name] = pathNode.Value
		}
	}

	return declared, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validatePoll(); err != nil {
		return err
	}

	return c.validateUI()
}

// validateLogging validates logging settings
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
		return nil
	default:
		return fmt.Errorf("%w: %q", errors.ErrInvalidLogLevel, c.Logging.Level)
	}
}

// validatePoll validates polling settings
func (c *Config) validatePoll() error {
	if c.Poll.Interval < MinPollInterval {
		return fmt.Errorf("%w: %s (minimum %s)", errors.ErrInvalidPollInterval, c.Poll.Interval, MinPollInterval)
	}

	if c.Poll.MaxReadBytes <= 0 {
		return errors.ErrInvalidMaxReadBytes
	}

	return nil
}

// validateUI validates UI settings
func (c *Config) validateUI() error {
	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be 'dark' or 'light')", errors.ErrInvalidTheme, c.UI.Theme)
	}
}
