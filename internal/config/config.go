package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NotMugil/profile-tui/internal/api"
)

const (
	appName   = "profile-tui"
	envPrefix = "PROFILE_TUI"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Keyring KeyringConfig `mapstructure:"keyring"`
}

// APIConfig holds profile service settings.
type APIConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// LogConfig holds logger settings. An empty File disables logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// KeyringConfig names the OS keyring service the API token is stored under.
type KeyringConfig struct {
	Service string `mapstructure:"service"`
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/profile-tui/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, appName+".log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", "https://api.example.com/v1/graphql")
	v.SetDefault("api.timeout", api.DefaultTimeout)
	v.SetDefault("api.requests_per_minute", 60)
	v.SetDefault("ui.toast_duration", 3*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("keyring.service", appName)
}

// New returns a viper instance with defaults, env overrides and, when path is
// non-empty, the config file registered. Callers may bind flags to it before
// passing it to Load.
func New(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file registered on v, if any, and decodes the result.
// A missing file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.Endpoint) == "" {
		errs = append(errs, errors.New("api.endpoint must not be empty"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.API.RequestsPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("api.requests_per_minute must be positive, got %d", c.API.RequestsPerMinute))
	}
	if c.UI.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("ui.toast_duration must be positive, got %s", c.UI.ToastDuration))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if strings.TrimSpace(c.Keyring.Service) == "" {
		errs = append(errs, errors.New("keyring.service must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Save writes cfg as YAML to path, creating parent directories if needed.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("api.endpoint", cfg.API.Endpoint)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.requests_per_minute", cfg.API.RequestsPerMinute)
	v.Set("ui.toast_duration", cfg.UI.ToastDuration.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("keyring.service", cfg.Keyring.Service)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
