package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/agrisense/agrisense/internal/nav"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Profile ProfileConfig `mapstructure:"profile"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig names the session's in-memory fixture database.
type CatalogConfig struct {
	Name string `mapstructure:"name"`
}

// UIConfig holds presentation and flow settings.
type UIConfig struct {
	Region          string        `mapstructure:"region"`
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
	DefaultResult   string        `mapstructure:"default_result"`
}

// ProfileConfig is the signed-in field officer shown on the profile screen.
type ProfileConfig struct {
	Name     string `mapstructure:"name"`
	Role     string `mapstructure:"role"`
	District string `mapstructure:"district"`
	Language string `mapstructure:"language"`
}

// LogConfig controls the zap logger. An empty path discards logs.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix AGRISENSE_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("catalog.name", "agrisense")
	v.SetDefault("ui.region", "Udawalawe Region")
	v.SetDefault("ui.processing_delay", nav.DefaultProcessingDelay)
	v.SetDefault("ui.default_result", string(nav.ResultConfirmed))
	v.SetDefault("profile.name", "Kasun Perera")
	v.SetDefault("profile.role", "Field Officer")
	v.SetDefault("profile.district", "Udawalawe District")
	v.SetDefault("profile.language", "English")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("AGRISENSE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "agrisense"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AGRISENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
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

// Validate rejects settings the router cannot honour.
func (c Config) Validate() error {
	var errs []error
	if c.UI.ProcessingDelay <= 0 {
		errs = append(errs, fmt.Errorf("ui.processing_delay must be positive, got %s", c.UI.ProcessingDelay))
	}
	if _, err := nav.ParseResult(c.UI.DefaultResult); err != nil {
		errs = append(errs, fmt.Errorf("ui.default_result: %w", err))
	}
	if strings.TrimSpace(c.Catalog.Name) == "" {
		errs = append(errs, errors.New("catalog.name must not be empty"))
	}
	return errors.Join(errs...)
}

// DefaultResult returns the parsed ui.default_result.
func (c Config) DefaultResult() nav.Result {
	r, err := nav.ParseResult(c.UI.DefaultResult)
	if err != nil {
		return nav.ResultConfirmed
	}
	return r
}
