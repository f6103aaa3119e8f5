package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a starfolio run.
// Values are populated from .starfolio.yaml, STARFOLIO_* env vars, and CLI flags.
type Config struct {
	DataDir       string   `mapstructure:"data_dir"`
	ContentDir    string   `mapstructure:"content_dir"`
	ContentExt    string   `mapstructure:"content_ext"`
	OrderFile     string   `mapstructure:"order_file"`
	CatalogFile   string   `mapstructure:"catalog_file"`
	Exclude       []string `mapstructure:"exclude"`
	StrictCatalog bool     `mapstructure:"strict_catalog"`
	OutDir        string   `mapstructure:"out_dir"`
	EventsFile    string   `mapstructure:"events_file"`
	Verbose       bool     `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("data_dir", "src/data")
	viper.SetDefault("content_dir", "src/content/projects")
	viper.SetDefault("content_ext", ".mdx")
	viper.SetDefault("order_file", "portfolio.order.yaml")
	viper.SetDefault("catalog_file", "catalog.yaml")
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("strict_catalog", false)
	viper.SetDefault("out_dir", "out")
	viper.SetDefault("events_file", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the loader cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if strings.TrimSpace(c.CatalogFile) == "" {
		return fmt.Errorf("config: catalog_file must not be empty")
	}
	if !strings.HasPrefix(c.ContentExt, ".") {
		return fmt.Errorf("config: content_ext must start with '.', got %q", c.ContentExt)
	}
	return nil
}
