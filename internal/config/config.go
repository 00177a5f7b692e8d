package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. NEXUS_LOG_LEVEL
const EnvPrefix = "NEXUS"

// Config represents the complete application configuration
type Config struct {
	UI       UIConfig       `mapstructure:"ui"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Log      LogConfig      `mapstructure:"log"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	DefaultCategory string        `mapstructure:"default_category"`
	DefaultPort     string        `mapstructure:"default_port"`
	ClockFormat     string        `mapstructure:"clock_format"`
	SidebarOpen     bool          `mapstructure:"sidebar_open"`
	MaxLogEntries   int           `mapstructure:"max_log_entries"`
	StatsInterval   time.Duration `mapstructure:"stats_interval"`
	Theme           ThemeConfig   `mapstructure:"theme"`
}

type ThemeConfig struct {
	Accent  string `mapstructure:"accent"`
	Border  string `mapstructure:"border"`
	Focused string `mapstructure:"focused"`
	// Categories overrides the accent colour of individual categories
	Categories map[string]string `mapstructure:"categories"`
}

// CatalogConfig points at an optional tools.yaml
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type ExecutorConfig struct {
	MinDelay      time.Duration `mapstructure:"min_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads nexus.yaml from path, or from the standard locations when path
// is empty. A missing file is not an error when searching; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nexus")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// defaults always decode
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if c.Executor.MinDelay < 0 || c.Executor.MaxDelay < 0 {
		return fmt.Errorf("executor delays must not be negative")
	}
	if c.Executor.MaxDelay < c.Executor.MinDelay {
		return fmt.Errorf("executor.max_delay (%s) is below executor.min_delay (%s)", c.Executor.MaxDelay, c.Executor.MinDelay)
	}
	if c.UI.MaxLogEntries <= 0 {
		return fmt.Errorf("ui.max_log_entries must be positive, got %d", c.UI.MaxLogEntries)
	}
	if c.UI.StatsInterval <= 0 {
		return fmt.Errorf("ui.stats_interval must be positive, got %s", c.UI.StatsInterval)
	}
	return nil
}

// searchPaths lists the directories tried for nexus.yaml, in order
func searchPaths() []string {
	paths := []string{
		"configs",
		".",
	}

	if execPath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".nexus"))
	}
	return append(paths, "/etc/nexus")
}

func setDefaults(v *viper.Viper) {
	setUIDefaults(v)
	setCatalogDefaults(v)
	setExecutorDefaults(v)
	setLogDefaults(v)
}

func setUIDefaults(v *viper.Viper) {
	v.SetDefault("ui.default_category", "network")
	v.SetDefault("ui.default_port", "80")
	v.SetDefault("ui.clock_format", "15:04:05")
	v.SetDefault("ui.sidebar_open", true)
	v.SetDefault("ui.max_log_entries", 500)
	v.SetDefault("ui.stats_interval", 2*time.Second)
	v.SetDefault("ui.theme.accent", "#00FF41")
	v.SetDefault("ui.theme.border", "#444444")
	v.SetDefault("ui.theme.focused", "#888888")
	v.SetDefault("ui.theme.categories", map[string]string{})
}

func setCatalogDefaults(v *viper.Viper) {
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)
}

func setExecutorDefaults(v *viper.Viper) {
	v.SetDefault("executor.min_delay", 500*time.Millisecond)
	v.SetDefault("executor.max_delay", 2*time.Second)
	v.SetDefault("executor.timeout", 30*time.Second)
	v.SetDefault("executor.max_concurrent", 4)
}

func setLogDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "nexus.log")
}
