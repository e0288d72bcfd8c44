package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	// Defaults are registered per leaf key so a partial config file merges
	// with them instead of replacing a whole section.
	defaults := DefaultConfig()
	viper.SetDefault("layout.column_midpoint", defaults.Layout.ColumnMidpoint)
	viper.SetDefault("layout.single_column", defaults.Layout.SingleColumn)
	viper.SetDefault("detect.header_font_size", defaults.Detect.HeaderFontSize)
	viper.SetDefault("detect.body_font_size_max", defaults.Detect.BodyFontSizeMax)
	viper.SetDefault("detect.max_name_length", defaults.Detect.MaxNameLength)
	viper.SetDefault("detect.skip_headers", defaults.Detect.SkipHeaders)
	viper.SetDefault("detect.banner_pattern", defaults.Detect.BannerPattern)
	viper.SetDefault("detect.min_fragments", defaults.Detect.MinFragments)
	viper.SetDefault("pages.first", defaults.Pages.First)
	viper.SetDefault("pages.last", defaults.Pages.Last)
	viper.SetDefault("output.dir", defaults.Output.Dir)
	viper.SetDefault("output.dataset", defaults.Output.Dataset)
	viper.SetDefault("defaults.kind", defaults.Defaults.Kind)
	viper.SetDefault("defaults.max_workers", defaults.Defaults.MaxWorkers)

	// Environment variables with BESTIARY_ prefix
	viper.SetEnvPrefix("BESTIARY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.bestiary")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFileUsed returns the path of the loaded config file, or "" when the
// manager is running on defaults only.
func (cm *Manager) ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Bestiary configuration
# Layout and font thresholds are measured from the source document.
# Adjust them when targeting a different printing.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
