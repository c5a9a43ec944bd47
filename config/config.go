// ABOUTME: Runtime configuration from environment, crm.env, and .env files
// ABOUTME: Resolves the data directory, storage backend, and charm sync settings
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/ostwick/crm/kv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// AppName names the data and config directories.
	AppName = "crm"

	// FileName is the optional config file, in env format.
	FileName = "crm"
)

// Config holds the resolved settings.
type Config struct {
	DataDir   string
	Backend   string
	CharmHost string
	AutoSync  bool
	LogLevel  string
	Seed      bool
}

// DefaultDataDir is $XDG_DATA_HOME/crm.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads configuration from the working directory and the XDG config
// directory.
func Load() (*Config, error) {
	return LoadFrom(".", filepath.Join(xdg.ConfigHome, AppName))
}

// LoadFrom reads configuration, searching dirs for crm.env. A .env file in
// the working directory is loaded into the environment first; variables that
// are already set win over both files.
func LoadFrom(dirs ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("env")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.AutomaticEnv()

	v.SetDefault("CRM_DATA_DIR", DefaultDataDir())
	v.SetDefault("CRM_BACKEND", kv.KindBadger)
	v.SetDefault("CRM_CHARM_HOST", kv.DefaultCharmHost)
	v.SetDefault("CRM_AUTO_SYNC", true)
	v.SetDefault("CRM_LOG_LEVEL", "info")
	v.SetDefault("CRM_SEED", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DataDir:   v.GetString("CRM_DATA_DIR"),
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString("CRM_BACKEND"))),
		CharmHost: v.GetString("CRM_CHARM_HOST"),
		AutoSync:  v.GetBool("CRM_AUTO_SYNC"),
		LogLevel:  v.GetString("CRM_LOG_LEVEL"),
		Seed:      v.GetBool("CRM_SEED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override applies non-empty command line values.
func (c *Config) Override(dataDir, backend string) error {
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if backend != "" {
		c.Backend = strings.ToLower(backend)
	}
	return c.Validate()
}

// Validate checks the backend kind and log level.
func (c *Config) Validate() error {
	switch c.Backend {
	case kv.KindBadger, kv.KindSQLite, kv.KindCharm:
	default:
		return fmt.Errorf("CRM_BACKEND must be one of %s, %s, %s; got %q", kv.KindBadger, kv.KindSQLite, kv.KindCharm, c.Backend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("CRM_LOG_LEVEL: %w", err)
	}
	if c.DataDir == "" {
		return fmt.Errorf("CRM_DATA_DIR is required")
	}
	return nil
}

// StoreOptions converts the config into backend options.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Kind:      c.Backend,
		DataDir:   c.DataDir,
		CharmHost: c.CharmHost,
		AutoSync:  c.AutoSync,
	}
}
