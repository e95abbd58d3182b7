/*
Package config manages TOML config for bookserve services.
*/
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Recommend RecommendConfig `toml:"recommend"`
	CLI       CliConfig       `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit    int `toml:"max_limit"`
	MinQueryLen int `toml:"min_query_len"`
	MaxQueryLen int `toml:"max_query_len"`
}

// CatalogConfig holds catalog data options.
type CatalogConfig struct {
	DataPath string `toml:"data_path"`
}

// RecommendConfig holds recommendation options.
type RecommendConfig struct {
	CacheEnabled bool `toml:"cache_enabled"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int   `toml:"default_limit"`
	DefaultUser  int64 `toml:"default_user"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:    64,
			MinQueryLen: 1,
			MaxQueryLen: 120,
		},
		Catalog: CatalogConfig{
			DataPath: "data/catalog.bin",
		},
		Recommend: RecommendConfig{
			CacheEnabled: true,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			DefaultUser:  0,
		},
	}
}

// LoadConfig loads from a TOML file, layering it over the defaults so a
// partial file keeps default values for everything it omits.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, err
	}
	config.validate()
	return config, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig writes the config as TOML.
func SaveConfig(config *Config, configPath string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return err
	}
	return os.WriteFile(configPath, buf.Bytes(), 0o644)
}

// validate clamps out-of-range values back to defaults rather than failing.
func (c *Config) validate() {
	def := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		log.Warnf("server.max_limit %d out of range, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MinQueryLen < 1 {
		log.Warnf("server.min_query_len %d out of range, using %d", c.Server.MinQueryLen, def.Server.MinQueryLen)
		c.Server.MinQueryLen = def.Server.MinQueryLen
	}
	if c.Server.MaxQueryLen < c.Server.MinQueryLen {
		log.Warnf("server.max_query_len %d below min_query_len, using %d", c.Server.MaxQueryLen, def.Server.MaxQueryLen)
		c.Server.MaxQueryLen = def.Server.MaxQueryLen
	}
	if c.CLI.DefaultLimit < 1 {
		log.Warnf("cli.default_limit %d out of range, using %d", c.CLI.DefaultLimit, def.CLI.DefaultLimit)
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}
