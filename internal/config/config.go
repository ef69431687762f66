package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "SHAPECURL"
)

// Formats lists the accepted values of the output setting.
var Formats = []string{"json", "yaml", "toml", "table", "curl"}

type Config struct {
	Output      string `mapstructure:"output" yaml:"output"`
	Multiline   bool   `mapstructure:"multiline" yaml:"multiline"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
}

// Dir returns $SHAPECURL_CONFIG_PATH, or ~/.shape-curl when it is unset.
func Dir() (string, error) {
	if dir := os.Getenv(envPrefix + "_CONFIG_PATH"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".shape-curl"), nil
}

// Setup registers the config file location, environment binding and
// defaults on v.
func Setup(v *viper.Viper) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	v.AddConfigPath(dir)
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("output", "json")
	v.SetDefault("multiline", false)
	v.SetDefault("verbose", false)
	v.SetDefault("history_file", filepath.Join(dir, "history"))
	return nil
}

// Load reads the config file, if there is one, and decodes the settings.
// A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Output) {
		return fmt.Errorf("unknown output format %q (want one of %v)", c.Output, Formats)
	}
	return nil
}

// Write saves the current settings of v as the config file and returns
// its path.
func Write(v *viper.Viper) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
