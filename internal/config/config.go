package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the defaults for one invocation. Command-line flags override
// these values at the CLI boundary. BuildNumber is resolved here from the
// environment once, so no other component reads env vars.
type Config struct {
	Filename    string `mapstructure:"filename"`
	Branch      string `mapstructure:"branch"`
	Remote      string `mapstructure:"remote"`
	TagPrefix   string `mapstructure:"tag_prefix"`
	BuildNumber string `mapstructure:"build_number"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Filename: "version",
		Branch:   "master",
		Remote:   "origin",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.ContainsAny(c.Filename, "/\\") {
		return fmt.Errorf("filename must not contain path separators: %s", c.Filename)
	}
	if c.Branch == "" {
		return fmt.Errorf("branch cannot be empty")
	}
	if c.Remote == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	return nil
}

// LoadConfig reads defaults from an optional .vbump.yaml in the working
// directory and from VBUMP_-prefixed environment variables. BUILD_NUMBER is
// also bound without the prefix because that is the name CI servers export.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".vbump")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("VBUMP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("build_number", "BUILD_NUMBER", "VBUMP_BUILD_NUMBER"); err != nil {
		return nil, fmt.Errorf("failed to bind build_number env: %w", err)
	}
	defaults := DefaultConfig()
	v.SetDefault("filename", defaults.Filename)
	v.SetDefault("branch", defaults.Branch)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
