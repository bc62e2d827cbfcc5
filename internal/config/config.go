// Package config loads host settings from defaults, an optional YAML file,
// HOTBAR_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chatter/hotbar/internal/hotbar"
)

// ErrInvalidPosition is returned when position is neither top nor bottom.
var ErrInvalidPosition = errors.New("invalid bar position")

const envPrefix = "HOTBAR"

// Config holds host settings.
type Config struct {
	// LogLevel is empty for no logging, or debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// Position is the slot the hotbar is attached to: top or bottom.
	Position string `mapstructure:"position"`

	// ASCIIIcons forces plain ASCII button labels.
	ASCIIIcons bool `mapstructure:"ascii_icons"`
}

// Slot returns the hotbar slot named by Position.
func (c Config) Slot() hotbar.Slot {
	return hotbar.Slot(c.Position)
}

// Load reads configuration. An explicit path must exist; otherwise
// $XDG_CONFIG_HOME/hotbar/config.yaml is read when present. flags may be nil;
// flags the user set take precedence over everything else.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "")
	v.SetDefault("position", string(hotbar.SlotBottom))
	v.SetDefault("ascii_icons", false)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"log_level": "log-level",
			"position":  "position",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	c.Position = strings.ToLower(strings.TrimSpace(c.Position))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the position value.
func (c Config) Validate() error {
	switch hotbar.Slot(c.Position) {
	case hotbar.SlotTop, hotbar.SlotBottom:
		return nil
	default:
		return fmt.Errorf("%w: %q (use top or bottom)", ErrInvalidPosition, c.Position)
	}
}

func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hotbar")
}
