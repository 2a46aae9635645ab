package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maloquacious/arrowtower/internal/model"
	"github.com/maloquacious/arrowtower/internal/store"
	"github.com/spf13/viper"
)

// Config is the optional arrowtower.yaml file. Every key has a default,
// so running without a file is the normal case.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	// Enums replaces the built-in value set of each listed field.
	Enums map[string][]string `mapstructure:"enums"`
	Debug bool                `mapstructure:"debug"`
}

type StoreConfig struct {
	// Path names the database file or a directory holding arrowtower.db.
	Path string `mapstructure:"path"`
	Seed bool   `mapstructure:"seed"`
}

// Load reads the config file at path. With an empty path it looks for
// arrowtower.yaml in the working directory and falls back to defaults
// when none is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store.path", store.GetDBPath(store.GetStorePath()))
	v.SetDefault("store.seed", false)
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("arrowtower")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// BuildEnums merges the configured value sets over the defaults.
// Field names are matched case-insensitively since viper folds keys.
func (c *Config) BuildEnums() (*model.Enums, error) {
	overrides := make(map[model.Field][]string, len(c.Enums))
	for key, values := range c.Enums {
		field, ok := lookupField(key)
		if !ok {
			return nil, fmt.Errorf("unknown enumeration field %q", key)
		}
		overrides[field] = values
	}
	return model.NewEnums(overrides)
}

func lookupField(key string) (model.Field, bool) {
	for _, f := range model.Fields {
		if strings.EqualFold(string(f), key) {
			return f, true
		}
	}
	return "", false
}
