package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	configFilename = "config.toml"
	envPrefix      = "WORLDCLOCK_"
)

// ReadConfig loads config.toml from the working directory (if present) and
// WORLDCLOCK_ environment overrides on top of the defaults in Config.
func ReadConfig() (configDefinition, error) {
	return ReadConfigFrom(configFilename, os.Environ())
}

// ReadConfigFrom is ReadConfig with an explicit file path and environment.
// Nested keys in the environment are separated by a double underscore, so
// WORLDCLOCK_GEOCODING__TIMEOUT=5s sets geocoding.timeout.
func ReadConfigFrom(filename string, environ []string) (configDefinition, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config, fmt.Errorf("failed to load default config: %w", err)
	}

	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			if err := k.Load(file.Provider(filename), toml.Parser()); err != nil {
				return Config, fmt.Errorf("failed to read config file '%s': %w", filename, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config, fmt.Errorf("failed to stat config file '%s': %w", filename, err)
		}
	}

	if err := k.Load(envProvider{prefix: envPrefix, environ: environ}, nil); err != nil {
		return Config, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg configDefinition
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config, err
	}

	Config = cfg
	return cfg, nil
}

func (cfg configDefinition) validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Geocoding.Url == "" {
		return errors.New("geocoding url must be set")
	}
	if cfg.Geocoding.UserAgent == "" {
		// the public Nominatim instance refuses anonymous clients
		return errors.New("geocoding user_agent must be set")
	}
	if cfg.Geocoding.Timeout <= 0 {
		return fmt.Errorf("invalid geocoding timeout %s", cfg.Geocoding.Timeout)
	}
	if cfg.Geocoding.CacheTtl < 0 {
		return fmt.Errorf("invalid geocoding cache_ttl %s", cfg.Geocoding.CacheTtl)
	}
	if cfg.Refresh.Interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", cfg.Refresh.Interval)
	}
	return nil
}

// envProvider feeds prefixed environment variables into koanf.
type envProvider struct {
	prefix  string
	environ []string
}

func (e envProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("env provider does not support ReadBytes")
}

func (e envProvider) Read() (map[string]interface{}, error) {
	flat := make(map[string]interface{})
	for _, entry := range e.environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, e.prefix) {
			continue
		}
		key = strings.ToLower(strings.TrimPrefix(key, e.prefix))
		if key == "" {
			continue
		}
		flat[strings.ReplaceAll(key, "__", ".")] = value
	}
	return maps.Unflatten(flat, "."), nil
}
