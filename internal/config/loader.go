package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "PETS_"
	envConfig   = "PETS_CONFIG"
	envBarePort = "PORT"
)

// Load arma la Config por capas (de menor a mayor prioridad):
//  1. defaults (New)
//  2. archivo YAML si PETS_CONFIG está seteado
//  3. env con prefijo PETS_ (PETS_DATA_FILE -> data_file)
//  4. PORT sin prefijo
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	// El prefijo "PORT" también matchea PORTAL_*, etc.; solo nos interesa PORT.
	bare := env.Provider(envBarePort, ".", func(s string) string {
		if s == envBarePort {
			return "port"
		}
		return ""
	})
	if err := k.Load(bare, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.ReadMode = strings.ToLower(strings.TrimSpace(cfg.ReadMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
