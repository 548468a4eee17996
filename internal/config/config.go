// Package config define la configuración del proceso y cómo se carga.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig envuelve cualquier error de validación.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"

	ReadModeStrict  = "strict"
	ReadModeLenient = "lenient"
)

type Config struct {
	// Port de escucha HTTP. También se acepta PORT sin prefijo.
	Port int `koanf:"port"`

	// DataFile es la ruta del documento JSON para storage_driver=file.
	DataFile string `koanf:"data_file"`

	// StorageDriver: file | memory | postgres.
	StorageDriver string `koanf:"storage_driver"`

	// DBDSN es requerido con storage_driver=postgres.
	DBDSN string `koanf:"db_dsn"`

	// ReadMode: strict (documento corrupto = error) | lenient (= colección vacía).
	ReadMode string `koanf:"read_mode"`

	// AssignIDs asigna id incremental en POST /pets.
	AssignIDs bool `koanf:"assign_ids"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	AppName   string `koanf:"app_name"`

	MetricsEnabled bool `koanf:"metrics_enabled"`
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// New devuelve los defaults.
func New() *Config {
	return &Config{
		Port:           3000,
		DataFile:       "pets.json",
		StorageDriver:  DriverFile,
		ReadMode:       ReadModeStrict,
		AssignIDs:      true,
		LogLevel:       "info",
		LogFormat:      "text",
		AppName:        "pets-service",
		MetricsEnabled: true,
		SwaggerEnabled: true,
	}
}

// Addr es la dirección para http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}

	switch c.StorageDriver {
	case DriverFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
		}
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("%w: db_dsn is required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}

	switch c.ReadMode {
	case ReadModeStrict, ReadModeLenient:
	default:
		return fmt.Errorf("%w: unknown read_mode %q", ErrInvalidConfig, c.ReadMode)
	}

	return nil
}
