package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pets-service/internal/config"

	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PORT",
	"PETS_CONFIG",
	"PETS_PORT",
	"PETS_DATA_FILE",
	"PETS_STORAGE_DRIVER",
	"PETS_DB_DSN",
	"PETS_READ_MODE",
	"PETS_ASSIGN_IDS",
	"PETS_LOG_LEVEL",
	"PETS_METRICS_ENABLED",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoader(t *testing.T) {
	defer clearConfigEnvVars()

	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it uses the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 3000)
				convey.So(cfg.Addr(), convey.ShouldEqual, ":3000")
				convey.So(cfg.DataFile, convey.ShouldEqual, "pets.json")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverFile)
				convey.So(cfg.ReadMode, convey.ShouldEqual, config.ReadModeStrict)
				convey.So(cfg.AssignIDs, convey.ShouldBeTrue)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading with prefixed env vars", func() {
			_ = os.Setenv("PETS_PORT", "8081")
			_ = os.Setenv("PETS_DATA_FILE", "/tmp/other.json")
			_ = os.Setenv("PETS_READ_MODE", "LENIENT")
			_ = os.Setenv("PETS_ASSIGN_IDS", "false")
			_ = os.Setenv("PETS_METRICS_ENABLED", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env overrides the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 8081)
				convey.So(cfg.DataFile, convey.ShouldEqual, "/tmp/other.json")
				convey.So(cfg.ReadMode, convey.ShouldEqual, config.ReadModeLenient)
				convey.So(cfg.AssignIDs, convey.ShouldBeFalse)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the bare PORT variable is set", func() {
			_ = os.Setenv("PETS_PORT", "8081")
			_ = os.Setenv("PORT", "4000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it wins over PETS_PORT", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 4000)
			})
		})

		convey.Convey("When loading from a YAML file", func() {
			path := filepath.Join(t.TempDir(), "pets.yaml")
			yamlContent := "port: 9090\ndata_file: data/pets.json\nstorage_driver: memory\nlog_level: debug\n"
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("PETS_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 9090)
				convey.So(cfg.DataFile, convey.ShouldEqual, "data/pets.json")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverMemory)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})

			convey.Convey("Then env still overrides the file", func() {
				_ = os.Setenv("PETS_PORT", "7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 7070)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("PETS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When values are invalid", func() {
			cases := []struct {
				name, key, value string
			}{
				{"port out of range", "PETS_PORT", "70000"},
				{"non numeric port", "PETS_PORT", "abc"},
				{"unknown storage driver", "PETS_STORAGE_DRIVER", "s3"},
				{"postgres without dsn", "PETS_STORAGE_DRIVER", "postgres"},
				{"unknown read mode", "PETS_READ_MODE", "yolo"},
			}
			for _, tc := range cases {
				tc := tc
				convey.Convey("Then "+tc.name+" is rejected", func() {
					_ = os.Setenv(tc.key, tc.value)

					_, err := config.Load(ctx)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			}
		})
	})
}
