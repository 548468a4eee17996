package router

import (
	"context"
	"fmt"

	"pets-service/internal/adapters/storage/file"
	mem "pets-service/internal/adapters/storage/memory"
	pg "pets-service/internal/adapters/storage/postgres"
	"pets-service/internal/config"
	"pets-service/internal/domain/pets"
	"pets-service/internal/platform/logger"
)

// NewRepository elige el backend según cfg.StorageDriver.
// El closer devuelto libera recursos del backend (pool de Postgres).
func NewRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (pets.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return mem.NewPetRepo(), noop, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pg.NewPetsRepo(db, pg.DefaultCollection), db.Close, nil

	case config.DriverFile, "":
		mode := file.ReadStrict
		if cfg.ReadMode == config.ReadModeLenient {
			mode = file.ReadLenient
		}
		return file.NewPetRepo(cfg.DataFile, file.WithReadMode(mode), file.WithLogger(log)), noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage_driver %q", config.ErrInvalidConfig, cfg.StorageDriver)
	}
}
