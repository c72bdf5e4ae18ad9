package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
)

// Storages groups the repositories of one backend.
type Storages struct {
	SnapshotRepository SnapshotRepository
	VariantRepository  VariantRepository

	db *DB
}

// NewStorages connects to the backend selected by cfg.DB.Driver, applies
// migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Info().Str("func", "NewStorages").Msg("using in-memory storage")
		return NewMemoryStorages(), nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		SnapshotRepository: NewSnapshotRepository(db, log),
		VariantRepository:  NewVariantRepository(db, log),
		db:                 db,
	}, nil
}

// NewMemoryStorages returns storages backed by process memory.
func NewMemoryStorages() *Storages {
	return &Storages{
		SnapshotRepository: NewMemorySnapshotRepository(),
		VariantRepository:  NewMemoryVariantRepository(),
	}
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
