package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/internal/repository/orm"
	"github.com/jwalitptl/nutri-api/internal/repository/postgres"
)

// Backend is an open connection to whichever storage backend is
// configured. Exactly one of ORM and SQL is set.
type Backend struct {
	ORM *orm.DB
	SQL *sqlx.DB
}

// Open connects to the configured backend
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendORM:
		db, err := orm.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{ORM: db}, nil
	case config.BackendSQL:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{SQL: db}, nil
	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Backend)
	}
}

// Table returns the backend's implementation of one table
func Table[T any](b *Backend, name string) repository.Table[T] {
	if b.ORM != nil {
		return orm.NewTable[T](b.ORM, name)
	}
	return postgres.NewTable[T](b.SQL, name)
}

// Migrate brings the schema up to date. The SQL backend always installs
// the bmi trigger; the ORM backend only when bmiTrigger is set.
func (b *Backend) Migrate(ctx context.Context, bmiTrigger bool) error {
	if b.ORM != nil {
		return orm.Migrate(b.ORM, orm.MigrateOptions{BMITrigger: bmiTrigger})
	}
	return postgres.Migrate(ctx, b.SQL)
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.ORM != nil {
		return b.ORM.Ping(ctx)
	}
	return postgres.Pinger{DB: b.SQL}.Ping(ctx)
}

func (b *Backend) Close() error {
	if b.ORM != nil {
		return b.ORM.Close()
	}
	return b.SQL.Close()
}
