package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Schema управляет миграциями users/jobs/applications/notifications.
type Schema struct {
	provider *goose.Provider
}

// NewSchema builds a goose provider over a database/sql view of the pool.
func NewSchema(pool *pgxpool.Pool) (*Schema, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(pool), fsys)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return &Schema{provider: provider}, nil
}

// Up applies pending migrations.
func (s *Schema) Up(ctx context.Context) error {
	results, err := s.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		log.WithField("migration", r.Source.Path).Infof("applied in %s", r.Duration)
	}
	return nil
}

// Versions returns the applied version and the newest embedded one.
func (s *Schema) Versions(ctx context.Context) (current, latest int64, err error) {
	current, latest, err = s.provider.GetVersions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read schema version: %w", err)
	}
	return current, latest, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	schema, err := NewSchema(pool)
	if err != nil {
		return err
	}
	return schema.Up(ctx)
}
