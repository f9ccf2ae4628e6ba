package checkers

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaVersions reports the applied and the newest known migration.
type SchemaVersions interface {
	Versions(ctx context.Context) (current, latest int64, err error)
}

// PostgresChecker считает базу готовой, когда она отвечает и все миграции
// доски вакансий применены: иначе запросы к jobs/applications упадут.
type PostgresChecker struct {
	db     Pinger
	schema SchemaVersions
}

func NewPostgresChecker(db Pinger, schema SchemaVersions) *PostgresChecker {
	return &PostgresChecker{db: db, schema: schema}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.db.Ping(ctx); err != nil {
		return err
	}
	current, latest, err := c.schema.Versions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return errors.Errorf("schema at version %d, want %d", current, latest)
	}
	return nil
}
