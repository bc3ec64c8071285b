package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure drops and recreates the full schema: every table in dependency
// order, then every secondary index. A rerun is a full replace, not an
// incremental upsert.
func Ensure(ctx context.Context, pool *pgxpool.Pool) error {
	tables := Tables()

	// Drop in reverse order so sales goes before its referenced tables.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, DropTableSQL(&tables[i])); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tables[i].Name, err)
		}
	}

	for i := range tables {
		if _, err := pool.Exec(ctx, CreateTableSQL(&tables[i])); err != nil {
			return fmt.Errorf("failed to create table %s: %w", tables[i].Name, err)
		}
	}

	return EnsureIndexes(ctx, pool)
}

// EnsureIndexes creates all declared secondary indexes.
func EnsureIndexes(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range Tables() {
		for _, idx := range table.Indexes {
			if _, err := pool.Exec(ctx, CreateIndexSQL(table.Name, idx)); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
			}
		}
	}
	return nil
}
