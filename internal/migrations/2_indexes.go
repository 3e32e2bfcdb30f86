package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	// Migration 2: indexes
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_pop_freq_marker ON population_frequencies(population_id, rsid, genotype)",
			"CREATE INDEX IF NOT EXISTS idx_pop_freq_rsid ON population_frequencies(rsid)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_ancient_call_marker ON ancient_calls(individual_id, rsid)",
			"CREATE INDEX IF NOT EXISTS idx_ancient_call_rsid ON ancient_calls(rsid)",
			"CREATE INDEX IF NOT EXISTS idx_ancient_culture ON ancient_individuals(culture)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_pop_freq_marker",
			"DROP INDEX IF EXISTS idx_pop_freq_rsid",
			"DROP INDEX IF EXISTS idx_ancient_call_marker",
			"DROP INDEX IF EXISTS idx_ancient_call_rsid",
			"DROP INDEX IF EXISTS idx_ancient_culture",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}
