package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/deepline-bio/ancestrymatch/internal/models"
)

func init() {
	// Migration 1: create tables
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.Population)(nil),
			(*models.GenotypeFrequency)(nil),
			(*models.AncientIndividual)(nil),
			(*models.AncientCall)(nil),
			(*models.MarkerWeight)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.MarkerWeight)(nil),
			(*models.AncientCall)(nil),
			(*models.AncientIndividual)(nil),
			(*models.GenotypeFrequency)(nil),
			(*models.Population)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}
