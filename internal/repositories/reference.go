package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/deepline-bio/ancestrymatch/internal/models"
)

// ListPopulations fetches all reference populations with their frequency rows.
func ListPopulations(ctx context.Context, db *bun.DB) ([]*models.Population, error) {
	var pops []*models.Population
	err := db.NewSelect().
		Model(&pops).
		Relation("Frequencies").
		Order("code ASC").
		Scan(ctx)

	return pops, err
}

// ListAncientIndividuals fetches the ancient catalog with genotype calls.
func ListAncientIndividuals(ctx context.Context, db *bun.DB) ([]*models.AncientIndividual, error) {
	var inds []*models.AncientIndividual
	err := db.NewSelect().
		Model(&inds).
		Relation("Calls").
		Order("sample_id ASC").
		Scan(ctx)

	return inds, err
}

// ListMarkerWeights fetches all marker weight rows.
func ListMarkerWeights(ctx context.Context, db *bun.DB) ([]*models.MarkerWeight, error) {
	var weights []*models.MarkerWeight
	err := db.NewSelect().
		Model(&weights).
		Order("rsid ASC").
		Scan(ctx)

	return weights, err
}

// InsertPopulationWithFrequencies inserts a population and its frequency rows
// in a transaction.
func InsertPopulationWithFrequencies(ctx context.Context, db *bun.DB, pop *models.Population, freqs []*models.GenotypeFrequency) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(pop).Exec(ctx); err != nil {
			return err
		}

		for _, f := range freqs {
			f.PopulationID = pop.ID
		}

		if len(freqs) > 0 {
			if _, err := tx.NewInsert().Model(&freqs).Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}

// InsertAncientWithCalls inserts an ancient individual and its genotype calls
// in a transaction.
func InsertAncientWithCalls(ctx context.Context, db *bun.DB, ind *models.AncientIndividual, calls []*models.AncientCall) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(ind).Exec(ctx); err != nil {
			return err
		}

		for _, c := range calls {
			c.IndividualID = ind.ID
		}

		if len(calls) > 0 {
			if _, err := tx.NewInsert().Model(&calls).Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpsertMarkerWeights performs a batch upsert keyed by rsID.
func UpsertMarkerWeights(ctx context.Context, db *bun.DB, weights []*models.MarkerWeight) error {
	if len(weights) == 0 {
		return nil
	}
	_, err := db.NewInsert().
		Model(&weights).
		On("CONFLICT (rsid) DO UPDATE").
		Set("weight = EXCLUDED.weight").
		Set("gene_symbol = EXCLUDED.gene_symbol").
		Set("note = EXCLUDED.note").
		Exec(ctx)

	return err
}

// UpsertFrequencies replaces frequency rows for a population keyed by
// (population, marker, genotype). Used by the Ensembl fetcher to refresh data.
func UpsertFrequencies(ctx context.Context, db *bun.DB, freqs []*models.GenotypeFrequency) error {
	if len(freqs) == 0 {
		return nil
	}
	_, err := db.NewInsert().
		Model(&freqs).
		On("CONFLICT (population_id, rsid, genotype) DO UPDATE").
		Set("frequency = EXCLUDED.frequency").
		Set("allele_number = EXCLUDED.allele_number").
		Set("source = EXCLUDED.source").
		Exec(ctx)

	return err
}

// GetPopulationByCode fetches a single population by its code.
func GetPopulationByCode(ctx context.Context, db *bun.DB, code string) (*models.Population, error) {
	pop := new(models.Population)
	err := db.NewSelect().
		Model(pop).
		Where("code = ?", code).
		Relation("Frequencies").
		Scan(ctx)

	return pop, err
}
