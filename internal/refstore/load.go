package refstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/deepline-bio/ancestrymatch/internal/repositories"
)

// Load builds a Store from the reference database.
func Load(ctx context.Context, db *bun.DB) (*Store, error) {
	pops, err := repositories.ListPopulations(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load populations: %w", err)
	}

	ancients, err := repositories.ListAncientIndividuals(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load ancient individuals: %w", err)
	}

	weights, err := repositories.ListMarkerWeights(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load marker weights: %w", err)
	}

	return New(pops, ancients, weights), nil
}
