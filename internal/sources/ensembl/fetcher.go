package ensembl

import (
	"context"
	"fmt"
	"log"
)

// MarkerFrequencies bundles the fetched genotype frequency tables for one
// marker: population code -> genotype -> expected frequency.
type MarkerFrequencies struct {
	RsID         string
	ByPopulation map[string]map[string]float64
}

// Fetcher orchestrates frequency downloads for the curated marker panel.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a new frequency fetcher.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchFrequencies downloads population genotype frequencies for each marker.
// Markers that fail to resolve are skipped with a log line; a partial result
// is still useful for seeding.
func (f *Fetcher) FetchFrequencies(ctx context.Context, rsids []string) ([]MarkerFrequencies, error) {
	result := make([]MarkerFrequencies, 0, len(rsids))

	for i, rsid := range rsids {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		v, err := f.client.Variation(ctx, rsid)
		if err != nil {
			log.Printf("Error fetching %s: %v", rsid, err)
			continue
		}

		freqs := MapToFrequencies(v)
		if freqs == nil {
			log.Printf("Skipping %s: no usable biallelic frequency data", rsid)
			continue
		}

		result = append(result, MarkerFrequencies{RsID: rsid, ByPopulation: freqs})
		log.Printf("Fetched %d/%d markers", i+1, len(rsids))
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no markers could be fetched")
	}
	return result, nil
}
