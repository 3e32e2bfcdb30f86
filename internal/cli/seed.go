package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deepline-bio/ancestrymatch/internal/logger"
	"github.com/deepline-bio/ancestrymatch/internal/models"
	"github.com/deepline-bio/ancestrymatch/internal/repositories"
)

var seedCmd = &cobra.Command{
	Use:   "seed <seed-file.json>",
	Short: "Load reference populations, ancient genomes and marker weights from a JSON seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedFile is the curated reference dataset layout.
type seedFile struct {
	Populations []seedPopulation `json:"populations"`
	Ancients    []seedAncient    `json:"ancient_individuals"`
	Weights     []seedWeight     `json:"marker_weights"`
}

type seedPopulation struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Superpopulation string          `json:"superpopulation"`
	SampleSize      int             `json:"sample_size"`
	Region          string          `json:"region,omitempty"`
	Frequencies     []seedFrequency `json:"frequencies"`
}

type seedFrequency struct {
	RsID      string  `json:"rsid"`
	Genotype  string  `json:"genotype"`
	Frequency float64 `json:"frequency"`
}

type seedAncient struct {
	SampleID       string            `json:"sample_id"`
	Name           string            `json:"name"`
	Culture        string            `json:"culture"`
	CultureName    string            `json:"culture_name,omitempty"`
	Period         string            `json:"period"`
	YearBCE        int               `json:"year_bce"`
	Region         string            `json:"region"`
	Country        string            `json:"country,omitempty"`
	Site           string            `json:"site,omitempty"`
	PMID           string            `json:"pmid,omitempty"`
	Publication    string            `json:"publication,omitempty"`
	Quality        string            `json:"quality"`
	PhysicalTraits []string          `json:"physical_traits,omitempty"`
	Calls          map[string]string `json:"calls"`
}

type seedWeight struct {
	RsID       string  `json:"rsid"`
	Weight     float64 `json:"weight"`
	GeneSymbol string  `json:"gene_symbol,omitempty"`
	Note       string  `json:"note,omitempty"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("cannot parse seed file %s: %w", args[0], err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	for _, sp := range seed.Populations {
		pop := &models.Population{
			Code:            sp.Code,
			Name:            sp.Name,
			Superpopulation: sp.Superpopulation,
			SampleSize:      sp.SampleSize,
			Region:          optional(sp.Region),
			Source:          models.SourceCurated,
		}
		if err := pop.Validate(); err != nil {
			return fmt.Errorf("population %s: %w", sp.Code, err)
		}

		freqs := make([]*models.GenotypeFrequency, 0, len(sp.Frequencies))
		for _, f := range sp.Frequencies {
			row := &models.GenotypeFrequency{
				RsID:      f.RsID,
				Genotype:  f.Genotype,
				Frequency: f.Frequency,
				Source:    models.SourceCurated,
			}
			if err := row.Validate(); err != nil {
				return fmt.Errorf("population %s, marker %s: %w", sp.Code, f.RsID, err)
			}
			freqs = append(freqs, row)
		}

		if err := repositories.InsertPopulationWithFrequencies(ctx, db, pop, freqs); err != nil {
			return fmt.Errorf("insert population %s: %w", sp.Code, err)
		}
		logger.Info("Seeded population", zap.String("code", sp.Code), zap.Int("frequencies", len(freqs)))
	}

	for _, sa := range seed.Ancients {
		ind := &models.AncientIndividual{
			SampleID:       sa.SampleID,
			Name:           sa.Name,
			Culture:        sa.Culture,
			CultureName:    optional(sa.CultureName),
			Period:         sa.Period,
			YearBCE:        sa.YearBCE,
			Region:         sa.Region,
			Country:        optional(sa.Country),
			Site:           optional(sa.Site),
			PMID:           optional(sa.PMID),
			Publication:    optional(sa.Publication),
			Quality:        models.SampleQuality(sa.Quality),
			PhysicalTraits: sa.PhysicalTraits,
		}
		if err := ind.Validate(); err != nil {
			return fmt.Errorf("ancient %s: %w", sa.SampleID, err)
		}

		calls := make([]*models.AncientCall, 0, len(sa.Calls))
		for rsid, g := range sa.Calls {
			calls = append(calls, &models.AncientCall{RsID: rsid, Genotype: g})
		}

		if err := repositories.InsertAncientWithCalls(ctx, db, ind, calls); err != nil {
			return fmt.Errorf("insert ancient %s: %w", sa.SampleID, err)
		}
		logger.Info("Seeded ancient individual", zap.String("sample", sa.SampleID), zap.Int("calls", len(calls)))
	}

	if len(seed.Weights) > 0 {
		weights := make([]*models.MarkerWeight, 0, len(seed.Weights))
		for _, sw := range seed.Weights {
			w := &models.MarkerWeight{
				RsID:       sw.RsID,
				Weight:     sw.Weight,
				GeneSymbol: optional(sw.GeneSymbol),
				Note:       optional(sw.Note),
				Source:     models.SourceCurated,
			}
			if err := w.Validate(); err != nil {
				return fmt.Errorf("marker weight %s: %w", sw.RsID, err)
			}
			weights = append(weights, w)
		}
		if err := repositories.UpsertMarkerWeights(ctx, db, weights); err != nil {
			return fmt.Errorf("upsert marker weights: %w", err)
		}
		logger.Info("Seeded marker weights", zap.Int("count", len(weights)))
	}

	fmt.Printf("Seeded %d populations, %d ancient individuals, %d marker weights\n",
		len(seed.Populations), len(seed.Ancients), len(seed.Weights))
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
