package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deepline-bio/ancestrymatch/internal/logger"
	"github.com/deepline-bio/ancestrymatch/internal/models"
	"github.com/deepline-bio/ancestrymatch/internal/ratelimit"
	"github.com/deepline-bio/ancestrymatch/internal/repositories"
	"github.com/deepline-bio/ancestrymatch/internal/sources/ensembl"
)

var flagFetchMarkersFile string

var fetchCmd = &cobra.Command{
	Use:   "fetch [rsid...]",
	Short: "Refresh population genotype frequencies from the Ensembl REST API",
	Long: `fetch downloads 1000 Genomes allele frequencies for the given markers
and stores the Hardy-Weinberg genotype expansion for every population
already present in the reference database. Markers come from the command
line or, with --markers-file, one rsID per line.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&flagFetchMarkersFile, "markers-file", "", "File with one rsID per line")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rsids := append([]string(nil), args...)
	if flagFetchMarkersFile != "" {
		fromFile, err := readMarkerList(flagFetchMarkersFile)
		if err != nil {
			return err
		}
		rsids = append(rsids, fromFile...)
	}
	if len(rsids) == 0 {
		return fmt.Errorf("no markers given; pass rsIDs as arguments or use --markers-file")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	pops, err := repositories.ListPopulations(ctx, db)
	if err != nil {
		return fmt.Errorf("cannot list populations: %w", err)
	}
	if len(pops) == 0 {
		return fmt.Errorf("no populations in the database; run seed first")
	}
	popIDs := make(map[string]int64, len(pops))
	for _, p := range pops {
		popIDs[p.Code] = p.ID
	}

	fetcher := ensembl.NewFetcher(ensembl.NewClient(ratelimit.New(cfg.Fetch)))
	fetched, err := fetcher.FetchFrequencies(ctx, rsids)
	if err != nil {
		return fmt.Errorf("fetch frequencies: %w", err)
	}

	var rows []*models.GenotypeFrequency
	skippedPops := make(map[string]bool)
	for _, mf := range fetched {
		for code, genotypes := range mf.ByPopulation {
			id, ok := popIDs[code]
			if !ok {
				skippedPops[code] = true
				continue
			}
			for g, freq := range genotypes {
				rows = append(rows, &models.GenotypeFrequency{
					PopulationID: id,
					RsID:         mf.RsID,
					Genotype:     g,
					Frequency:    freq,
					Source:       models.SourceEnsembl,
				})
			}
		}
	}
	for code := range skippedPops {
		logger.Debug("Skipping population not in the database", zap.String("code", code))
	}

	if err := repositories.UpsertFrequencies(ctx, db, rows); err != nil {
		return fmt.Errorf("store frequencies: %w", err)
	}

	fmt.Printf("Updated %d frequency rows across %d markers\n", len(rows), len(fetched))
	return nil
}

func readMarkerList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read marker list: %w", err)
	}
	defer f.Close()

	var rsids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rsids = append(rsids, line)
	}
	return rsids, scanner.Err()
}
