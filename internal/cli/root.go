// Package cli wires the command line interface: analysis runs, reference
// database management and frequency refreshes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/deepline-bio/ancestrymatch/internal/config"
	"github.com/deepline-bio/ancestrymatch/internal/database"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "ancestrymatch",
	Short:        "Rank genetic similarity against modern populations and ancient genomes",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `ancestrymatch compares a consumer genotype export (23andMe, AncestryDNA
or VCF) against reference population frequency tables and a catalog of
published ancient genomes, and ranks the matches with confidence tiers.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "ancestrymatch.yaml", "Path to the YAML configuration file")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*bun.DB, error) {
	db, err := database.Open(cfg.Database.Path, cfg.Database.Debug)
	if err != nil {
		return nil, fmt.Errorf("cannot open reference database %s: %w", cfg.Database.Path, err)
	}
	return db, nil
}
