package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deepline-bio/ancestrymatch/internal/repositories"
)

var flagAncientsCulture string

var ancientsCmd = &cobra.Command{
	Use:   "ancients",
	Short: "List the ancient individuals in the catalog",
	RunE:  runAncients,
}

func init() {
	ancientsCmd.Flags().StringVar(&flagAncientsCulture, "culture", "", "Only show individuals of this culture")
	rootCmd.AddCommand(ancientsCmd)
}

func runAncients(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	inds, err := repositories.ListAncientIndividuals(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("cannot list ancient individuals: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLE\tNAME\tCULTURE\tPERIOD\tREGION\tQUALITY\tCALLS")
	shown := 0
	for _, a := range inds {
		if flagAncientsCulture != "" && a.Culture != flagAncientsCulture {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			a.SampleID, a.Name, a.Culture, a.Period, a.Region, a.Quality, len(a.Calls))
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if shown == 0 {
		fmt.Println("No matching individuals in the catalog.")
	}
	return nil
}
