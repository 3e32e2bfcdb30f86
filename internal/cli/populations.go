package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deepline-bio/ancestrymatch/internal/repositories"
)

var populationsCmd = &cobra.Command{
	Use:   "populations",
	Short: "List the reference populations in the database",
	RunE:  runPopulations,
}

func init() {
	rootCmd.AddCommand(populationsCmd)
}

func runPopulations(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pops, err := repositories.ListPopulations(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("cannot list populations: %w", err)
	}
	if len(pops) == 0 {
		fmt.Println("No populations in the database. Run seed first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tSUPERPOP\tSAMPLES\tMARKERS\tSOURCE")
	for _, p := range pops {
		markers := make(map[string]bool)
		for _, f := range p.Frequencies {
			markers[f.RsID] = true
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			p.Code, p.Name, p.Superpopulation, p.SampleSize, len(markers), p.Source)
	}
	return w.Flush()
}
