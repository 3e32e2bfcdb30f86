package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deepline-bio/ancestrymatch/internal/compare"
	"github.com/deepline-bio/ancestrymatch/internal/genofile"
	"github.com/deepline-bio/ancestrymatch/internal/genotype"
	"github.com/deepline-bio/ancestrymatch/internal/logger"
	"github.com/deepline-bio/ancestrymatch/internal/refstore"
	"github.com/deepline-bio/ancestrymatch/internal/report"
)

var (
	flagAnalyzeJSON    bool
	flagAnalyzeTop     int
	flagAnalyzeMarkers bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <genotype-file>",
	Short: "Compare a genotype export against the reference corpora",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagAnalyzeJSON, "json", false, "Emit the full structured report as JSON")
	analyzeCmd.Flags().IntVar(&flagAnalyzeTop, "top", 10, "Number of entries to show per section (text output)")
	analyzeCmd.Flags().BoolVar(&flagAnalyzeMarkers, "markers", false, "Show the per-marker breakdown for the best population match")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parsed, err := genofile.ParseFile(args[0])
	if err != nil {
		return err
	}

	calls, missing, invalid := genotype.NormalizeAll(parsed.Genotypes)
	input := report.InputSummary{
		SourceFile:    args[0],
		Format:        string(parsed.Format),
		TotalMarkers:  parsed.TotalMarkers,
		UsableMarkers: len(calls),
		MissingCalls:  missing,
		InvalidCalls:  invalid,
	}
	logger.Info("Parsed genotype file",
		zap.String("file", args[0]),
		zap.String("format", string(parsed.Format)),
		zap.Int("usable", len(calls)),
		zap.Int("missing", missing),
		zap.Int("invalid", invalid))

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := refstore.Load(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("cannot load reference corpora: %w", err)
	}
	for _, w := range store.Warnings() {
		logger.Warn("Reference data", zap.String("finding", w))
	}

	ranker := compare.NewRanker(cfg.Compare)
	popRank, popErr := ranker.RankPopulations(calls, store.Populations(), store.Weight)
	ancRank, ancErr := ranker.RankAncients(calls, store.Ancients(), store.Weight)

	rep := report.Assemble(input, popRank, popErr, ancRank, ancErr)

	if flagAnalyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	renderReport(rep, flagAnalyzeTop, flagAnalyzeMarkers)
	return nil
}

func renderReport(rep *report.Report, top int, markers bool) {
	fmt.Printf("\nAnalysis %s\n", rep.RunID)
	fmt.Printf("Input: %s (%s), %d markers, %d usable (%d no-calls, %d invalid)\n",
		rep.Input.SourceFile, rep.Input.Format,
		rep.Input.TotalMarkers, rep.Input.UsableMarkers,
		rep.Input.MissingCalls, rep.Input.InvalidCalls)

	renderPopulations(rep.Populations, top, markers)
	renderAncients(rep.Ancients, top)
}

func renderPopulations(sec *report.PopulationSection, top int, markers bool) {
	fmt.Printf("\nModern populations")
	if sec.Status != report.StatusOK {
		fmt.Printf(": %s\n  %s\n", sec.Status, sec.Reason)
		return
	}
	fmt.Printf(" (%d ranked, %d excluded):\n", len(sec.Entries), sec.Excluded)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, e := range sec.Entries {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%.1f%%\t%d markers\t%s\n",
			i+1, e.Code, e.Name, e.SimilarityPercent, e.SharedMarkers, e.Confidence)
	}
	_ = w.Flush()

	if len(sec.Continental) > 0 {
		fmt.Println("\nContinental affinity:")
		cw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range sec.Continental {
			fmt.Fprintf(cw, "  %s\t%.1f%%\t%d populations\n", c.Code, c.SimilarityPercent, c.Populations)
		}
		_ = cw.Flush()
	}

	if markers && len(sec.Entries) > 0 {
		best := sec.Entries[0]
		fmt.Printf("\nMarker breakdown for %s:\n", best.Code)
		mw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, m := range best.Markers {
			fmt.Fprintf(mw, "  %s\t%s\t%.1f%% of population\tweight %.1f\n",
				m.RsID, m.Genotype, m.FrequencyPercent, m.Weight)
		}
		_ = mw.Flush()
	}
}

func renderAncients(sec *report.AncientSection, top int) {
	fmt.Printf("\nAncient individuals")
	if sec.Status != report.StatusOK {
		fmt.Printf(": %s\n  %s\n", sec.Status, sec.Reason)
		return
	}
	fmt.Printf(" (%d ranked, %d excluded):\n", len(sec.Entries), sec.Excluded)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, e := range sec.Entries {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "  %d.\t%s\t%s, %s (%s)\t%.1f%%\t%s\t%s\n",
			i+1, e.SampleID, e.CultureName, e.Region, e.YearDisplay,
			e.SimilarityPercent, e.AllelesShared, e.Confidence)
	}
	_ = w.Flush()

	if len(sec.Cultures) > 0 {
		fmt.Println("\nCulture affinity:")
		cw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range sec.Cultures {
			fmt.Fprintf(cw, "  %s\t%.1f%%\t%d individuals\t%d markers\t%s\n",
				c.Name, c.SimilarityPercent, c.Members, c.SharedMarkers, c.Confidence)
		}
		_ = cw.Flush()
	}

	if len(sec.Timeline) > 0 {
		fmt.Println("\nTimeline (oldest first):")
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, e := range sec.Timeline {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.1f%%\n",
				e.YearDisplay, e.SampleID, e.CultureName, e.SimilarityPercent)
		}
		_ = tw.Flush()
	}
}
