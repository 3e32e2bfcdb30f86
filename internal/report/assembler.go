// Package report turns ranked comparison results into the structured records
// consumed by external renderers (text report, dashboard, JSON export). It
// contains no scoring logic.
package report

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/deepline-bio/ancestrymatch/internal/compare"
)

// Status tells a renderer whether a section carries results or an explicit
// no-data record. An empty ranked list is never emitted silently.
type Status string

const (
	StatusOK                Status = "ok"
	StatusInsufficientData  Status = "insufficient_data"
	StatusCorpusUnavailable Status = "corpus_unavailable"
)

// InputSummary describes the genotype file the analysis ran on.
type InputSummary struct {
	SourceFile    string `json:"source_file,omitempty"`
	Format        string `json:"format,omitempty"`
	TotalMarkers  int    `json:"total_markers"`
	UsableMarkers int    `json:"usable_markers"`
	MissingCalls  int    `json:"missing_calls"`
	InvalidCalls  int    `json:"invalid_calls"`
}

// MarkerBreakdown explains one marker's contribution to a population score:
// the share of reference individuals carrying the user's genotype.
type MarkerBreakdown struct {
	RsID             string  `json:"rsid"`
	Genotype         string  `json:"genotype"`
	FrequencyPercent float64 `json:"frequency_percent"`
	Weight           float64 `json:"weight"`
}

// PopulationEntry is one ranked population, display-ready.
type PopulationEntry struct {
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	Superpopulation   string            `json:"superpopulation"`
	SimilarityPercent float64           `json:"similarity_percent"`
	SharedMarkers     int               `json:"shared_markers"`
	Confidence        compare.Tier      `json:"confidence"`
	Markers           []MarkerBreakdown `json:"markers"`
}

// ContinentalEntry is the superpopulation-level aggregate.
type ContinentalEntry struct {
	Code              string  `json:"code"`
	SimilarityPercent float64 `json:"similarity_percent"`
	Populations       int     `json:"populations"`
}

// PopulationSection is the population comparison part of a report.
type PopulationSection struct {
	Status      Status             `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	Entries     []PopulationEntry  `json:"entries,omitempty"`
	Continental []ContinentalEntry `json:"continental,omitempty"`
	Excluded    int                `json:"excluded"`
}

// AncientEntry is one ranked ancient individual, display-ready. AllelesShared
// is the "X/Y identical" presentation of the weighted IBS fraction.
type AncientEntry struct {
	SampleID          string       `json:"sample_id"`
	Name              string       `json:"name"`
	Culture           string       `json:"culture"`
	CultureName       string       `json:"culture_name"`
	Period            string       `json:"period"`
	YearBCE           int          `json:"year_bce"`
	YearDisplay       string       `json:"year_display"`
	Region            string       `json:"region"`
	Citation          string       `json:"citation,omitempty"`
	SimilarityPercent float64      `json:"similarity_percent"`
	SharedMarkers     int          `json:"shared_markers"`
	AllelesShared     string       `json:"alleles_shared"`
	Confidence        compare.Tier `json:"confidence"`
}

// CultureEntry is the culture affinity aggregate.
type CultureEntry struct {
	Culture           string       `json:"culture"`
	Name              string       `json:"name"`
	SimilarityPercent float64      `json:"similarity_percent"`
	Members           int          `json:"members"`
	SharedMarkers     int          `json:"shared_markers"`
	Confidence        compare.Tier `json:"confidence"`
}

// AncientSection is the ancient matching part of a report. Timeline repeats
// the entries ordered through time, oldest first.
type AncientSection struct {
	Status   Status         `json:"status"`
	Reason   string         `json:"reason,omitempty"`
	Entries  []AncientEntry `json:"entries,omitempty"`
	Cultures []CultureEntry `json:"cultures,omitempty"`
	Timeline []AncientEntry `json:"timeline,omitempty"`
	Excluded int            `json:"excluded"`
}

// Report is the full structured analysis result.
type Report struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Input       InputSummary       `json:"input"`
	Populations *PopulationSection `json:"populations,omitempty"`
	Ancients    *AncientSection    `json:"ancients,omitempty"`
}

// Assemble builds the report from ranking outcomes. A nil ranking with an
// error becomes an explicit no-data section rather than a silent omission.
func Assemble(input InputSummary, popRank *compare.PopulationRanking, popErr error, ancRank *compare.AncientRanking, ancErr error) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Input:       input,
		Populations: assemblePopulations(popRank, popErr),
		Ancients:    assembleAncients(ancRank, ancErr),
	}
}

func assemblePopulations(rank *compare.PopulationRanking, err error) *PopulationSection {
	if err != nil {
		return &PopulationSection{Status: failureStatus(err), Reason: err.Error()}
	}
	if rank == nil || len(rank.Entries) == 0 {
		return &PopulationSection{
			Status: StatusInsufficientData,
			Reason: "no reference population shares enough markers with the input",
		}
	}

	sec := &PopulationSection{Status: StatusOK, Excluded: rank.Excluded}
	for _, e := range rank.Entries {
		entry := PopulationEntry{
			Code:              e.Code,
			Name:              e.Name,
			Superpopulation:   e.Superpopulation,
			SimilarityPercent: round1(e.SimilarityPercent),
			SharedMarkers:     e.SharedMarkers,
			Confidence:        e.Tier,
		}
		for _, m := range e.Markers {
			entry.Markers = append(entry.Markers, MarkerBreakdown{
				RsID:             m.RsID,
				Genotype:         string(m.Genotype),
				FrequencyPercent: round1(m.Frequency * 100),
				Weight:           m.Weight,
			})
		}
		// strongest evidence first
		sort.SliceStable(entry.Markers, func(i, j int) bool {
			a, b := entry.Markers[i], entry.Markers[j]
			if a.FrequencyPercent != b.FrequencyPercent {
				return a.FrequencyPercent > b.FrequencyPercent
			}
			return a.RsID < b.RsID
		})
		sec.Entries = append(sec.Entries, entry)
	}
	for _, s := range rank.Superpopulations {
		sec.Continental = append(sec.Continental, ContinentalEntry{
			Code:              s.Code,
			SimilarityPercent: round1(s.MeanSimilarityPercent),
			Populations:       s.Populations,
		})
	}
	return sec
}

func assembleAncients(rank *compare.AncientRanking, err error) *AncientSection {
	if err != nil {
		return &AncientSection{Status: failureStatus(err), Reason: err.Error()}
	}
	if rank == nil || len(rank.Entries) == 0 {
		return &AncientSection{
			Status: StatusInsufficientData,
			Reason: "no catalog individual shares enough markers with the input",
		}
	}

	sec := &AncientSection{Status: StatusOK, Excluded: rank.Excluded}
	for _, e := range rank.Entries {
		sec.Entries = append(sec.Entries, AncientEntry{
			SampleID:          e.SampleID,
			Name:              e.Name,
			Culture:           e.Culture,
			CultureName:       e.CultureName,
			Period:            e.Period,
			YearBCE:           e.YearBCE,
			YearDisplay:       formatYear(e.YearBCE),
			Region:            e.Region,
			Citation:          e.Citation,
			SimilarityPercent: round1(e.SimilarityPercent),
			SharedMarkers:     e.SharedMarkers,
			AllelesShared:     formatAlleles(e.SharedAlleles, e.MaxAlleles),
			Confidence:        e.Tier,
		})
	}
	for _, c := range rank.Cultures {
		sec.Cultures = append(sec.Cultures, CultureEntry{
			Culture:           c.Culture,
			Name:              c.Name,
			SimilarityPercent: round1(c.MeanSimilarityPercent),
			Members:           c.Members,
			SharedMarkers:     c.SharedMarkers,
			Confidence:        c.Tier,
		})
	}

	sec.Timeline = append([]AncientEntry(nil), sec.Entries...)
	sortTimeline(sec.Timeline)

	return sec
}

func failureStatus(err error) Status {
	if errors.Is(err, compare.ErrNoValidComparisons) {
		return StatusInsufficientData
	}
	return StatusCorpusUnavailable
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatAlleles renders the IBS fraction as "X/Y identical". Weighted sums can
// be fractional, so trailing zeros are trimmed via %g.
func formatAlleles(shared, max float64) string {
	return fmt.Sprintf("%g/%g identical", shared, max)
}

func formatYear(yearBCE int) string {
	switch {
	case yearBCE < 0:
		return fmt.Sprintf("%d CE", -yearBCE)
	case yearBCE == 0:
		return "unknown"
	default:
		return fmt.Sprintf("%d BCE", yearBCE)
	}
}

// sortTimeline orders entries oldest first; unknown years sink to the end.
func sortTimeline(entries []AncientEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if (a.YearBCE == 0) != (b.YearBCE == 0) {
			return b.YearBCE == 0
		}
		if a.YearBCE != b.YearBCE {
			return a.YearBCE > b.YearBCE
		}
		return a.SampleID < b.SampleID
	})
}
