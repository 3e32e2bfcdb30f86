package report

import (
	"testing"

	"github.com/deepline-bio/ancestrymatch/internal/compare"
)

func TestAssembleCarriesInput(t *testing.T) {
	input := InputSummary{
		SourceFile:    "sample.txt",
		Format:        "23andme",
		TotalMarkers:  100,
		UsableMarkers: 90,
		MissingCalls:  8,
		InvalidCalls:  2,
	}

	rep := Assemble(input, nil, compare.ErrNoValidComparisons, nil, compare.ErrNoValidComparisons)

	if rep.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if rep.GeneratedAt.IsZero() {
		t.Fatal("expected a timestamp")
	}
	if rep.Input != input {
		t.Fatalf("input summary not carried: %+v", rep.Input)
	}
}

func TestAssembleExplicitNoDataSections(t *testing.T) {
	rep := Assemble(InputSummary{}, nil, compare.ErrNoValidComparisons, nil, compare.ErrEmptyCorpus)

	if rep.Populations.Status != StatusInsufficientData {
		t.Errorf("expected insufficient_data, got %s", rep.Populations.Status)
	}
	if rep.Populations.Reason == "" {
		t.Error("expected a reason on the population section")
	}
	if rep.Ancients.Status != StatusCorpusUnavailable {
		t.Errorf("expected corpus_unavailable, got %s", rep.Ancients.Status)
	}
}

func TestAssemblePopulationSection(t *testing.T) {
	rank := &compare.PopulationRanking{
		Entries: []compare.RankedPopulation{
			{
				Code:              "GBR",
				Name:              "British",
				Superpopulation:   "EUR",
				SimilarityPercent: 97.04,
				SharedMarkers:     42,
				Tier:              compare.TierHigh,
				Markers: []compare.MarkerHit{
					{RsID: "rs1426654", Genotype: "AA", Frequency: 0.99, Weight: 2.0},
				},
			},
		},
		Superpopulations: []compare.SuperpopulationSummary{
			{Code: "EUR", MeanSimilarityPercent: 97.04, Populations: 1},
		},
		Excluded: 3,
	}

	sec := Assemble(InputSummary{}, rank, nil, nil, compare.ErrEmptyCorpus).Populations

	if sec.Status != StatusOK {
		t.Fatalf("expected ok, got %s", sec.Status)
	}
	if sec.Excluded != 3 {
		t.Errorf("expected 3 excluded, got %d", sec.Excluded)
	}
	e := sec.Entries[0]
	if e.SimilarityPercent != 97.0 {
		t.Errorf("expected rounded 97.0, got %f", e.SimilarityPercent)
	}
	if e.Markers[0].FrequencyPercent != 99.0 {
		t.Errorf("expected 99.0%%, got %f", e.Markers[0].FrequencyPercent)
	}
	if sec.Continental[0].Code != "EUR" {
		t.Errorf("unexpected continental entry: %+v", sec.Continental[0])
	}
}

func TestAssembleAncientSection(t *testing.T) {
	rank := &compare.AncientRanking{
		Entries: []compare.RankedAncient{
			{
				SampleID:          "RISE98",
				CultureName:       "Yamnaya",
				Period:            "Bronze Age",
				YearBCE:           3000,
				SimilarityPercent: 81.25,
				SharedMarkers:     32,
				SharedAlleles:     13,
				MaxAlleles:        16,
				Tier:              compare.TierHigh,
			},
			{
				SampleID:          "I0412",
				CultureName:       "Bell Beaker",
				Period:            "Bronze Age",
				YearBCE:           2200,
				SimilarityPercent: 90.0,
				SharedMarkers:     20,
				SharedAlleles:     18,
				MaxAlleles:        20,
				Tier:              compare.TierMedium,
			},
		},
		Cultures: []compare.CultureAffinity{
			{Culture: "yamnaya", Name: "Yamnaya", MeanSimilarityPercent: 81.25, Members: 1, SharedMarkers: 32, Tier: compare.TierHigh},
		},
	}

	sec := Assemble(InputSummary{}, nil, compare.ErrEmptyCorpus, rank, nil).Ancients

	if sec.Status != StatusOK {
		t.Fatalf("expected ok, got %s", sec.Status)
	}
	if sec.Entries[0].AllelesShared != "13/16 identical" {
		t.Errorf("unexpected allele fraction: %s", sec.Entries[0].AllelesShared)
	}
	if sec.Entries[0].YearDisplay != "3000 BCE" {
		t.Errorf("unexpected year display: %s", sec.Entries[0].YearDisplay)
	}

	// timeline keeps all entries but ordered oldest first
	if len(sec.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(sec.Timeline))
	}
	if sec.Timeline[0].SampleID != "RISE98" || sec.Timeline[1].SampleID != "I0412" {
		t.Errorf("timeline not oldest-first: %s, %s", sec.Timeline[0].SampleID, sec.Timeline[1].SampleID)
	}
}

func TestFormatYear(t *testing.T) {
	cases := []struct {
		yearBCE int
		want    string
	}{
		{3000, "3000 BCE"},
		{-900, "900 CE"},
		{0, "unknown"},
	}
	for _, c := range cases {
		if got := formatYear(c.yearBCE); got != c.want {
			t.Errorf("formatYear(%d) = %q, want %q", c.yearBCE, got, c.want)
		}
	}
}

func TestFormatAllelesTrimsZeros(t *testing.T) {
	if got := formatAlleles(2, 4); got != "2/4 identical" {
		t.Errorf("got %q", got)
	}
	if got := formatAlleles(2.5, 6); got != "2.5/6 identical" {
		t.Errorf("got %q", got)
	}
}
