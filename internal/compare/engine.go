// Package compare implements the genetic distance and ranking core: weighted
// genotype-frequency typicality against modern reference populations, weighted
// identity-by-state against ancient individuals, confidence tiering, and
// deterministic ranking across a corpus.
package compare

import (
	"fmt"
	"sort"

	"github.com/deepline-bio/ancestrymatch/internal/genotype"
	"github.com/deepline-bio/ancestrymatch/internal/refstore"
)

// WeightFunc returns the informativeness weight of a marker (1.0 if neutral).
type WeightFunc func(rsid string) float64

// NeutralWeights weights every marker equally.
func NeutralWeights(string) float64 { return 1.0 }

// IBS returns the identity-by-state score of two normalized genotypes:
// 2 if identical, 1 if they share exactly one allele, 0 otherwise.
// Both calls must be non-missing.
func IBS(a, b genotype.Genotype) int {
	if a == b {
		return 2
	}
	a1, a2 := a.Alleles()
	b1, b2 := b.Alleles()
	if a1 == b1 || a1 == b2 || a2 == b1 || a2 == b2 {
		return 1
	}
	return 0
}

// MarkerHit records one marker's contribution to a population comparison. The
// frequency is the share of the reference population carrying the user's
// exact genotype; an explicit 0 is a real signal, not missing data.
type MarkerHit struct {
	RsID      string            `json:"rsid"`
	Genotype  genotype.Genotype `json:"genotype"`
	Frequency float64           `json:"frequency"`
	Weight    float64           `json:"weight"`
}

// AncientHit records one marker's IBS contribution to an ancient comparison.
type AncientHit struct {
	RsID    string            `json:"rsid"`
	User    genotype.Genotype `json:"user"`
	Ancient genotype.Genotype `json:"ancient"`
	IBS     int               `json:"ibs"`
	Weight  float64           `json:"weight"`
}

// PopulationComparison is the outcome of comparing a user against one
// reference population.
type PopulationComparison struct {
	Population    *refstore.PopulationRef
	SharedMarkers int
	// Score is the weighted mean frequency of the user's genotypes in this
	// population: a 0..1 typicality measure.
	Score   float64
	Markers []MarkerHit
}

// AncientComparison is the outcome of comparing a user against one ancient
// individual.
type AncientComparison struct {
	Individual    *refstore.AncientRef
	SharedMarkers int
	// Score is the weighted IBS fraction SharedAlleles/MaxAlleles, 0..1.
	Score         float64
	SharedAlleles float64
	MaxAlleles    float64
	Markers       []AncientHit
}

// ComparePopulation scores the user's genotypes against one population.
// Only markers present in both the user's calls and the population's
// frequency table participate; a marker with no table entry is skipped
// entirely, while a recorded frequency of exactly 0 still contributes as a
// strong negative signal. Returns ErrInsufficientOverlap when no marker is
// usable: zero shared markers is "no data", never "zero similarity".
func ComparePopulation(user map[string]genotype.Genotype, pop *refstore.PopulationRef, weight WeightFunc) (*PopulationComparison, error) {
	if weight == nil {
		weight = NeutralWeights
	}

	var similarity, weightTotal float64
	hits := make([]MarkerHit, 0, len(user))

	for rsid, g := range user {
		if g.IsMissing() {
			continue
		}
		freqs, ok := pop.Frequencies[rsid]
		if !ok {
			continue
		}
		// genotype absent from the table is an observed frequency of 0
		freq := freqs[g]
		w := weight(rsid)

		similarity += w * freq
		weightTotal += w
		hits = append(hits, MarkerHit{RsID: rsid, Genotype: g, Frequency: freq, Weight: w})
	}

	if len(hits) == 0 {
		return nil, fmt.Errorf("population %s: %w", pop.Code, ErrInsufficientOverlap)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].RsID < hits[j].RsID })

	return &PopulationComparison{
		Population:    pop,
		SharedMarkers: len(hits),
		Score:         similarity / weightTotal,
		Markers:       hits,
	}, nil
}

// CompareAncient scores the user's genotypes against one ancient individual
// using weighted IBS. Markers missing on either side are skipped. Returns
// ErrInsufficientOverlap when no marker is shared.
func CompareAncient(user map[string]genotype.Genotype, ind *refstore.AncientRef, weight WeightFunc) (*AncientComparison, error) {
	if weight == nil {
		weight = NeutralWeights
	}

	var shared, max float64
	hits := make([]AncientHit, 0, len(ind.Calls))

	for rsid, g := range user {
		if g.IsMissing() {
			continue
		}
		ancient, ok := ind.Calls[rsid]
		if !ok || ancient.IsMissing() {
			continue
		}
		ibs := IBS(g, ancient)
		w := weight(rsid)

		shared += w * float64(ibs)
		max += w * 2
		hits = append(hits, AncientHit{RsID: rsid, User: g, Ancient: ancient, IBS: ibs, Weight: w})
	}

	if len(hits) == 0 {
		return nil, fmt.Errorf("ancient %s: %w", ind.SampleID, ErrInsufficientOverlap)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].RsID < hits[j].RsID })

	return &AncientComparison{
		Individual:    ind,
		SharedMarkers: len(hits),
		Score:         shared / max,
		SharedAlleles: shared,
		MaxAlleles:    max,
		Markers:       hits,
	}, nil
}
