// Package refstore holds the immutable reference corpora: modern population
// genotype frequencies, the ancient individual catalog and per-marker weights.
// A Store is built once (from the reference database or from in-memory models
// in tests) and is read-only afterwards, so it can be shared freely across
// analyses.
package refstore

import (
	"fmt"
	"math"
	"sort"

	"github.com/deepline-bio/ancestrymatch/internal/genotype"
	"github.com/deepline-bio/ancestrymatch/internal/models"
)

// freqSumTolerance is how far the genotype frequencies at one marker may
// drift from 1.0 before the marker is flagged as malformed.
const freqSumTolerance = 0.01

// PopulationRef is the in-memory view of one reference population.
type PopulationRef struct {
	Code            string
	Name            string
	Superpopulation string
	SampleSize      int

	// Frequencies maps rsID -> normalized genotype -> observed frequency.
	// A marker missing from the map does not participate in comparisons
	// against this population.
	Frequencies map[string]map[genotype.Genotype]float64
}

// AncientRef is the in-memory view of one ancient individual.
type AncientRef struct {
	SampleID    string
	Name        string
	Culture     string
	CultureName string
	Period      string
	YearBCE     int
	Region      string
	Citation    string
	Quality     models.SampleQuality

	// Calls maps rsID -> the single observed genotype.
	Calls map[string]genotype.Genotype
}

// Store is the read-only reference dataset for one process.
type Store struct {
	populations []*PopulationRef
	ancients    []*AncientRef
	weights     map[string]float64
	warnings    []string
}

// New builds a Store from model rows. Genotypes are normalized on the way in;
// rows that fail normalization are dropped with a warning rather than
// aborting the load. Markers whose population frequencies do not sum to
// 1 ± 0.01 are flagged as malformed but kept.
func New(pops []*models.Population, ancients []*models.AncientIndividual, weights []*models.MarkerWeight) *Store {
	s := &Store{
		weights: make(map[string]float64, len(weights)),
	}

	for _, p := range pops {
		ref := &PopulationRef{
			Code:            p.Code,
			Name:            p.Name,
			Superpopulation: p.Superpopulation,
			SampleSize:      p.SampleSize,
			Frequencies:     make(map[string]map[genotype.Genotype]float64),
		}
		for _, f := range p.Frequencies {
			g, err := genotype.Normalize(f.Genotype)
			if err != nil || g.IsMissing() {
				s.warnf("population %s: dropping unusable genotype %q at %s", p.Code, f.Genotype, f.RsID)
				continue
			}
			m := ref.Frequencies[f.RsID]
			if m == nil {
				m = make(map[genotype.Genotype]float64)
				ref.Frequencies[f.RsID] = m
			}
			m[g] = f.Frequency
		}
		for rsid, m := range ref.Frequencies {
			sum := 0.0
			for _, freq := range m {
				sum += freq
			}
			if math.Abs(sum-1.0) > freqSumTolerance {
				s.warnf("population %s: frequencies at %s sum to %.3f", p.Code, rsid, sum)
			}
		}
		s.populations = append(s.populations, ref)
	}
	sort.Slice(s.populations, func(i, j int) bool {
		return s.populations[i].Code < s.populations[j].Code
	})

	for _, a := range ancients {
		ref := &AncientRef{
			SampleID: a.SampleID,
			Name:     a.Name,
			Culture:  a.Culture,
			Period:   a.Period,
			YearBCE:  a.YearBCE,
			Region:   a.Region,
			Quality:  a.Quality,
			Calls:    make(map[string]genotype.Genotype, len(a.Calls)),
		}
		if a.CultureName != nil {
			ref.CultureName = *a.CultureName
		} else {
			ref.CultureName = a.Culture
		}
		ref.Citation = a.PubmedURL()
		for _, c := range a.Calls {
			g, err := genotype.Normalize(c.Genotype)
			if err != nil {
				s.warnf("ancient %s: dropping unusable genotype %q at %s", a.SampleID, c.Genotype, c.RsID)
				continue
			}
			if g.IsMissing() {
				// ancient no-calls are common and not worth a warning
				continue
			}
			ref.Calls[c.RsID] = g
		}
		s.ancients = append(s.ancients, ref)
	}
	sort.Slice(s.ancients, func(i, j int) bool {
		return s.ancients[i].SampleID < s.ancients[j].SampleID
	})

	for _, w := range weights {
		if w.Weight <= 0 {
			s.warnf("marker %s: ignoring non-positive weight %.2f", w.RsID, w.Weight)
			continue
		}
		s.weights[w.RsID] = w.Weight
	}

	return s
}

// Populations returns the reference populations ordered by code.
func (s *Store) Populations() []*PopulationRef { return s.populations }

// Ancients returns the ancient catalog ordered by sample ID.
func (s *Store) Ancients() []*AncientRef { return s.ancients }

// Weight returns the informativeness weight of a marker, defaulting to 1.0.
func (s *Store) Weight(rsid string) float64 {
	if w, ok := s.weights[rsid]; ok {
		return w
	}
	return 1.0
}

// Warnings returns load-time data quality findings.
func (s *Store) Warnings() []string { return s.warnings }

func (s *Store) warnf(format string, args ...interface{}) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}
