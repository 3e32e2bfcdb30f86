package compare

import (
	"errors"
	"sort"

	"github.com/deepline-bio/ancestrymatch/internal/genotype"
	"github.com/deepline-bio/ancestrymatch/internal/models"
	"github.com/deepline-bio/ancestrymatch/internal/refstore"
)

// Options configures the ranking engine.
type Options struct {
	Confidence Thresholds `yaml:"confidence" json:"confidence"`

	// MinSharedMarkers is the minimum overlap for an entity to be ranked at
	// all. Entities below it are counted as excluded, not scored as zero.
	MinSharedMarkers int `yaml:"min_shared_markers" json:"min_shared_markers"`
}

// DefaultOptions returns the standard ranking configuration.
func DefaultOptions() Options {
	return Options{Confidence: DefaultThresholds(), MinSharedMarkers: 1}
}

func applyDefaults(opts Options) Options {
	opts.Confidence = opts.Confidence.withDefaults()
	if opts.MinSharedMarkers <= 0 {
		opts.MinSharedMarkers = 1
	}
	return opts
}

// Ranker runs the distance engine across a reference corpus and produces a
// deterministic, confidence-qualified ordering.
type Ranker struct {
	opts Options
}

// NewRanker creates a Ranker, normalizing the options.
func NewRanker(opts Options) *Ranker {
	return &Ranker{opts: applyDefaults(opts)}
}

// RankedPopulation is one entry of a population ranking.
type RankedPopulation struct {
	Code              string      `json:"code"`
	Name              string      `json:"name"`
	Superpopulation   string      `json:"superpopulation"`
	SimilarityPercent float64     `json:"similarity_percent"`
	SharedMarkers     int         `json:"shared_markers"`
	Tier              Tier        `json:"confidence"`
	Markers           []MarkerHit `json:"markers"`
}

// SuperpopulationSummary aggregates ranked populations at continental level.
type SuperpopulationSummary struct {
	Code                  string  `json:"code"`
	MeanSimilarityPercent float64 `json:"mean_similarity_percent"`
	Populations           int     `json:"populations"`
}

// PopulationRanking is the complete outcome of a population comparison run.
type PopulationRanking struct {
	Entries          []RankedPopulation       `json:"entries"`
	Superpopulations []SuperpopulationSummary `json:"superpopulations"`
	Excluded         int                      `json:"excluded"`
}

// RankPopulations compares the user against every reference population and
// sorts by similarity. Ties break by shared-marker count (more evidence
// first), then by population code, so re-runs always produce the same order.
func (r *Ranker) RankPopulations(user map[string]genotype.Genotype, pops []*refstore.PopulationRef, weight WeightFunc) (*PopulationRanking, error) {
	if len(pops) == 0 {
		return nil, ErrEmptyCorpus
	}

	ranking := &PopulationRanking{}

	for _, pop := range pops {
		cmp, err := ComparePopulation(user, pop, weight)
		if err != nil {
			if errors.Is(err, ErrInsufficientOverlap) {
				ranking.Excluded++
				continue
			}
			return nil, err
		}
		if cmp.SharedMarkers < r.opts.MinSharedMarkers {
			ranking.Excluded++
			continue
		}

		ranking.Entries = append(ranking.Entries, RankedPopulation{
			Code:              pop.Code,
			Name:              pop.Name,
			Superpopulation:   pop.Superpopulation,
			SimilarityPercent: cmp.Score * 100,
			SharedMarkers:     cmp.SharedMarkers,
			Tier:              r.opts.Confidence.Classify(cmp.SharedMarkers),
			Markers:           cmp.Markers,
		})
	}

	if len(ranking.Entries) == 0 {
		return nil, ErrNoValidComparisons
	}

	sort.Slice(ranking.Entries, func(i, j int) bool {
		a, b := ranking.Entries[i], ranking.Entries[j]
		if a.SimilarityPercent != b.SimilarityPercent {
			return a.SimilarityPercent > b.SimilarityPercent
		}
		if a.SharedMarkers != b.SharedMarkers {
			return a.SharedMarkers > b.SharedMarkers
		}
		return a.Code < b.Code
	})

	ranking.Superpopulations = summarizeSuperpopulations(ranking.Entries)

	return ranking, nil
}

func summarizeSuperpopulations(entries []RankedPopulation) []SuperpopulationSummary {
	sums := make(map[string]*SuperpopulationSummary)
	for _, e := range entries {
		s := sums[e.Superpopulation]
		if s == nil {
			s = &SuperpopulationSummary{Code: e.Superpopulation}
			sums[e.Superpopulation] = s
		}
		s.MeanSimilarityPercent += e.SimilarityPercent
		s.Populations++
	}

	out := make([]SuperpopulationSummary, 0, len(sums))
	for _, s := range sums {
		s.MeanSimilarityPercent /= float64(s.Populations)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanSimilarityPercent != out[j].MeanSimilarityPercent {
			return out[i].MeanSimilarityPercent > out[j].MeanSimilarityPercent
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// RankedAncient is one entry of an ancient match ranking.
type RankedAncient struct {
	SampleID          string               `json:"sample_id"`
	Name              string               `json:"name"`
	Culture           string               `json:"culture"`
	CultureName       string               `json:"culture_name"`
	Period            string               `json:"period"`
	YearBCE           int                  `json:"year_bce"`
	Region            string               `json:"region"`
	Citation          string               `json:"citation,omitempty"`
	Quality           models.SampleQuality `json:"quality"`
	SimilarityPercent float64              `json:"similarity_percent"`
	SharedMarkers     int                  `json:"shared_markers"`
	SharedAlleles     float64              `json:"shared_alleles"`
	MaxAlleles        float64              `json:"max_alleles"`
	Tier              Tier                 `json:"confidence"`
	Markers           []AncientHit         `json:"markers"`
}

// CultureAffinity aggregates ancient matches by archaeological culture. Its
// confidence tier comes from the shared markers summed across members: two
// weak individual comparisons can add up to solid culture-level evidence.
type CultureAffinity struct {
	Culture               string  `json:"culture"`
	Name                  string  `json:"name"`
	MeanSimilarityPercent float64 `json:"mean_similarity_percent"`
	Members               int     `json:"members"`
	SharedMarkers         int     `json:"shared_markers"`
	Tier                  Tier    `json:"confidence"`
}

// AncientRanking is the complete outcome of an ancient matching run.
type AncientRanking struct {
	Entries  []RankedAncient   `json:"entries"`
	Cultures []CultureAffinity `json:"cultures"`
	Excluded int               `json:"excluded"`
}

// RankAncients compares the user against every catalog individual and sorts by
// IBS similarity with the same deterministic tie-breaking as populations.
func (r *Ranker) RankAncients(user map[string]genotype.Genotype, inds []*refstore.AncientRef, weight WeightFunc) (*AncientRanking, error) {
	if len(inds) == 0 {
		return nil, ErrEmptyCorpus
	}

	ranking := &AncientRanking{}

	for _, ind := range inds {
		cmp, err := CompareAncient(user, ind, weight)
		if err != nil {
			if errors.Is(err, ErrInsufficientOverlap) {
				ranking.Excluded++
				continue
			}
			return nil, err
		}
		if cmp.SharedMarkers < r.opts.MinSharedMarkers {
			ranking.Excluded++
			continue
		}

		ranking.Entries = append(ranking.Entries, RankedAncient{
			SampleID:          ind.SampleID,
			Name:              ind.Name,
			Culture:           ind.Culture,
			CultureName:       ind.CultureName,
			Period:            ind.Period,
			YearBCE:           ind.YearBCE,
			Region:            ind.Region,
			Citation:          ind.Citation,
			Quality:           ind.Quality,
			SimilarityPercent: cmp.Score * 100,
			SharedMarkers:     cmp.SharedMarkers,
			SharedAlleles:     cmp.SharedAlleles,
			MaxAlleles:        cmp.MaxAlleles,
			Tier:              r.opts.Confidence.Classify(cmp.SharedMarkers),
			Markers:           cmp.Markers,
		})
	}

	if len(ranking.Entries) == 0 {
		return nil, ErrNoValidComparisons
	}

	sort.Slice(ranking.Entries, func(i, j int) bool {
		a, b := ranking.Entries[i], ranking.Entries[j]
		if a.SimilarityPercent != b.SimilarityPercent {
			return a.SimilarityPercent > b.SimilarityPercent
		}
		if a.SharedMarkers != b.SharedMarkers {
			return a.SharedMarkers > b.SharedMarkers
		}
		return a.SampleID < b.SampleID
	})

	ranking.Cultures = r.summarizeCultures(ranking.Entries)

	return ranking, nil
}

func (r *Ranker) summarizeCultures(entries []RankedAncient) []CultureAffinity {
	byCulture := make(map[string]*CultureAffinity)
	for _, e := range entries {
		c := byCulture[e.Culture]
		if c == nil {
			c = &CultureAffinity{Culture: e.Culture, Name: e.CultureName}
			byCulture[e.Culture] = c
		}
		c.MeanSimilarityPercent += e.SimilarityPercent
		c.SharedMarkers += e.SharedMarkers
		c.Members++
	}

	out := make([]CultureAffinity, 0, len(byCulture))
	for _, c := range byCulture {
		c.MeanSimilarityPercent /= float64(c.Members)
		c.Tier = r.opts.Confidence.Classify(c.SharedMarkers)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanSimilarityPercent != out[j].MeanSimilarityPercent {
			return out[i].MeanSimilarityPercent > out[j].MeanSimilarityPercent
		}
		return out[i].Culture < out[j].Culture
	})
	return out
}
