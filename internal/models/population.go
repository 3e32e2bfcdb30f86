package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Population represents a modern reference population (1000 Genomes style).
type Population struct {
	bun.BaseModel `bun:"table:populations,alias:p"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	Code            string     `bun:"code,unique,notnull" json:"code"`
	Name            string     `bun:"name,notnull" json:"name"`
	Superpopulation string     `bun:"superpopulation,notnull" json:"superpopulation"`
	SampleSize      int        `bun:"sample_size,notnull" json:"sample_size"`
	Region          *string    `bun:"region" json:"region,omitempty"`
	Source          DataSource `bun:"source,notnull" json:"source"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Frequencies []*GenotypeFrequency `bun:"rel:has-many,join:id=population_id" json:"frequencies,omitempty"`
}

// Validate checks that required population fields are present.
func (p *Population) Validate() error {
	if p.Code == "" {
		return errors.New("population code is required")
	}
	if p.Name == "" {
		return errors.New("population name is required")
	}
	if p.Superpopulation == "" {
		return errors.New("superpopulation is required")
	}
	if p.SampleSize < 0 {
		return errors.New("sample size must not be negative")
	}
	return nil
}

// GenotypeFrequency is one observed genotype frequency at a marker in a
// population. Frequencies for all genotypes at a marker sum to ~1.
type GenotypeFrequency struct {
	bun.BaseModel `bun:"table:population_frequencies,alias:pf"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	PopulationID int64      `bun:"population_id,notnull" json:"population_id"`
	RsID         string     `bun:"rsid,notnull" json:"rsid"`
	Genotype     string     `bun:"genotype,notnull" json:"genotype"`
	Frequency    float64    `bun:"frequency,notnull" json:"frequency"`
	AlleleNumber *int       `bun:"allele_number" json:"allele_number,omitempty"`
	Source       DataSource `bun:"source,notnull" json:"source"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Population *Population `bun:"rel:belongs-to,join:population_id=id" json:"-"`
}

// Validate checks the frequency record for obvious corruption.
func (f *GenotypeFrequency) Validate() error {
	if f.RsID == "" {
		return errors.New("rsID is required")
	}
	if f.Genotype == "" {
		return errors.New("genotype is required")
	}
	if f.Frequency < 0 || f.Frequency > 1 {
		return fmt.Errorf("frequency out of range: %f", f.Frequency)
	}
	return nil
}

// IsCommon returns true if the genotype occurs in more than 5% of the population.
func (f *GenotypeFrequency) IsCommon() bool {
	return f.Frequency > 0.05
}

// IsRare returns true if the genotype occurs in less than 1% of the population.
func (f *GenotypeFrequency) IsRare() bool {
	return f.Frequency < 0.01
}
