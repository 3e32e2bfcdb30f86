package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// AncientIndividual represents one published ancient genome. Unlike modern
// reference populations an ancient sample gives a single observed genotype per
// marker, not a frequency distribution.
type AncientIndividual struct {
	bun.BaseModel `bun:"table:ancient_individuals,alias:ai"`

	ID             int64         `bun:"id,pk,autoincrement" json:"id"`
	SampleID       string        `bun:"sample_id,unique,notnull" json:"sample_id"`
	Name           string        `bun:"name,notnull" json:"name"`
	Culture        string        `bun:"culture,notnull" json:"culture"`
	CultureName    *string       `bun:"culture_name" json:"culture_name,omitempty"`
	Period         string        `bun:"period,notnull" json:"period"`
	YearBCE        int           `bun:"year_bce" json:"year_bce"`
	Region         string        `bun:"region,notnull" json:"region"`
	Country        *string       `bun:"country" json:"country,omitempty"`
	Site           *string       `bun:"site" json:"site,omitempty"`
	PMID           *string       `bun:"pmid" json:"pmid,omitempty"`
	Publication    *string       `bun:"publication" json:"publication,omitempty"`
	Quality        SampleQuality `bun:"quality,notnull" json:"quality"`
	PhysicalTraits StringArray   `bun:"physical_traits,type:json" json:"physical_traits,omitempty"`
	CreatedAt      time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Calls []*AncientCall `bun:"rel:has-many,join:id=individual_id" json:"calls,omitempty"`
}

// BeforeUpdate updates the timestamp on modifications.
func (a *AncientIndividual) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required fields are present.
func (a *AncientIndividual) Validate() error {
	if a.SampleID == "" {
		return errors.New("sample ID is required")
	}
	if a.Culture == "" {
		return errors.New("culture label is required")
	}
	if a.Period == "" {
		return errors.New("period is required")
	}
	if a.Quality == "" {
		return errors.New("sample quality is required")
	}
	return nil
}

// IsHighCoverage reports whether the sample quality supports detailed claims.
func (a *AncientIndividual) IsHighCoverage() bool {
	return a.Quality == QualityHigh
}

// PubmedURL builds a citation link for the sample, or "" if no PMID is known.
func (a *AncientIndividual) PubmedURL() string {
	if a.PMID == nil || *a.PMID == "" {
		return ""
	}
	return fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s", *a.PMID)
}

// AncientCall is one observed genotype of an ancient individual at a marker.
type AncientCall struct {
	bun.BaseModel `bun:"table:ancient_calls,alias:ac"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	IndividualID int64     `bun:"individual_id,notnull" json:"individual_id"`
	RsID         string    `bun:"rsid,notnull" json:"rsid"`
	Genotype     string    `bun:"genotype,notnull" json:"genotype"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Individual *AncientIndividual `bun:"rel:belongs-to,join:individual_id=id" json:"-"`
}

// Validate checks the call record.
func (c *AncientCall) Validate() error {
	if c.RsID == "" {
		return errors.New("rsID is required")
	}
	if c.Genotype == "" {
		return errors.New("genotype is required")
	}
	return nil
}
