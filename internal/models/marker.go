package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// MarkerWeight carries the informativeness weight of a marker. Ancestry
// informative markers get weights above 1.0; markers without a row default to
// 1.0 at lookup time.
type MarkerWeight struct {
	bun.BaseModel `bun:"table:marker_weights,alias:mw"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	RsID       string     `bun:"rsid,unique,notnull" json:"rsid"`
	Weight     float64    `bun:"weight,notnull" json:"weight"`
	GeneSymbol *string    `bun:"gene_symbol" json:"gene_symbol,omitempty"`
	Note       *string    `bun:"note" json:"note,omitempty"`
	Source     DataSource `bun:"source,notnull" json:"source"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Validate checks the weight record.
func (m *MarkerWeight) Validate() error {
	if m.RsID == "" {
		return errors.New("rsID is required")
	}
	if m.Weight <= 0 {
		return errors.New("weight must be positive")
	}
	return nil
}

// IsInformative reports whether the marker is weighted above neutral.
func (m *MarkerWeight) IsInformative() bool {
	return m.Weight > 1.0
}
