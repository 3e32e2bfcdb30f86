package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// DataSource tags reference records with their provenance.
type DataSource string

const (
	Source1000Genomes DataSource = "1000genomes"
	SourceAADR        DataSource = "aadr"
	SourceEnsembl     DataSource = "ensembl"
	SourceCurated     DataSource = "curated"
)

// SampleQuality describes sequencing quality of an ancient sample. Low
// coverage samples still participate in comparisons; the flag is carried
// through to reports so a match against a poor sample is self-explanatory.
type SampleQuality string

const (
	QualityHigh     SampleQuality = "high"
	QualityModerate SampleQuality = "moderate"
	QualityLow      SampleQuality = "low"
)

// StringArray stores a slice of strings in SQLite as JSON.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringArray")
	}

	return json.Unmarshal(bytes, s)
}
