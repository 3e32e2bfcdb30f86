package ensembl

// VariationResponse is the Ensembl REST /variation/human/{rsid} payload,
// trimmed to the fields the fetcher consumes.
type VariationResponse struct {
	Name        string         `json:"name"`
	MinorAllele string         `json:"minor_allele"`
	Ambiguity   string         `json:"ambiguity"`
	Mappings    []Mapping      `json:"mappings"`
	Populations []PopulationAF `json:"populations"`
}

// Mapping carries the genomic placement and allele string ("A/G").
type Mapping struct {
	AlleleString    string `json:"allele_string"`
	SeqRegionName   string `json:"seq_region_name"`
	Start           int64  `json:"start"`
	AssemblyName    string `json:"assembly_name"`
	Strand          int    `json:"strand"`
	AncestralAllele string `json:"ancestral_allele"`
}

// PopulationAF is one population allele frequency record. Population names
// look like "1000GENOMES:phase_3:GBR".
type PopulationAF struct {
	Population  string  `json:"population"`
	Allele      string  `json:"allele"`
	Frequency   float64 `json:"frequency"`
	AlleleCount int     `json:"allele_count"`
}
