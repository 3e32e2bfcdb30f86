package ensembl

import (
	"sort"
	"strings"
)

// thousandGenomesPrefix selects the population records the reference database
// cares about; Ensembl also ships gnomAD and ESP frequencies.
const thousandGenomesPrefix = "1000GENOMES:phase_3:"

// PopulationCode extracts the short population code from an Ensembl
// population name ("1000GENOMES:phase_3:GBR" -> "GBR"). The phase-3 "ALL"
// aggregate and non-1000G panels are rejected.
func PopulationCode(name string) (string, bool) {
	if !strings.HasPrefix(name, thousandGenomesPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(name, thousandGenomesPrefix)
	if code == "" || code == "ALL" {
		return "", false
	}
	return code, true
}

// RefAlt splits a biallelic mapping allele string ("A/G") into its reference
// and alternate alleles. Multi-allelic and indel strings are rejected.
func RefAlt(alleleString string) (ref, alt string, ok bool) {
	parts := strings.Split(alleleString, "/")
	if len(parts) != 2 || len(parts[0]) != 1 || len(parts[1]) != 1 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// GenotypeFrequencies expands an alternate allele frequency into expected
// genotype frequencies under Hardy-Weinberg equilibrium: p², 2pq, q².
// Genotype keys are in lexicographic allele order.
func GenotypeFrequencies(ref, alt string, altFreq float64) map[string]float64 {
	if altFreq < 0 {
		altFreq = 0
	}
	if altFreq > 1 {
		altFreq = 1
	}
	p := 1 - altFreq
	q := altFreq

	return map[string]float64{
		sortedGenotype(ref, ref): p * p,
		sortedGenotype(ref, alt): 2 * p * q,
		sortedGenotype(alt, alt): q * q,
	}
}

func sortedGenotype(a, b string) string {
	alleles := []string{a, b}
	sort.Strings(alleles)
	return alleles[0] + alleles[1]
}

// MapToFrequencies converts a variation response into per-population genotype
// frequency tables keyed by population code. Returns nil when the variant is
// not a simple biallelic SNV.
func MapToFrequencies(v *VariationResponse) map[string]map[string]float64 {
	var ref, alt string
	for _, m := range v.Mappings {
		if r, a, ok := RefAlt(m.AlleleString); ok {
			ref, alt = r, a
			break
		}
	}
	if ref == "" {
		return nil
	}

	out := make(map[string]map[string]float64)
	for _, pop := range v.Populations {
		code, ok := PopulationCode(pop.Population)
		if !ok {
			continue
		}
		// only the alternate allele row is needed; the reference row is its
		// complement and some records carry both
		if pop.Allele != alt {
			continue
		}
		out[code] = GenotypeFrequencies(ref, alt, pop.Frequency)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
