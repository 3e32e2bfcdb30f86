package genotype

import (
	"errors"
	"fmt"
	"strings"
)

// Genotype is a normalized diploid call: two nucleotide codes in
// lexicographic order ("AG", never "GA"), or Missing for a no-call.
type Genotype string

// Missing marks a no-call. It is a distinct third state and must never be
// treated as homozygous for anything.
const Missing Genotype = ""

// ErrInvalidGenotype reports a raw call that cannot be normalized. The caller
// drops the marker and continues; a single bad call never aborts an analysis.
var ErrInvalidGenotype = errors.New("invalid genotype")

// no-call sentinels produced by consumer array exports
var noCallSentinels = map[string]bool{
	"":   true,
	"--": true,
	"00": true,
	"NN": true,
	"-":  true,
	"0":  true,
}

func validAllele(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// Normalize canonicalizes a raw genotype string. The result is
// order-independent (Normalize("AG") == Normalize("GA")) and idempotent.
// Recognized no-call sentinels map to Missing; anything that is not exactly
// two valid nucleotide codes fails with ErrInvalidGenotype.
func Normalize(raw string) (Genotype, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")

	if noCallSentinels[s] {
		return Missing, nil
	}

	if len(s) != 2 {
		return Missing, fmt.Errorf("%w: %q", ErrInvalidGenotype, raw)
	}
	a, b := s[0], s[1]
	if !validAllele(a) || !validAllele(b) {
		return Missing, fmt.Errorf("%w: %q", ErrInvalidGenotype, raw)
	}
	if a > b {
		a, b = b, a
	}
	return Genotype([]byte{a, b}), nil
}

// Alleles returns the two allele codes of a normalized genotype.
// Not meaningful for Missing.
func (g Genotype) Alleles() (byte, byte) {
	if len(g) != 2 {
		return 0, 0
	}
	return g[0], g[1]
}

// IsMissing reports whether the call is a no-call.
func (g Genotype) IsMissing() bool { return g == Missing }

// Heterozygous reports whether the two alleles differ.
func (g Genotype) Heterozygous() bool {
	return len(g) == 2 && g[0] != g[1]
}

// NormalizeAll normalizes a raw rsID -> genotype map, dropping markers that
// fail normalization or are no-calls. It returns the usable calls plus counts
// of dropped markers so the caller can surface data-quality numbers.
func NormalizeAll(raw map[string]string) (calls map[string]Genotype, missing, invalid int) {
	calls = make(map[string]Genotype, len(raw))
	for rsid, g := range raw {
		norm, err := Normalize(g)
		if err != nil {
			invalid++
			continue
		}
		if norm.IsMissing() {
			missing++
			continue
		}
		calls[rsid] = norm
	}
	return calls, missing, invalid
}
