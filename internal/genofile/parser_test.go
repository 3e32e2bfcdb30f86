package genofile

import (
	"errors"
	"strings"
	"testing"
)

func TestParse23andMe(t *testing.T) {
	input := `# This data file generated by 23andMe
# rsid	chromosome	position	genotype
rs4477212	1	82154	AA
rs3094315	1	752566	AG
rs12124819	1	776546	--
`
	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format != Format23andMe {
		t.Fatalf("expected 23andme format, got %s", f.Format)
	}
	if f.TotalMarkers != 3 {
		t.Fatalf("expected 3 markers, got %d", f.TotalMarkers)
	}
	if f.Genotypes["rs3094315"] != "AG" {
		t.Errorf("unexpected genotype: %q", f.Genotypes["rs3094315"])
	}
	if f.Genotypes["rs12124819"] != "--" {
		t.Errorf("no-call must be preserved raw, got %q", f.Genotypes["rs12124819"])
	}
}

func TestParse23andMeHeaderRow(t *testing.T) {
	input := `rsid	chromosome	position	genotype
rs4477212	1	82154	AA
`
	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format != Format23andMe {
		t.Fatalf("expected 23andme format, got %s", f.Format)
	}
	if len(f.Genotypes) != 1 {
		t.Fatalf("header row must not become a marker: %v", f.Genotypes)
	}
}

func TestParseAncestryDNA(t *testing.T) {
	input := `#AncestryDNA raw data download
rsid	chromosome	position	allele1	allele2
rs4477212	1	82154	A	A
rs3094315	1	752566	G	A
rs12124819	1	776546	0	0
`
	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format != FormatAncestryDNA {
		t.Fatalf("expected ancestrydna format, got %s", f.Format)
	}
	if f.Genotypes["rs3094315"] != "GA" {
		t.Errorf("alleles not concatenated: %q", f.Genotypes["rs3094315"])
	}
	if f.Genotypes["rs12124819"] != "00" {
		t.Errorf("no-call alleles must be preserved raw, got %q", f.Genotypes["rs12124819"])
	}
}

func TestParseVCF(t *testing.T) {
	input := `##fileformat=VCFv4.2
##source=test
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	SAMPLE1
1	82154	rs4477212	A	G	.	PASS	.	GT	0/0
1	752566	rs3094315	A	G	.	PASS	.	GT:DP	0/1:35
1	776546	rs12124819	A	G	.	PASS	.	GT	1|1
1	800000	.	A	G	.	PASS	.	GT	0/1
1	900000	rs999	AT	G	.	PASS	.	GT	0/1
`
	f, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format != FormatVCF {
		t.Fatalf("expected vcf format, got %s", f.Format)
	}
	if f.TotalMarkers != 3 {
		t.Fatalf("expected 3 usable markers, got %d", f.TotalMarkers)
	}
	if f.Genotypes["rs4477212"] != "AA" {
		t.Errorf("0/0 should resolve to AA, got %q", f.Genotypes["rs4477212"])
	}
	if f.Genotypes["rs3094315"] != "AG" {
		t.Errorf("0/1 should resolve to AG, got %q", f.Genotypes["rs3094315"])
	}
	if f.Genotypes["rs12124819"] != "GG" {
		t.Errorf("1|1 should resolve to GG, got %q", f.Genotypes["rs12124819"])
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("# only comments\n"))
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}
