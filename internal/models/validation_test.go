package models

import "testing"

func TestPopulationValidate(t *testing.T) {
	valid := &Population{
		Code:            "GBR",
		Name:            "British",
		Superpopulation: "EUR",
		SampleSize:      91,
		Source:          Source1000Genomes,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid population, got error: %v", err)
	}

	invalid := &Population{}
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error for invalid population")
	}
}

func TestGenotypeFrequencyValidate(t *testing.T) {
	f := &GenotypeFrequency{RsID: "rs1426654", Genotype: "AA", Frequency: 0.99}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid frequency, got error: %v", err)
	}

	f.Frequency = 1.5
	if err := f.Validate(); err == nil {
		t.Fatalf("expected error for frequency > 1")
	}

	f.Frequency = 0.5
	f.Genotype = ""
	if err := f.Validate(); err == nil {
		t.Fatalf("expected error for missing genotype")
	}
}

func TestFrequencyHelpers(t *testing.T) {
	f := &GenotypeFrequency{Frequency: 0.06}
	if !f.IsCommon() {
		t.Fatalf("expected common")
	}
	f.Frequency = 0.005
	if !f.IsRare() {
		t.Fatalf("expected rare")
	}
}

func TestAncientIndividualValidate(t *testing.T) {
	valid := &AncientIndividual{
		SampleID: "Loschbour",
		Name:     "Loschbour Man",
		Culture:  "WHG",
		Period:   "Mesolithic",
		YearBCE:  6100,
		Region:   "Western Europe",
		Quality:  QualityHigh,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid individual, got error: %v", err)
	}
	if !valid.IsHighCoverage() {
		t.Fatalf("expected high coverage")
	}

	invalid := &AncientIndividual{}
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error for invalid individual")
	}
}

func TestAncientPubmedURL(t *testing.T) {
	a := &AncientIndividual{}
	if got := a.PubmedURL(); got != "" {
		t.Fatalf("expected empty url without pmid, got %s", got)
	}
	pmid := "25230663"
	a.PMID = &pmid
	if got := a.PubmedURL(); got != "https://pubmed.ncbi.nlm.nih.gov/25230663" {
		t.Fatalf("unexpected pubmed url: %s", got)
	}
}

func TestAncientCallValidate(t *testing.T) {
	c := &AncientCall{RsID: "rs1426654", Genotype: "GG"}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid call, got error: %v", err)
	}
	c.Genotype = ""
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for missing genotype")
	}
}

func TestMarkerWeightValidate(t *testing.T) {
	w := &MarkerWeight{RsID: "rs1426654", Weight: 2.0}
	if err := w.Validate(); err != nil {
		t.Fatalf("expected valid weight, got error: %v", err)
	}
	if !w.IsInformative() {
		t.Fatalf("expected informative marker")
	}

	w.Weight = 0
	if err := w.Validate(); err == nil {
		t.Fatalf("expected error for zero weight")
	}
}
