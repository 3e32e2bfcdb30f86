package genotype

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want Genotype
	}{
		{"AG", "AG"},
		{"GA", "AG"},
		{"ag", "AG"},
		{" a g ", "AG"},
		{"TT", "TT"},
		{"CT", "CT"},
		{"TC", "CT"},
	}
	for _, c := range cases {
		got, err := Normalize(c.raw)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, err := Normalize("GA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Normalize(string(first))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("normalization not idempotent: %q != %q", first, second)
	}
}

func TestNormalizeOrderIndependent(t *testing.T) {
	a, _ := Normalize("AG")
	b, _ := Normalize("GA")
	if a != b {
		t.Errorf("Normalize(AG)=%q but Normalize(GA)=%q", a, b)
	}
}

func TestNormalizeNoCallSentinels(t *testing.T) {
	for _, raw := range []string{"", "--", "00", "NN", "-", "0", "nn"} {
		got, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", raw, err)
		}
		if !got.IsMissing() {
			t.Errorf("Normalize(%q) = %q, want Missing", raw, got)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, raw := range []string{"A", "AGT", "XY", "A-", "1G"} {
		_, err := Normalize(raw)
		if !errors.Is(err, ErrInvalidGenotype) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidGenotype", raw, err)
		}
	}
}

func TestHeterozygous(t *testing.T) {
	if het := Genotype("AG").Heterozygous(); !het {
		t.Error("expected AG to be heterozygous")
	}
	if het := Genotype("AA").Heterozygous(); het {
		t.Error("expected AA to be homozygous")
	}
	if het := Missing.Heterozygous(); het {
		t.Error("expected Missing not to be heterozygous")
	}
}

func TestNormalizeAll(t *testing.T) {
	raw := map[string]string{
		"rs1": "GA",
		"rs2": "--",
		"rs3": "XY",
		"rs4": "tt",
	}

	calls, missing, invalid := NormalizeAll(raw)

	if len(calls) != 2 {
		t.Fatalf("expected 2 usable calls, got %d", len(calls))
	}
	if calls["rs1"] != "AG" || calls["rs4"] != "TT" {
		t.Errorf("unexpected calls: %v", calls)
	}
	if missing != 1 {
		t.Errorf("expected 1 missing, got %d", missing)
	}
	if invalid != 1 {
		t.Errorf("expected 1 invalid, got %d", invalid)
	}
}
