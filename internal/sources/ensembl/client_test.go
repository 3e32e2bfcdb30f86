package ensembl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deepline-bio/ancestrymatch/internal/ratelimit"
)

// mockLimiter is a no-op limiter for tests.
type mockLimiter struct{ maxRetries int }

func (mockLimiter) Wait(_ context.Context) error   { return nil }
func (mockLimiter) Allow() bool                    { return true }
func (mockLimiter) RetryAfter(int) time.Duration   { return 0 }
func (m mockLimiter) ShouldRetry(attempt int) bool { return attempt <= m.maxRetries }
func (mockLimiter) Reset()                         {}

const variationJSON = `{
  "name": "rs1426654",
  "mappings": [
    {"allele_string": "A/G", "seq_region_name": "15", "start": 48426484, "assembly_name": "GRCh38", "strand": 1}
  ],
  "populations": [
    {"population": "1000GENOMES:phase_3:GBR", "allele": "G", "frequency": 0.01, "allele_count": 2},
    {"population": "1000GENOMES:phase_3:CHB", "allele": "G", "frequency": 0.93, "allele_count": 192}
  ]
}`

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	origBase := baseURL
	baseURL = ts.URL
	t.Cleanup(func() { baseURL = origBase })

	return ts
}

func TestClientVariation(t *testing.T) {
	ts := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/variation/human/rs1426654") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(variationJSON))
	})
	client := &Client{httpClient: ts.Client(), limiter: mockLimiter{}}

	v, err := client.Variation(context.Background(), "rs1426654")
	if err != nil {
		t.Fatalf("variation error: %v", err)
	}
	if v.Name != "rs1426654" {
		t.Fatalf("unexpected name: %s", v.Name)
	}
	if len(v.Mappings) != 1 || v.Mappings[0].AlleleString != "A/G" {
		t.Fatalf("unexpected mappings: %+v", v.Mappings)
	}
	if len(v.Populations) != 2 || v.Populations[0].Population != "1000GENOMES:phase_3:GBR" {
		t.Fatalf("unexpected populations: %+v", v.Populations)
	}
}

func TestClientVariationRetriesThrottle(t *testing.T) {
	hits := 0
	ts := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(variationJSON))
	})
	client := &Client{httpClient: ts.Client(), limiter: mockLimiter{maxRetries: 3}}

	v, err := client.Variation(context.Background(), "rs1426654")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if v.Name != "rs1426654" {
		t.Fatalf("unexpected name: %s", v.Name)
	}
	if hits != 2 {
		t.Fatalf("expected 2 requests, got %d", hits)
	}
}

func TestClientVariationStopsAtConfiguredRetries(t *testing.T) {
	hits := 0
	ts := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSec: 1000,
		Burst:          100,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	})
	client := &Client{httpClient: ts.Client(), limiter: limiter}

	_, err := client.Variation(context.Background(), "rs1426654")
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	// initial request plus exactly one configured retry
	if hits != 2 {
		t.Fatalf("expected 2 requests with MaxRetries=1, got %d", hits)
	}
}

func TestClientVariationErrorStatus(t *testing.T) {
	ts := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"no variation with that name"}`))
	})
	client := &Client{httpClient: ts.Client(), limiter: mockLimiter{}}

	_, err := client.Variation(context.Background(), "rs_bogus")
	if err == nil {
		t.Fatalf("expected error for status 400")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected the status in the error, got %v", err)
	}
}

func TestFetcherPartialResults(t *testing.T) {
	ts := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/variation/human/rs1426654") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(variationJSON))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})
	fetcher := NewFetcher(&Client{httpClient: ts.Client(), limiter: mockLimiter{}})

	got, err := fetcher.FetchFrequencies(context.Background(), []string{"rs1426654", "rs_bogus"})
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(got) != 1 || got[0].RsID != "rs1426654" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if got[0].ByPopulation["GBR"] == nil || got[0].ByPopulation["CHB"] == nil {
		t.Fatalf("expected both 1000G populations, got %v", got[0].ByPopulation)
	}
}

func TestFetcherAllMarkersFail(t *testing.T) {
	ts := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	fetcher := NewFetcher(&Client{httpClient: ts.Client(), limiter: mockLimiter{}})

	if _, err := fetcher.FetchFrequencies(context.Background(), []string{"rs1", "rs2"}); err == nil {
		t.Fatalf("expected error when no marker resolves")
	}
}
