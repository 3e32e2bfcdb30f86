package ensembl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deepline-bio/ancestrymatch/internal/ratelimit"
)

const defaultBaseURL = "https://rest.ensembl.org"

var baseURL = defaultBaseURL

// Client handles Ensembl REST API requests.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
}

// NewClient creates a new Ensembl client.
func NewClient(limiter ratelimit.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
	}
}

// Variation fetches one variant with its population allele frequencies.
// Throttled responses (429) are retried with the limiter's backoff.
func (c *Client) Variation(ctx context.Context, rsid string) (*VariationResponse, error) {
	u := fmt.Sprintf("%s/variation/human/%s?pops=1;content-type=application/json", baseURL, rsid)

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var result VariationResponse
			err := json.NewDecoder(resp.Body).Decode(&result)
			_ = resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
			return &result, nil
		case http.StatusTooManyRequests:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited by server")
			if !c.limiter.ShouldRetry(attempt) {
				return nil, lastErr
			}
			timer := time.NewTimer(c.limiter.RetryAfter(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		default:
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}
