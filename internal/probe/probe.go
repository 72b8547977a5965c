// Package probe implements a self-check client that verifies the
// observable contract of a running encore instance.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rkuiper/encore/internal/domain/model"
)

// Config controls a probe run.
type Config struct {
	BaseURL  string
	MaxCount int
	Timeout  time.Duration
	Verbose  bool
}

// Result aggregates the outcome of all checks.
type Result struct {
	Checks  int
	Failed  int
	Reports []string
}

// Failedf records a failed check.
func (r *Result) Failedf(format string, args ...any) {
	r.Checks++
	r.Failed++
	r.Reports = append(r.Reports, "FAIL "+fmt.Sprintf(format, args...))
}

// Passedf records a passed check.
func (r *Result) Passedf(format string, args ...any) {
	r.Checks++
	r.Reports = append(r.Reports, "ok   "+fmt.Sprintf(format, args...))
}

// Run executes every check against the configured instance.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	res := &Result{}

	all, err := fetchAll(ctx, client, cfg.BaseURL, res)
	if err != nil {
		return nil, err
	}

	checkShapes(all, res)
	checkOrderStability(ctx, client, cfg.BaseURL, all, res)
	checkSampleCounts(ctx, client, cfg, res)
	checkCountFallbacks(ctx, client, cfg, res)

	return res, nil
}

// fetchAll downloads the full dataset and verifies the attachment header.
func fetchAll(ctx context.Context, client *http.Client, baseURL string, res *Result) ([]model.Performance, error) {
	resp, err := get(ctx, client, baseURL+"/api/all-bands")
	if err != nil {
		return nil, fmt.Errorf("fetch all-bands: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read all-bands body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("all-bands returned status %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd == "" {
		res.Failedf("all-bands missing Content-Disposition header")
	} else {
		res.Passedf("all-bands served as attachment (%s)", cd)
	}

	var all []model.Performance
	if err := json.Unmarshal(body, &all); err != nil {
		return nil, fmt.Errorf("decode all-bands body: %w", err)
	}
	if len(all) == 0 {
		res.Failedf("all-bands returned an empty dataset")
	} else {
		res.Passedf("all-bands returned %d performances", len(all))
	}
	return all, nil
}

// checkShapes verifies every record's festival and year bounds.
func checkShapes(all []model.Performance, res *Result) {
	bad := 0
	for _, p := range all {
		if p.Validate() != nil {
			bad++
		}
	}
	if bad > 0 {
		res.Failedf("%d of %d performances fail validation", bad, len(all))
		return
	}
	res.Passedf("all %d performances are well-formed", len(all))
}

// checkOrderStability re-downloads the dataset and compares order.
func checkOrderStability(ctx context.Context, client *http.Client, baseURL string, first []model.Performance, res *Result) {
	resp, err := get(ctx, client, baseURL+"/api/all-bands")
	if err != nil {
		res.Failedf("second all-bands fetch: %v", err)
		return
	}
	body, err := readBody(resp)
	if err != nil {
		res.Failedf("second all-bands read: %v", err)
		return
	}
	var second []model.Performance
	if err := json.Unmarshal(body, &second); err != nil {
		res.Failedf("second all-bands decode: %v", err)
		return
	}
	if len(second) != len(first) {
		res.Failedf("all-bands cardinality changed between calls: %d then %d", len(first), len(second))
		return
	}
	for i := range first {
		if first[i] != second[i] {
			res.Failedf("all-bands order changed at index %d", i)
			return
		}
	}
	res.Passedf("all-bands order is stable across calls")
}

// checkSampleCounts verifies that every valid count yields exactly that
// many items.
func checkSampleCounts(ctx context.Context, client *http.Client, cfg *Config, res *Result) {
	for count := 1; count <= cfg.MaxCount; count++ {
		sample, err := fetchSample(ctx, client, fmt.Sprintf("%s/api/random-bands?count=%d", cfg.BaseURL, count))
		if err != nil {
			res.Failedf("random-bands count=%d: %v", count, err)
			continue
		}
		if len(sample) != count {
			res.Failedf("random-bands count=%d returned %d items", count, len(sample))
			continue
		}
		res.Passedf("random-bands count=%d returned exactly %d items", count, count)
	}
}

// checkCountFallbacks verifies clamping and the silent default for
// malformed counts.
func checkCountFallbacks(ctx context.Context, client *http.Client, cfg *Config, res *Result) {
	cases := []string{"count=0", "count=-3", "count=99", "count=abc", ""}
	for _, q := range cases {
		url := cfg.BaseURL + "/api/random-bands"
		if q != "" {
			url += "?" + q
		}
		sample, err := fetchSample(ctx, client, url)
		if err != nil {
			res.Failedf("random-bands %q: %v", q, err)
			continue
		}
		if len(sample) < 1 || len(sample) > cfg.MaxCount {
			res.Failedf("random-bands %q returned %d items, want 1..%d", q, len(sample), cfg.MaxCount)
			continue
		}
		res.Passedf("random-bands %q clamped to %d items", q, len(sample))
	}
}

func fetchSample(ctx context.Context, client *http.Client, url string) ([]model.Performance, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	var sample []model.Performance
	if err := json.Unmarshal(body, &sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return client.Do(req)
}

// readBody reads and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
