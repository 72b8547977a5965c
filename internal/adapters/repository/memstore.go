// Package repository defines the performance dataset store and errors.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/rkuiper/encore/internal/domain/model"
	"github.com/rkuiper/encore/pkg/metrics"
)

// bandFile mirrors the nested layout of the bundled data file:
// festivals, each with a list of years, each with a list of artists.
type bandFile struct {
	Festivals []fileFestival `json:"festivals"`
}

type fileFestival struct {
	Name  string     `json:"name"`
	Years []fileYear `json:"years"`
}

type fileYear struct {
	Year    int      `json:"year"`
	Artists []string `json:"artists"`
}

// MemStore holds the flattened dataset in memory. The performances slice
// is never mutated after Load, so concurrent reads need no locking; only
// the sampling rng is guarded.
type MemStore struct {
	performances []model.Performance
	festivals    int

	mu  sync.Mutex
	rng *rand.Rand
}

// compile-time interface check.
var _ Store = (*MemStore)(nil)

// Load reads the data file at path, validates it, and flattens it into a
// MemStore. Any structural problem fails the load; callers are expected
// to abort startup on error.
func Load(ctx context.Context, path string, opts ...Option) (*MemStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataFileMissing, path, err)
	}

	var f bandFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataFileMalformed, path, err)
	}

	s := &MemStore{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling, not crypto
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, fest := range f.Festivals {
		for _, year := range fest.Years {
			for _, artist := range year.Artists {
				p := model.Performance{
					Name:     artist,
					Festival: fest.Name,
					Year:     year.Year,
				}
				if err := p.Validate(); err != nil {
					return nil, fmt.Errorf("%w: %s: %w", ErrDataFileMalformed, path, err)
				}
				s.performances = append(s.performances, p)
			}
		}
	}
	if len(s.performances) == 0 {
		return nil, fmt.Errorf("%w: %s: no performances", ErrDataFileMalformed, path)
	}
	s.festivals = len(f.Festivals)

	metrics.UpdateDatasetSize(len(s.performances))
	metrics.UpdateFestivalCount(s.festivals)

	return s, nil
}

// Sample returns n performances chosen uniformly at random without
// replacement. n is clamped to [1, Count]; when the requested n exceeds
// the dataset size, the remainder is drawn with replacement so callers
// always get n items back.
func (s *MemStore) Sample(_ context.Context, n int) []model.Performance {
	total := len(s.performances)
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n >= total {
		out := make([]model.Performance, 0, n)
		out = append(out, s.performances...)
		for len(out) < n {
			out = append(out, s.performances[s.rng.Intn(total)])
		}
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	// Partial Fisher-Yates over an index slice: the first n positions are
	// a uniform sample without replacement.
	idx := s.rng.Perm(total)[:n]
	out := make([]model.Performance, n)
	for i, j := range idx {
		out[i] = s.performances[j]
	}
	return out
}

// All returns the full dataset in load order. Callers must not mutate
// the returned slice.
func (s *MemStore) All(_ context.Context) []model.Performance {
	return s.performances
}

// Count returns the number of performances in the dataset.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.performances)
}

// Festivals returns the number of distinct festivals in the data file.
func (s *MemStore) Festivals() int {
	return s.festivals
}
