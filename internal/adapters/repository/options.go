// Package repository defines the performance dataset store and errors.
package repository

import "math/rand"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithRandSeed seeds the sampling rng. Useful for reproducible tests.
func WithRandSeed(seed int64) Option {
	return func(s *MemStore) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // sampling, not crypto
	}
}
