// Package repository defines the performance dataset store and errors.
package repository

import (
	"context"

	"github.com/rkuiper/encore/internal/domain/model"
)

// Store provides read access to the immutable performance dataset.
type Store interface {
	// Sample returns n performances chosen uniformly at random without
	// replacement. When n exceeds the dataset size, sampling falls back
	// to drawing with replacement.
	Sample(ctx context.Context, n int) []model.Performance

	// All returns the full dataset in load order.
	All(ctx context.Context) []model.Performance

	// Count returns the number of performances in the dataset.
	Count(ctx context.Context) int
}
