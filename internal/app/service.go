// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	repository "github.com/rkuiper/encore/internal/adapters/repository"
	"github.com/rkuiper/encore/internal/domain/model"
	"github.com/rkuiper/encore/pkg/logger"
	"github.com/rkuiper/encore/pkg/metrics"
)

// Service implements the API dependencies for the festival dataset.
type Service struct {
	mu sync.RWMutex

	// Core components
	store *repository.MemStore

	// Configuration
	dataFile           string
	defaultSampleCount int
	maxSampleCount     int
	randSeed           int64
	seeded             bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFile sets the path of the performance data file.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithDefaultSampleCount sets the sample size used when none is requested.
func WithDefaultSampleCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultSampleCount = n
		}
	}
}

// WithMaxSampleCount caps the sample size clients may request.
func WithMaxSampleCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSampleCount = n
		}
	}
}

// WithRandSeed seeds the store's sampling rng. Useful for reproducible tests.
func WithRandSeed(seed int64) Option {
	return func(s *Service) {
		s.randSeed = seed
		s.seeded = true
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataFile:           "bands.json",
		defaultSampleCount: 1,
		maxSampleCount:     5,
		logger:             nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset into memory. A load failure is fatal for the
// process: callers must abort startup when Start returns an error.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading performance dataset...", logger.String("path", s.dataFile))

	var storeOpts []repository.Option
	if s.seeded {
		storeOpts = append(storeOpts, repository.WithRandSeed(s.randSeed))
	}
	store, err := repository.Load(ctx, s.dataFile, storeOpts...)
	if err != nil {
		return err
	}
	s.store = store

	s.started = true
	s.logger.Info(ctx, "festival service started",
		logger.Int("performances", store.Count(ctx)),
		logger.Int("festivals", store.Festivals()),
	)

	return nil
}

// Stop shuts down the service. The dataset needs no teardown; this only
// flips the started flag so GetStats reports accurately.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "festival service stopped")
}

// Sample returns n performances chosen uniformly at random. n is clamped
// to [1, max sample count].
func (s *Service) Sample(ctx context.Context, n int) []model.Performance {
	if n < 1 {
		n = 1
	}
	if n > s.maxSampleCount {
		n = s.maxSampleCount
	}
	return s.store.Sample(ctx, n)
}

// All returns the full dataset in load order.
func (s *Service) All(ctx context.Context) []model.Performance {
	return s.store.All(ctx)
}

// Count returns the dataset cardinality.
func (s *Service) Count(ctx context.Context) int {
	if s.store == nil {
		return 0
	}
	return s.store.Count(ctx)
}

// DefaultSampleCount returns the sample size used when none is requested.
func (s *Service) DefaultSampleCount() int {
	return s.defaultSampleCount
}

// MaxSampleCount returns the largest sample size clients may request.
func (s *Service) MaxSampleCount() int {
	return s.maxSampleCount
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":            s.started,
		"dataFile":           s.dataFile,
		"defaultSampleCount": s.defaultSampleCount,
		"maxSampleCount":     s.maxSampleCount,
	}

	if s.started {
		stats["performances"] = s.store.Count(ctx)
		stats["festivals"] = s.store.Festivals()

		metrics.UpdateDatasetSize(s.store.Count(ctx))
		metrics.UpdateFestivalCount(s.store.Festivals())
	}

	return stats
}
