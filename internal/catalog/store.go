package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"confdex/internal/dataset"
	"confdex/internal/models"
)

// Store owns the memoized dataset and its derived snapshot. The loader runs
// at most once per lifecycle: concurrent first calls collapse into a single
// load, and aggregation runs exactly once per loaded dataset so session
// paper counts can never accumulate twice. A failed load leaves the previous
// state untouched.
type Store struct {
	loader dataset.Loader

	mu      sync.Mutex
	loaded  bool
	version string
	ds      models.Dataset
	snap    *Snapshot
}

type Stats struct {
	Version  string `json:"version"`
	Papers   int    `json:"papers"`
	Authors  int    `json:"authors"`
	Sessions int    `json:"sessions"`
}

func NewStore(loader dataset.Loader) *Store {
	return &Store{loader: loader}
}

// Dataset returns the memoized raw rows, loading them on first use.
func (s *Store) Dataset(ctx context.Context) (models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return models.Dataset{}, err
	}
	return s.ds, nil
}

// Snapshot returns the derived collections for the memoized dataset.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.snap, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return Stats{}, err
	}
	return Stats{
		Version:  s.version,
		Papers:   len(s.ds.Papers),
		Authors:  len(s.ds.Authors),
		Sessions: len(s.ds.Sessions),
	}, nil
}

// Invalidate marks the cached dataset stale; the next query reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}

// Reload invalidates and loads in one step.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return s.load(ctx)
}

// load assumes mu is held.
func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	s.ds = ds
	s.snap = Aggregate(ds)
	s.version = uuid.NewString()
	s.loaded = true
	return nil
}
