// Package store provides ReportStore backends: an in-memory slice store, a
// PostgreSQL store, and a Redis read-through cache decorator.
package store

import (
	"context"
	"sync"

	"lostfound/internal/registry"
	dErrors "lostfound/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across backends.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "report not found")

// MemoryStore keeps reports in an append-only slice. Ids are dense from 1, so
// index i holds report i+1. It favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []registry.Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, report registry.Report) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = int64(len(s.reports)) + 1
	s.reports = append(s.reports, report)
	return report.ID, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (registry.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > int64(len(s.reports)) {
		return registry.Report{}, ErrNotFound
	}
	return s.reports[id-1], nil
}

func (s *MemoryStore) List(_ context.Context) ([]registry.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]registry.Report{}, s.reports...), nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.reports)), nil
}

func (s *MemoryStore) SetMatched(_ context.Context, lostID, foundID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIDs(lostID, foundID); err != nil {
		return err
	}
	s.reports[lostID-1].Status = registry.StatusMatched
	s.reports[lostID-1].MatchedWith = foundID
	s.reports[foundID-1].Status = registry.StatusMatched
	s.reports[foundID-1].MatchedWith = lostID
	return nil
}

func (s *MemoryStore) SetReturned(_ context.Context, lostID, foundID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIDs(lostID, foundID); err != nil {
		return err
	}
	s.reports[lostID-1].Status = registry.StatusClaimed
	s.reports[foundID-1].Status = registry.StatusClosed
	return nil
}

// checkIDs assumes the caller holds mu.
func (s *MemoryStore) checkIDs(ids ...int64) error {
	for _, id := range ids {
		if id < 1 || id > int64(len(s.reports)) {
			return ErrNotFound
		}
	}
	return nil
}
