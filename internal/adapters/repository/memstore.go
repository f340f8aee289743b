package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/smokeoff/internal/domain/model"
)

// MemStore is a mutex-guarded in-memory Store. Scores live for the
// process lifetime only; restarts begin with an empty table.
type MemStore struct {
	mu     sync.RWMutex
	scores map[model.Key]model.Score
}

// NewMemStore creates an empty in-memory score store.
func NewMemStore() *MemStore {
	return &MemStore{
		scores: make(map[model.Key]model.Score),
	}
}

// Record upserts one score keyed by (judge, sample, category).
func (s *MemStore) Record(_ context.Context, score model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[score.Key()] = score
	return nil
}

// List returns every stored score ordered by judge, sample, category.
func (s *MemStore) List(_ context.Context) ([]model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Score, 0, len(s.scores))
	for _, sc := range s.scores {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.JudgeName != b.JudgeName {
			return a.JudgeName < b.JudgeName
		}
		if a.SampleID != b.SampleID {
			return a.SampleID < b.SampleID
		}
		return a.CategoryID < b.CategoryID
	})
	return out, nil
}

// Count returns the number of stored scores.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores)
}

// JudgeCount returns the number of distinct judges with stored scores.
func (s *MemStore) JudgeCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	judges := make(map[string]bool)
	for key := range s.scores {
		judges[key.JudgeName] = true
	}
	return len(judges)
}

// Reset removes every stored score.
func (s *MemStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = make(map[model.Key]model.Score)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error {
	return nil
}
