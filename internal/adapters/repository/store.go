// Package repository defines the score store interface and errors.
package repository

import (
	"context"

	"github.com/okian/smokeoff/internal/domain/model"
)

// Store provides read/write access to the raw score set. Implementations
// hold at most one value per (judge, sample, category); recording an
// occupied cell replaces it (last write wins).
type Store interface {
	// Record upserts one score. Validation happens before the store;
	// implementations only fail on persistence problems.
	Record(ctx context.Context, score model.Score) error

	// List returns every stored score in a deterministic order:
	// judge asc, sample asc, category asc.
	List(ctx context.Context) ([]model.Score, error)

	// Count returns the number of stored scores.
	Count(ctx context.Context) int

	// JudgeCount returns the number of distinct judges with stored scores.
	JudgeCount(ctx context.Context) int

	// Reset removes every stored score.
	Reset(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
