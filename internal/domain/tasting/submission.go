package tasting

import (
	"fmt"
	"strings"

	"github.com/okian/smokeoff/internal/domain/model"
)

// ValidateSubmission checks a complete sheet: every sample x category
// cell present exactly once, every value inside the rubric range, and
// every score attributed to the submitting judge.
func (r *Rubric) ValidateSubmission(sub model.Submission) error {
	if strings.TrimSpace(sub.JudgeName) == "" {
		return ErrMissingJudge
	}

	seen := make(map[model.Key]bool, len(sub.Scores))
	for _, sc := range sub.Scores {
		if sc.JudgeName != sub.JudgeName {
			return fmt.Errorf("%w: score judge %q does not match sheet judge %q", ErrValidation, sc.JudgeName, sub.JudgeName)
		}
		if err := r.ValidateScore(sc.JudgeName, sc.SampleID, sc.CategoryID, sc.Value); err != nil {
			return err
		}
		key := sc.Key()
		if seen[key] {
			return fmt.Errorf("%w: %s/%s scored twice", ErrDuplicateCell, sc.SampleID, sc.CategoryID)
		}
		seen[key] = true
	}

	if len(seen) != r.CellCount() {
		return fmt.Errorf("%w: %d of %d cells scored", ErrIncompleteSheet, len(seen), r.CellCount())
	}
	return nil
}
