package readiness

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/db"
)

// Engine computes and stores readiness scores from persisted history
type Engine struct {
	store *db.DB
}

// NewEngine creates a readiness engine
func NewEngine(store *db.DB) *Engine {
	return &Engine{store: store}
}

// UpdateReadinessIndex recomputes the user's readiness from their latest
// session and overwrites the stored index. A user with no sessions stores a
// score of 0; that is a valid state, not an error.
func (e *Engine) UpdateReadinessIndex(ctx context.Context, userID uuid.UUID) (float64, error) {
	inputs, err := e.store.GatherReadinessInputs(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to gather readiness inputs: %w", err)
	}

	score := 0.0
	if inputs.HasSessions {
		score = Calculate(Params{
			OverallScore:   inputs.OverallScore,
			WeakSkillCount: inputs.WeakSkillCount,
			Difficulty:     inputs.Difficulty,
			TotalSessions:  inputs.TotalSessions,
		})
	}

	if err := e.store.UpsertReadiness(ctx, userID, score); err != nil {
		return 0, fmt.Errorf("failed to store readiness index: %w", err)
	}
	return score, nil
}

// GetReadinessScore reads the stored readiness index. A user without a
// stored row reads as 0.
func (e *Engine) GetReadinessScore(ctx context.Context, userID uuid.UUID) (float64, error) {
	index, err := e.store.GetReadiness(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read readiness index: %w", err)
	}
	if index == nil {
		return 0, nil
	}
	return index.Score, nil
}
