package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReadinessInputs are the aggregates the readiness formula consumes,
// gathered in a single transaction for a consistent view.
type ReadinessInputs struct {
	OverallScore   float64
	WeakSkillCount int
	Difficulty     string
	TotalSessions  int
	HasSessions    bool
}

// GatherReadinessInputs reads the latest session's breakdown, the user's
// weak-skill count and session count inside one transaction.
func (db *DB) GatherReadinessInputs(ctx context.Context, userID uuid.UUID) (*ReadinessInputs, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	inputs := ReadinessInputs{}

	err = tx.QueryRow(ctx,
		`SELECT s.difficulty, COALESCE(b.overall_avg, s.average_score)
		 FROM sessions s
		 LEFT JOIN score_breakdowns b ON b.session_id = s.id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC LIMIT 1`,
		userID,
	).Scan(&inputs.Difficulty, &inputs.OverallScore)
	switch {
	case err == pgx.ErrNoRows:
		inputs.HasSessions = false
	case err != nil:
		return nil, fmt.Errorf("failed to read latest session: %w", err)
	default:
		inputs.HasSessions = true
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM weak_skills WHERE user_id = $1`,
		userID,
	).Scan(&inputs.WeakSkillCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count weak skills: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`,
		userID,
	).Scan(&inputs.TotalSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit readiness read: %w", err)
	}
	return &inputs, nil
}

// UpsertReadiness overwrites the user's readiness row with a fresh score
func (db *DB) UpsertReadiness(ctx context.Context, userID uuid.UUID, score float64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO readiness_index (user_id, score, computed_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET score = $2, computed_at = NOW()`,
		userID, score,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert readiness: %w", err)
	}
	return nil
}

// GetReadiness retrieves the stored readiness row, or nil when absent
func (db *DB) GetReadiness(ctx context.Context, userID uuid.UUID) (*ReadinessIndex, error) {
	var r ReadinessIndex
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, score, computed_at FROM readiness_index WHERE user_id = $1`,
		userID,
	).Scan(&r.UserID, &r.Score, &r.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get readiness: %w", err)
	}
	return &r, nil
}
