package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RoadmapInputs are the aggregates the roadmap generator consumes,
// gathered in a single transaction.
type RoadmapInputs struct {
	WeakSkills       []string
	TechnicalAvg     float64
	CommunicationAvg float64
	LogicAvg         float64
	Difficulty       string
}

// GatherRoadmapInputs reads the user's ordered weak skills and the latest
// session's aggregates inside one transaction.
func (db *DB) GatherRoadmapInputs(ctx context.Context, userID uuid.UUID) (*RoadmapInputs, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	inputs := RoadmapInputs{Difficulty: "medium"}

	rows, err := tx.Query(ctx,
		`SELECT skill_name FROM weak_skills WHERE user_id = $1
		 ORDER BY weakness_count DESC, skill_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list weak skills: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan weak skill: %w", err)
		}
		inputs.WeakSkills = append(inputs.WeakSkills, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weak skills: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT s.difficulty, COALESCE(b.technical_avg, 0),
		        COALESCE(b.communication_avg, 0), COALESCE(b.logic_avg, 0)
		 FROM sessions s
		 LEFT JOIN score_breakdowns b ON b.session_id = s.id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC LIMIT 1`,
		userID,
	).Scan(&inputs.Difficulty, &inputs.TechnicalAvg, &inputs.CommunicationAvg, &inputs.LogicAvg)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to read latest session aggregates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit roadmap read: %w", err)
	}
	return &inputs, nil
}

// InsertImprovementPlan appends a new plan snapshot for the user.
// Plans are never mutated after creation.
func (db *DB) InsertImprovementPlan(ctx context.Context, userID uuid.UUID, plan any) (*ImprovementPlan, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	var stored ImprovementPlan
	err = db.pool.QueryRow(ctx,
		`INSERT INTO improvement_plans (user_id, plan)
		 VALUES ($1, $2)
		 RETURNING id, user_id, plan, created_at`,
		userID, planJSON,
	).Scan(&stored.ID, &stored.UserID, &stored.Plan, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert improvement plan: %w", err)
	}
	return &stored, nil
}

// LatestImprovementPlan retrieves the newest plan snapshot, or nil
func (db *DB) LatestImprovementPlan(ctx context.Context, userID uuid.UUID) (*ImprovementPlan, error) {
	var plan ImprovementPlan
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, plan, created_at
		 FROM improvement_plans WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&plan.ID, &plan.UserID, &plan.Plan, &plan.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest plan: %w", err)
	}
	return &plan, nil
}
