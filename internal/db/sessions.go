package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionCreateInput holds the fields needed to open a new interview session
type SessionCreateInput struct {
	UserID        uuid.UUID
	Role          string
	Category      string
	Mode          string
	CompanyPreset string
	Difficulty    string
}

// CreateSession creates a new interview session and returns it
func (db *DB) CreateSession(ctx context.Context, input SessionCreateInput) (*Session, error) {
	if input.Difficulty == "" {
		input.Difficulty = "medium"
	}
	if input.Mode == "" {
		input.Mode = "normal"
	}

	var session Session
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, role, category, mode, company_preset, difficulty)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, role, category, mode, company_preset, difficulty,
		           average_score, created_at, updated_at`,
		input.UserID, input.Role, input.Category, input.Mode, input.CompanyPreset, input.Difficulty,
	).Scan(&session.ID, &session.UserID, &session.Role, &session.Category, &session.Mode,
		&session.CompanyPreset, &session.Difficulty, &session.AverageScore,
		&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// GetSession retrieves a session by ID, or nil if it does not exist
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, role, category, mode, company_preset, difficulty,
		        average_score, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.UserID, &session.Role, &session.Category, &session.Mode,
		&session.CompanyPreset, &session.Difficulty, &session.AverageScore,
		&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// UpdateSessionDifficulty sets the session's difficulty level. Only the
// adaptive difficulty engine should call this.
func (db *DB) UpdateSessionDifficulty(ctx context.Context, sessionID uuid.UUID, difficulty string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET difficulty = $1, updated_at = NOW() WHERE id = $2`,
		difficulty, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session difficulty: %w", err)
	}
	return nil
}

// CountSessionsByUser returns the number of sessions a user has started
func (db *DB) CountSessionsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// LatestSessionByUser returns the user's most recently created session,
// or nil if the user has none.
func (db *DB) LatestSessionByUser(ctx context.Context, userID uuid.UUID) (*Session, error) {
	var session Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, role, category, mode, company_preset, difficulty,
		        average_score, created_at, updated_at
		 FROM sessions WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&session.ID, &session.UserID, &session.Role, &session.Category, &session.Mode,
		&session.CompanyPreset, &session.Difficulty, &session.AverageScore,
		&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	return &session, nil
}
