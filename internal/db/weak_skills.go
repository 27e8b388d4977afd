package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertWeakSkills increments the weakness counter for each topic in one
// transaction. Topics must already be normalized and deduplicated by the
// caller; each row is created with count 1 on first occurrence. On any
// failure the whole batch rolls back.
func (db *DB) UpsertWeakSkills(ctx context.Context, userID uuid.UUID, topics []string) error {
	if len(topics) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	for _, topic := range topics {
		_, err = tx.Exec(ctx,
			`INSERT INTO weak_skills (user_id, skill_name, weakness_count, last_occurred_at)
			 VALUES ($1, $2, 1, NOW())
			 ON CONFLICT (user_id, skill_name) DO UPDATE SET
			     weakness_count = weak_skills.weakness_count + 1,
			     last_occurred_at = NOW()`,
			userID, topic,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert weak skill %q: %w", topic, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit weak skills: %w", err)
	}
	return nil
}

// ListWeakSkills retrieves all weak-skill rows for a user, most frequent first
func (db *DB) ListWeakSkills(ctx context.Context, userID uuid.UUID) ([]WeakSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, skill_name, weakness_count, last_occurred_at
		 FROM weak_skills WHERE user_id = $1
		 ORDER BY weakness_count DESC, skill_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list weak skills: %w", err)
	}
	defer rows.Close()

	var skills []WeakSkill
	for rows.Next() {
		var s WeakSkill
		if err := rows.Scan(&s.UserID, &s.SkillName, &s.WeaknessCount, &s.LastOccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan weak skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, nil
}

// TopWeakSkillNames retrieves the n most frequent weak-skill names for a user
func (db *DB) TopWeakSkillNames(ctx context.Context, userID uuid.UUID, n int) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_name FROM weak_skills WHERE user_id = $1
		 ORDER BY weakness_count DESC, skill_name LIMIT $2`,
		userID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top weak skills: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan weak skill name: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}

// CountWeakSkills returns the number of distinct weak skills tracked for a user
func (db *DB) CountWeakSkills(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM weak_skills WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count weak skills: %w", err)
	}
	return count, nil
}
