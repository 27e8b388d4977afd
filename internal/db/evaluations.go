package db

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EvaluationInput is one scored answer ready to be persisted
type EvaluationInput struct {
	SessionID          uuid.UUID
	QuestionID         uuid.UUID // uuid.Nil means create a new question row
	QuestionText       string
	QuestionDifficulty string
	AnswerText         string
	TechnicalScore     int
	CommunicationScore int
	ConfidenceScore    int
	LogicScore         int
	DepthScore         int
	Feedback           string
	IdealAnswer        string
	ImprovementTip     string
	LLMOutputValid     bool
}

// RecordedEvaluation is the committed outcome of RecordEvaluation
type RecordedEvaluation struct {
	ResponseID uuid.UUID
	QuestionID uuid.UUID
	Breakdown  ScoreBreakdown
}

// RecordEvaluation persists one evaluation atomically: the question (created
// when no ID is supplied), the immutable response row, the score breakdown
// recomputed from every response in the session, and the session's running
// average. Either all of them commit or none do.
func (db *DB) RecordEvaluation(ctx context.Context, input EvaluationInput) (*RecordedEvaluation, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	questionID := input.QuestionID
	if questionID == uuid.Nil {
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (session_id, text, difficulty)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			input.SessionID, input.QuestionText, input.QuestionDifficulty,
		).Scan(&questionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create question: %w", err)
		}
	}

	var responseID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO responses (question_id, session_id, answer_text,
		        technical_score, communication_score, confidence_score, logic_score, depth_score,
		        feedback, ideal_answer, improvement_tip, llm_output_valid)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		questionID, input.SessionID, input.AnswerText,
		input.TechnicalScore, input.CommunicationScore, input.ConfidenceScore,
		input.LogicScore, input.DepthScore,
		input.Feedback, input.IdealAnswer, input.ImprovementTip, input.LLMOutputValid,
	).Scan(&responseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	breakdown, err := recomputeBreakdown(ctx, tx, input.SessionID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE sessions SET average_score = $1, updated_at = NOW() WHERE id = $2`,
		breakdown.OverallAvg, input.SessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update session average: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit evaluation: %w", err)
	}

	return &RecordedEvaluation{
		ResponseID: responseID,
		QuestionID: questionID,
		Breakdown:  *breakdown,
	}, nil
}

// recomputeBreakdown derives the session aggregate from all responses
// currently in the session and upserts it. Full recompute rather than an
// incremental patch keeps the row idempotent under replays and partial
// failures.
func recomputeBreakdown(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID) (*ScoreBreakdown, error) {
	breakdown := ScoreBreakdown{SessionID: sessionID}
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(AVG(technical_score), 0),
		        COALESCE(AVG(communication_score), 0),
		        COALESCE(AVG(confidence_score), 0),
		        COALESCE(AVG(logic_score), 0),
		        COALESCE(AVG(depth_score), 0)
		 FROM responses WHERE session_id = $1`,
		sessionID,
	).Scan(&breakdown.ResponseCount, &breakdown.TechnicalAvg, &breakdown.CommunicationAvg,
		&breakdown.ConfidenceAvg, &breakdown.LogicAvg, &breakdown.DepthAvg)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute breakdown: %w", err)
	}

	breakdown.TechnicalAvg = round2(breakdown.TechnicalAvg)
	breakdown.CommunicationAvg = round2(breakdown.CommunicationAvg)
	breakdown.ConfidenceAvg = round2(breakdown.ConfidenceAvg)
	breakdown.LogicAvg = round2(breakdown.LogicAvg)
	breakdown.DepthAvg = round2(breakdown.DepthAvg)
	breakdown.OverallAvg = round2((breakdown.TechnicalAvg + breakdown.CommunicationAvg +
		breakdown.ConfidenceAvg + breakdown.LogicAvg + breakdown.DepthAvg) / 5)

	err = tx.QueryRow(ctx,
		`INSERT INTO score_breakdowns (session_id, response_count, technical_avg,
		        communication_avg, confidence_avg, logic_avg, depth_avg, overall_avg, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (session_id) DO UPDATE SET
		     response_count = $2,
		     technical_avg = $3,
		     communication_avg = $4,
		     confidence_avg = $5,
		     logic_avg = $6,
		     depth_avg = $7,
		     overall_avg = $8,
		     updated_at = NOW()
		 RETURNING updated_at`,
		sessionID, breakdown.ResponseCount, breakdown.TechnicalAvg, breakdown.CommunicationAvg,
		breakdown.ConfidenceAvg, breakdown.LogicAvg, breakdown.DepthAvg, breakdown.OverallAvg,
	).Scan(&breakdown.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert breakdown: %w", err)
	}

	return &breakdown, nil
}

// GetScoreBreakdown retrieves the stored aggregate for a session, or nil
func (db *DB) GetScoreBreakdown(ctx context.Context, sessionID uuid.UUID) (*ScoreBreakdown, error) {
	var b ScoreBreakdown
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, response_count, technical_avg, communication_avg,
		        confidence_avg, logic_avg, depth_avg, overall_avg, updated_at
		 FROM score_breakdowns WHERE session_id = $1`,
		sessionID,
	).Scan(&b.SessionID, &b.ResponseCount, &b.TechnicalAvg, &b.CommunicationAvg,
		&b.ConfidenceAvg, &b.LogicAvg, &b.DepthAvg, &b.OverallAvg, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get breakdown: %w", err)
	}
	return &b, nil
}

// ListResponsesBySession retrieves all responses for a session in insertion order
func (db *DB) ListResponsesBySession(ctx context.Context, sessionID uuid.UUID) ([]Response, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, question_id, session_id, answer_text,
		        technical_score, communication_score, confidence_score, logic_score, depth_score,
		        feedback, ideal_answer, improvement_tip, llm_output_valid, created_at
		 FROM responses WHERE session_id = $1 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.ID, &r.QuestionID, &r.SessionID, &r.AnswerText,
			&r.TechnicalScore, &r.CommunicationScore, &r.ConfidenceScore, &r.LogicScore, &r.DepthScore,
			&r.Feedback, &r.IdealAnswer, &r.ImprovementTip, &r.LLMOutputValid, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, nil
}

// CountResponsesBySession returns how many responses a session holds
func (db *DB) CountResponsesBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM responses WHERE session_id = $1`,
		sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
