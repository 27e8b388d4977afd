package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session represents one interview attempt. Its difficulty field is advanced
// only by the adaptive difficulty engine, one level at a time.
type Session struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Role           string    `json:"role"`
	Category       string    `json:"category"`
	Mode           string    `json:"mode"`
	CompanyPreset  string    `json:"company_preset,omitempty"`
	Difficulty     string    `json:"difficulty"`
	AverageScore   float64   `json:"average_score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Question represents one question asked within a session
type Question struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	Text       string    `json:"text"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Response represents one scored answer to one question.
// Rows are immutable once written.
type Response struct {
	ID                 uuid.UUID `json:"id"`
	QuestionID         uuid.UUID `json:"question_id"`
	SessionID          uuid.UUID `json:"session_id"`
	AnswerText         string    `json:"answer_text"`
	TechnicalScore     int       `json:"technical_score"`
	CommunicationScore int       `json:"communication_score"`
	ConfidenceScore    int       `json:"confidence_score"`
	LogicScore         int       `json:"logic_score"`
	DepthScore         int       `json:"depth_score"`
	Feedback           string    `json:"feedback"`
	IdealAnswer        string    `json:"ideal_answer"`
	ImprovementTip     string    `json:"improvement_tip"`
	LLMOutputValid     bool      `json:"llm_output_valid"`
	CreatedAt          time.Time `json:"created_at"`
}

// ScoreBreakdown is the per-session aggregate of the five score dimensions,
// fully recomputed from all responses on every new response.
type ScoreBreakdown struct {
	SessionID        uuid.UUID `json:"session_id"`
	ResponseCount    int       `json:"response_count"`
	TechnicalAvg     float64   `json:"technical_avg"`
	CommunicationAvg float64   `json:"communication_avg"`
	ConfidenceAvg    float64   `json:"confidence_avg"`
	LogicAvg         float64   `json:"logic_avg"`
	DepthAvg         float64   `json:"depth_avg"`
	OverallAvg       float64   `json:"overall_avg"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WeakSkill is a per-user recurring-weakness counter, keyed by the
// normalized skill name. weakness_count only ever increases.
type WeakSkill struct {
	UserID         uuid.UUID `json:"user_id"`
	SkillName      string    `json:"skill_name"`
	WeaknessCount  int       `json:"weakness_count"`
	LastOccurredAt time.Time `json:"last_occurred_at"`
}

// ReadinessIndex is the single current preparedness score for a user
type ReadinessIndex struct {
	UserID     uuid.UUID `json:"user_id"`
	Score      float64   `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}

// ImprovementPlan is an append-only snapshot of a generated 4-week plan
type ImprovementPlan struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Plan      json.RawMessage `json:"plan"`
	CreatedAt time.Time       `json:"created_at"`
}
