// Package evaluation turns a single free-text interview answer into
// validated multi-dimensional scores and updated session aggregates.
package evaluation

import "github.com/google/uuid"

// Difficulty levels for questions and sessions
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Interview modes select the evaluator persona
const (
	ModeNormal  = "normal"
	ModeStress  = "stress"
	ModeCompany = "company"
)

// Difficulty recommendations emitted by the scoring model
const (
	RecommendIncrease = "increase"
	RecommendDecrease = "decrease"
	RecommendMaintain = "maintain"
)

// EvaluationRequest describes one answer to evaluate. It is transient and
// never persisted as-is. Required-field validation is the caller's duty.
type EvaluationRequest struct {
	SessionID     uuid.UUID
	UserID        uuid.UUID
	QuestionID    uuid.UUID // optional; Nil creates a new question row
	QuestionText  string
	UserAnswer    string
	Role          string
	Category      string
	Difficulty    string
	Mode          string
	CompanyPreset string
}

// ScoreRecord is the fixed-shape result of scoring one answer. The JSON tags
// mirror score_record.schema.json exactly: eleven fields, no more, no fewer.
type ScoreRecord struct {
	TechnicalScore           int      `json:"technical_score"`
	CommunicationScore       int      `json:"communication_score"`
	ConfidenceScore          int      `json:"confidence_score"`
	LogicScore               int      `json:"logic_score"`
	DepthScore               int      `json:"depth_score"`
	DifficultyRecommendation string   `json:"difficulty_recommendation"`
	WeakTopics               []string `json:"weak_topics"`
	Strengths                []string `json:"strengths"`
	Feedback                 string   `json:"feedback"`
	IdealAnswer              string   `json:"ideal_answer"`
	ImprovementTip           string   `json:"improvement_tip"`
}

// SessionAverages is the freshly recomputed per-session aggregate returned
// to the caller after each evaluation.
type SessionAverages struct {
	ResponseCount    int     `json:"response_count"`
	TechnicalAvg     float64 `json:"technical_avg"`
	CommunicationAvg float64 `json:"communication_avg"`
	ConfidenceAvg    float64 `json:"confidence_avg"`
	LogicAvg         float64 `json:"logic_avg"`
	DepthAvg         float64 `json:"depth_avg"`
	OverallAvg       float64 `json:"overall_avg"`
}

// EvaluationResult is the orchestrator's complete answer. It is always
// well-formed: degraded quality is communicated through the Success and
// LLMOutputValid flags, never through a raised error.
type EvaluationResult struct {
	Success          bool            `json:"success"`
	ResponseID       uuid.UUID       `json:"response_id,omitempty"`
	LLMOutputValid   bool            `json:"llm_output_valid"`
	ValidationErrors []string        `json:"validation_errors,omitempty"`
	Evaluation       ScoreRecord     `json:"evaluation"`
	SessionAverages  SessionAverages `json:"session_averages"`
	Error            string          `json:"error,omitempty"`
}
