package adaptive

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/memory"
)

// QuestionSource supplies the next interview question for a session at a
// given difficulty. Question selection lives outside the progression engine,
// so callers plug in their own bank, generator or fixed script.
type QuestionSource interface {
	NextQuestion(ctx context.Context, sessionID uuid.UUID, difficulty string) (string, error)
}

// QuestionSourceFunc adapts a plain function to a QuestionSource
type QuestionSourceFunc func(ctx context.Context, sessionID uuid.UUID, difficulty string) (string, error)

// NextQuestion calls f
func (f QuestionSourceFunc) NextQuestion(ctx context.Context, sessionID uuid.UUID, difficulty string) (string, error) {
	return f(ctx, sessionID, difficulty)
}

// StepRequest carries one evaluation outcome into the adaptive step
type StepRequest struct {
	SessionID      uuid.UUID
	UserID         uuid.UUID
	Recommendation string
	WeakTopics     []string
}

// StepResult describes the applied transition. NextQuestion is empty when
// no QuestionSource is configured or the source failed.
type StepResult struct {
	Success            bool   `json:"success"`
	PreviousDifficulty string `json:"previous_difficulty"`
	NextDifficulty     string `json:"next_difficulty"`
	NextQuestion       string `json:"next_question,omitempty"`
	Error              string `json:"error,omitempty"`
}

// Stepper advances sessions through the difficulty state machine
type Stepper struct {
	store     *db.DB
	memory    *memory.Service
	questions QuestionSource
}

// NewStepper creates an adaptive stepper. questions may be nil, in which
// case steps adjust difficulty without proposing a next question.
func NewStepper(store *db.DB, questions QuestionSource) *Stepper {
	return &Stepper{
		store:     store,
		memory:    memory.NewService(store),
		questions: questions,
	}
}

// ProcessAdaptiveStep applies one recommendation to the session: it runs the
// state machine against the stored difficulty, persists the new level,
// records the reported weak topics, and asks the question source for the
// next question at the new level. The session's difficulty is only written
// when the level actually changes.
func (s *Stepper) ProcessAdaptiveStep(ctx context.Context, req StepRequest) (*StepResult, error) {
	session, err := s.store.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &StepResult{Success: false, Error: "session not found"}, nil
	}

	next := NextDifficulty(session.Difficulty, req.Recommendation)
	if next != session.Difficulty {
		if err := s.store.UpdateSessionDifficulty(ctx, req.SessionID, next); err != nil {
			return nil, err
		}
	}

	s.memory.ProcessMemoryUpdate(ctx, req.UserID, req.WeakTopics)

	result := &StepResult{
		Success:            true,
		PreviousDifficulty: session.Difficulty,
		NextDifficulty:     next,
	}

	if s.questions != nil {
		question, qErr := s.questions.NextQuestion(ctx, req.SessionID, next)
		if qErr != nil {
			// The step itself succeeded; the caller can pick its own question
			log.Printf("adaptive: question source failed for session %s: %v", req.SessionID, qErr)
		} else {
			result.NextQuestion = question
		}
	}

	return result, nil
}
