package evaluation

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/memory"
	"github.com/jonathan/interview-prep/internal/readiness"
	"github.com/jonathan/interview-prep/internal/roadmap"
)

// Defaults for the orchestrator's periodic fan-out actions
const (
	// DefaultReadinessEvery refreshes the readiness index every Nth response
	DefaultReadinessEvery = 3
	// DefaultRoadmapEvery regenerates the improvement plan every Nth response
	DefaultRoadmapEvery = 5
)

// Service coordinates one evaluation end to end: prompt construction, the
// model call, output validation, the atomic persistence step, and the
// fan-out to weak-skill memory, readiness, and roadmap refresh.
type Service struct {
	store          *db.DB
	client         llm.Client
	memory         *memory.Service
	readiness      *readiness.Engine
	roadmap        *roadmap.Engine
	readinessEvery int
	roadmapEvery   int
}

// Option configures a Service
type Option func(*Service)

// WithReadinessEvery overrides how often the readiness index is refreshed
func WithReadinessEvery(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.readinessEvery = n
		}
	}
}

// WithRoadmapEvery overrides how often the improvement plan is regenerated
func WithRoadmapEvery(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.roadmapEvery = n
		}
	}
}

// NewService creates the evaluation orchestrator
func NewService(store *db.DB, client llm.Client, opts ...Option) *Service {
	s := &Service{
		store:          store,
		client:         client,
		memory:         memory.NewService(store),
		readiness:      readiness.NewEngine(store),
		roadmap:        roadmap.NewEngine(store),
		readinessEvery: DefaultReadinessEvery,
		roadmapEvery:   DefaultRoadmapEvery,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EvaluateResponse runs the full scoring pipeline for one answer. It always
// returns a well-formed result: a failed model call or invalid model output
// degrades to default zero scores (flagged via LLMOutputValid), and only a
// failure of the core persistence transaction yields Success=false. It
// never panics and never returns a Go error to its caller.
func (s *Service) EvaluateResponse(ctx context.Context, req EvaluationRequest) *EvaluationResult {
	prompt := BuildEvaluationPrompt(PromptInput{
		Role:          req.Role,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Mode:          req.Mode,
		CompanyPreset: req.CompanyPreset,
		Question:      req.QuestionText,
		Answer:        req.UserAnswer,
	})

	callResult := llm.Call(ctx, s.client, prompt, llm.TierStandard)

	var (
		record  ScoreRecord
		valid   bool
		defects []string
	)
	if callResult.Success {
		record, valid, defects = ParseScoreRecord(callResult.Content)
	} else {
		// A failed model call is a normal degraded outcome, not an abort
		record = DefaultScoreRecord()
		defects = []string{"(root): model call failed: " + callResult.Error}
	}

	recorded, err := s.store.RecordEvaluation(ctx, db.EvaluationInput{
		SessionID:          req.SessionID,
		QuestionID:         req.QuestionID,
		QuestionText:       req.QuestionText,
		QuestionDifficulty: req.Difficulty,
		AnswerText:         req.UserAnswer,
		TechnicalScore:     record.TechnicalScore,
		CommunicationScore: record.CommunicationScore,
		ConfidenceScore:    record.ConfidenceScore,
		LogicScore:         record.LogicScore,
		DepthScore:         record.DepthScore,
		Feedback:           record.Feedback,
		IdealAnswer:        record.IdealAnswer,
		ImprovementTip:     record.ImprovementTip,
		LLMOutputValid:     valid,
	})
	if err != nil {
		log.Printf("evaluation: failed to persist response for session %s: %v", req.SessionID, err)
		return &EvaluationResult{
			Success:          false,
			LLMOutputValid:   valid,
			ValidationErrors: defects,
			Evaluation:       record,
			Error:            "failed to persist evaluation",
		}
	}

	s.fanOut(ctx, req.UserID, record, recorded.Breakdown.ResponseCount)

	return &EvaluationResult{
		Success:          true,
		ResponseID:       recorded.ResponseID,
		LLMOutputValid:   valid,
		ValidationErrors: defects,
		Evaluation:       record,
		SessionAverages: SessionAverages{
			ResponseCount:    recorded.Breakdown.ResponseCount,
			TechnicalAvg:     recorded.Breakdown.TechnicalAvg,
			CommunicationAvg: recorded.Breakdown.CommunicationAvg,
			ConfidenceAvg:    recorded.Breakdown.ConfidenceAvg,
			LogicAvg:         recorded.Breakdown.LogicAvg,
			DepthAvg:         recorded.Breakdown.DepthAvg,
			OverallAvg:       recorded.Breakdown.OverallAvg,
		},
	}
}

// fanOut updates the independent progression stores after the core
// transaction committed. The branches share no state, so they run
// concurrently; their failures are logged and never surfaced to the caller.
func (s *Service) fanOut(ctx context.Context, userID uuid.UUID, record ScoreRecord, responseCount int) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Never errors; degraded outcomes are encoded in the result
		s.memory.ProcessMemoryUpdate(gCtx, userID, record.WeakTopics)
		return nil
	})

	if s.readinessEvery > 0 && responseCount%s.readinessEvery == 0 {
		g.Go(func() error {
			if _, err := s.readiness.UpdateReadinessIndex(gCtx, userID); err != nil {
				log.Printf("evaluation: readiness refresh failed for user %s: %v", userID, err)
			}
			return nil
		})
	}

	_ = g.Wait()

	// Roadmap regeneration happens after the group: it reads the weak-skill
	// rows the memory branch just wrote
	if s.roadmapEvery > 0 && responseCount%s.roadmapEvery == 0 {
		s.roadmap.GenerateAndStore(ctx, userID)
	}
}
