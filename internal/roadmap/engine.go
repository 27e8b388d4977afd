package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/db"
)

// Engine generates plans from persisted history and stores the snapshots
type Engine struct {
	store *db.DB
}

// NewEngine creates a roadmap engine
func NewEngine(store *db.DB) *Engine {
	return &Engine{store: store}
}

// GenerateAndStore builds a plan from the user's weak skills and latest
// session aggregates and appends it to the improvement_plans history. It
// always hands back a usable plan: when gathering or persistence fails, the
// failure is logged and the caller receives a default plan generated from
// empty inputs instead.
func (e *Engine) GenerateAndStore(ctx context.Context, userID uuid.UUID) Plan {
	inputs, err := e.store.GatherRoadmapInputs(ctx, userID)
	if err != nil {
		log.Printf("roadmap: failed to gather inputs for user %s: %v", userID, err)
		return Generate(Input{})
	}

	plan := Generate(Input{
		WeakSkills:       inputs.WeakSkills,
		TechnicalAvg:     inputs.TechnicalAvg,
		CommunicationAvg: inputs.CommunicationAvg,
		LogicAvg:         inputs.LogicAvg,
		Difficulty:       inputs.Difficulty,
	})

	if _, err := e.store.InsertImprovementPlan(ctx, userID, plan); err != nil {
		log.Printf("roadmap: failed to store plan for user %s: %v", userID, err)
	}
	return plan
}

// Latest returns the most recently stored plan, or nil when the user has
// never generated one.
func (e *Engine) Latest(ctx context.Context, userID uuid.UUID) (*Plan, error) {
	stored, err := e.store.LatestImprovementPlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest plan: %w", err)
	}
	if stored == nil {
		return nil, nil
	}

	var plan Plan
	if err := json.Unmarshal(stored.Plan, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	return &plan, nil
}
