package memory

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/db"
)

// TopWeakSkillLimit caps how many skills a memory update reports back
const TopWeakSkillLimit = 5

// Service applies weak-topic observations to the persistent counters
type Service struct {
	store *db.DB
}

// NewService creates a weak-skill memory service
func NewService(store *db.DB) *Service {
	return &Service{store: store}
}

// MemoryResult reports the outcome of one memory update. UpdatedWeakSkills
// holds the user's full weak-skill rows ordered by recurrence after the
// update, or the pre-update state when the write failed. WeakSkills is the
// name-only shortlist of the strongest entries.
type MemoryResult struct {
	Success           bool           `json:"success"`
	Updated           int            `json:"updated"`
	UpdatedWeakSkills []db.WeakSkill `json:"updated_weak_skills"`
	WeakSkills        []string       `json:"weak_skills"`
	Error             string         `json:"error,omitempty"`
}

// ProcessMemoryUpdate increments the recurrence counter for every distinct
// normalized topic in one transaction. It never returns a Go error: a failed
// write is logged and reported through the result, leaving the stored
// counters untouched.
func (s *Service) ProcessMemoryUpdate(ctx context.Context, userID uuid.UUID, weakTopics []string) MemoryResult {
	topics := DedupeTopics(weakTopics)
	if len(topics) == 0 {
		result := MemoryResult{Success: true}
		result.UpdatedWeakSkills, result.WeakSkills = s.snapshot(ctx, userID)
		return result
	}

	if err := s.store.UpsertWeakSkills(ctx, userID, topics); err != nil {
		log.Printf("memory: weak-skill update failed for user %s: %v", userID, err)
		result := MemoryResult{Success: false, Error: "failed to update weak skills"}
		result.UpdatedWeakSkills, result.WeakSkills = s.snapshot(ctx, userID)
		return result
	}

	result := MemoryResult{Success: true, Updated: len(topics)}
	result.UpdatedWeakSkills, result.WeakSkills = s.snapshot(ctx, userID)
	return result
}

// TopWeakSkills returns the user's most recurrent weak skills, strongest
// first, capped at TopWeakSkillLimit.
func (s *Service) TopWeakSkills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.store.TopWeakSkillNames(ctx, userID, TopWeakSkillLimit)
}

// snapshot reads the user's weak-skill rows once and derives the capped
// name shortlist from the same ordering, so both views stay consistent.
func (s *Service) snapshot(ctx context.Context, userID uuid.UUID) ([]db.WeakSkill, []string) {
	skills, err := s.store.ListWeakSkills(ctx, userID)
	if err != nil {
		log.Printf("memory: weak-skill lookup failed for user %s: %v", userID, err)
		return []db.WeakSkill{}, []string{}
	}

	names := make([]string, 0, TopWeakSkillLimit)
	for _, skill := range skills {
		if len(names) == TopWeakSkillLimit {
			break
		}
		names = append(names, skill.SkillName)
	}
	return skills, names
}
