package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/adaptive"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/evaluation"
)

// CreateSessionRequest represents the request body for POST /sessions
type CreateSessionRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	Role          string `json:"role" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Mode          string `json:"mode,omitempty" validate:"omitempty,oneof=normal stress company"`
	CompanyPreset string `json:"company_preset,omitempty"`
	Difficulty    string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// EvaluateRequest represents the request body for /sessions/{id}/evaluate
type EvaluateRequest struct {
	QuestionID   string `json:"question_id,omitempty" validate:"omitempty,uuid"`
	QuestionText string `json:"question_text" validate:"required"`
	Answer       string `json:"answer" validate:"required"`
}

// MemoryUpdateRequest represents the request body for /users/{id}/memory
type MemoryUpdateRequest struct {
	WeakTopics []string `json:"weak_topics" validate:"required"`
}

// AdaptiveStepRequest represents the request body for /sessions/{id}/adaptive-step
type AdaptiveStepRequest struct {
	Recommendation string   `json:"recommendation" validate:"required"`
	WeakTopics     []string `json:"weak_topics,omitempty"`
}

// handleCreateSession creates a new interview session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user_id format")
		return
	}

	session, err := s.db.CreateSession(r.Context(), db.SessionCreateInput{
		UserID:        userID,
		Role:          req.Role,
		Category:      req.Category,
		Mode:          req.Mode,
		CompanyPreset: req.CompanyPreset,
		Difficulty:    req.Difficulty,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, session)
}

// handleGetSession returns a session by ID
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id", "session")
	if !ok {
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleGetBreakdown returns the per-session score breakdown
func (s *Server) handleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id", "session")
	if !ok {
		return
	}

	breakdown, err := s.db.GetScoreBreakdown(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if breakdown == nil {
		s.errorResponse(w, http.StatusNotFound, "No responses scored for this session yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, breakdown)
}

// handleEvaluate scores one answer and returns the full evaluation result.
// Model and validation failures still produce a 200 with default scores;
// only missing sessions and persistence failures are HTTP errors.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id", "session")
	if !ok {
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	questionID := uuid.Nil
	if req.QuestionID != "" {
		questionID, err = uuid.Parse(req.QuestionID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid question_id format")
			return
		}
	}

	result := s.evaluator.EvaluateResponse(r.Context(), evaluation.EvaluationRequest{
		SessionID:     session.ID,
		UserID:        session.UserID,
		QuestionID:    questionID,
		QuestionText:  req.QuestionText,
		UserAnswer:    req.Answer,
		Role:          session.Role,
		Category:      session.Category,
		Difficulty:    session.Difficulty,
		Mode:          session.Mode,
		CompanyPreset: session.CompanyPreset,
	})
	if !result.Success {
		s.jsonResponse(w, http.StatusInternalServerError, result)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAdaptiveStep applies one difficulty transition to the session
func (s *Server) handleAdaptiveStep(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id", "session")
	if !ok {
		return
	}

	var req AdaptiveStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	result, err := s.stepper.ProcessAdaptiveStep(r.Context(), adaptive.StepRequest{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Recommendation: req.Recommendation,
		WeakTopics:     req.WeakTopics,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleMemoryUpdate records weak topics for a user
func (s *Server) handleMemoryUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	var req MemoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result := s.memory.ProcessMemoryUpdate(r.Context(), userID, req.WeakTopics)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListWeakSkills returns the user's weak skills ordered by recurrence
func (s *Server) handleListWeakSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	skills, err := s.db.ListWeakSkills(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"weak_skills": skills})
}

// handleUpdateReadiness recomputes and stores the user's readiness index
func (s *Server) handleUpdateReadiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	score, err := s.readiness.UpdateReadinessIndex(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"user_id": userID, "score": score})
}

// handleGetReadiness returns the stored readiness score
func (s *Server) handleGetReadiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	score, err := s.readiness.GetReadinessScore(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"user_id": userID, "score": score})
}

// handleGenerateRoadmap generates and stores a fresh improvement plan
func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	plan := s.roadmap.GenerateAndStore(r.Context(), userID)
	s.jsonResponse(w, http.StatusOK, plan)
}

// handleGetRoadmap returns the most recently stored plan
func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id", "user")
	if !ok {
		return
	}

	plan, err := s.roadmap.Latest(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if plan == nil {
		s.errorResponse(w, http.StatusNotFound, "No roadmap generated yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, plan)
}

// pathUUID parses a UUID path parameter, writing the error response itself
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, param, label string) (uuid.UUID, bool) {
	idStr := r.PathValue(param)
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("%s ID is required", label))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", label))
		return uuid.Nil, false
	}
	return id, true
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
