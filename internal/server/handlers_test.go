package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionRequestValidation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		req     CreateSessionRequest
		wantErr bool
	}{
		{
			name: "valid minimal",
			req: CreateSessionRequest{
				UserID:   uuid.New().String(),
				Role:     "backend engineer",
				Category: "databases",
			},
		},
		{
			name: "valid with mode and difficulty",
			req: CreateSessionRequest{
				UserID:        uuid.New().String(),
				Role:          "backend engineer",
				Category:      "databases",
				Mode:          "company",
				CompanyPreset: "google",
				Difficulty:    "hard",
			},
		},
		{
			name: "missing user_id",
			req: CreateSessionRequest{
				Role:     "backend engineer",
				Category: "databases",
			},
			wantErr: true,
		},
		{
			name: "malformed user_id",
			req: CreateSessionRequest{
				UserID:   "not-a-uuid",
				Role:     "backend engineer",
				Category: "databases",
			},
			wantErr: true,
		},
		{
			name: "unknown mode",
			req: CreateSessionRequest{
				UserID:   uuid.New().String(),
				Role:     "backend engineer",
				Category: "databases",
				Mode:     "panic",
			},
			wantErr: true,
		},
		{
			name: "unknown difficulty",
			req: CreateSessionRequest{
				UserID:     uuid.New().String(),
				Role:       "backend engineer",
				Category:   "databases",
				Difficulty: "extreme",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvaluateRequestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(EvaluateRequest{
		QuestionText: "Explain two-phase commit.",
		Answer:       "It coordinates a prepare phase and a commit phase.",
	}))
	assert.Error(t, v.Struct(EvaluateRequest{Answer: "no question"}))
	assert.Error(t, v.Struct(EvaluateRequest{QuestionText: "no answer"}))
	assert.Error(t, v.Struct(EvaluateRequest{
		QuestionID:   "bogus",
		QuestionText: "q",
		Answer:       "a",
	}))
}

func TestExtractValidationErrors(t *testing.T) {
	v := validator.New()

	err := v.Struct(CreateSessionRequest{Role: "engineer", Category: "general"})
	require.Error(t, err)

	msg := extractValidationErrors(err)
	assert.Contains(t, msg, "validation error")
	assert.Contains(t, msg, "UserID")
}

func TestPathUUID(t *testing.T) {
	s := &Server{}

	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		r := httptest.NewRequest("GET", "/sessions/"+id.String(), nil)
		r.SetPathValue("id", id.String())

		got, ok := s.pathUUID(httptest.NewRecorder(), r, "id", "session")
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sessions/abc", nil)
		r.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		_, ok := s.pathUUID(w, r, "id", "session")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/sessions/", nil)
		w := httptest.NewRecorder()

		_, ok := s.pathUUID(w, r, "id", "session")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
