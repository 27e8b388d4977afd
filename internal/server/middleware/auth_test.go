package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubValidator accepts only the tokens registered on it.
type stubValidator struct {
	tokens map[string]uuid.UUID
}

func newStubValidator() *stubValidator {
	return &stubValidator{tokens: make(map[string]uuid.UUID)}
}

func (v *stubValidator) register(token string, userID uuid.UUID) {
	v.tokens[token] = userID
}

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.tokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return stubClaims{userID: userID}, nil
}

type stubClaims struct {
	userID uuid.UUID
}

func (c stubClaims) GetUserID() uuid.UUID {
	return c.userID
}

// callProtected wraps a recording handler in AuthMiddleware and sends one
// request at a session route with the given Authorization header.
func callProtected(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, *bool, *uuid.UUID) {
	t.Helper()

	called := false
	var seenUserID uuid.UUID
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if userID, err := GetUserID(r); err == nil {
			seenUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc/breakdown", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()

	AuthMiddleware(validator)(handler).ServeHTTP(w, req)
	return w, &called, &seenUserID
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newStubValidator()
	userID := uuid.New()
	validator.register("candidate-token-1", userID)

	w, called, seenUserID := callProtected(t, validator, "Bearer candidate-token-1")

	assert.True(t, *called, "handler should run for a valid token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seenUserID, "handler should see the authenticated user")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w, called, _ := callProtected(t, newStubValidator(), "")

	assert.False(t, *called, "handler should not run without credentials")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthMiddleware_HeaderFormat(t *testing.T) {
	validator := newStubValidator()
	userID := uuid.New()
	validator.register("candidate-token-1", userID)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "no scheme", authHeader: "candidate-token-1", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "empty token", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic candidate-token-1", wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", authHeader: "bearer candidate-token-1", wantStatus: http.StatusOK},
		{name: "mixed case scheme", authHeader: "BeArEr candidate-token-1", wantStatus: http.StatusOK},
		{name: "extra whitespace", authHeader: "Bearer  candidate-token-1", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := callProtected(t, validator, tt.authHeader)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_UnknownToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong signature", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoiMTIzIn0.invalid"},
		{name: "malformed token", token: "not.a.valid.jwt.token"},
		{name: "revoked or expired token", token: "stale.session.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, called, _ := callProtected(t, newStubValidator(), "Bearer "+tt.token)

			assert.False(t, *called, "handler should not run for a rejected token")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantOK    bool
	}{
		{header: "Bearer abc123", wantToken: "abc123", wantOK: true},
		{header: "bearer abc123", wantToken: "abc123", wantOK: true},
		{header: "Bearer", wantOK: false},
		{header: "", wantOK: false},
		{header: "abc123", wantOK: false},
		{header: "Bearer a b", wantOK: false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.wantOK, ok, "header %q", tt.header)
		if tt.wantOK {
			assert.Equal(t, tt.wantToken, token, "header %q", tt.header)
		}
	}
}

func TestGetUserID_Success(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/users/u1/readiness", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))

	extracted, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, extracted)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/u1/readiness", nil)

	userID, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, userID)
	assert.Contains(t, err.Error(), "user ID not found")
}

func TestGetUserID_WrongType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/u1/readiness", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	userID, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, userID)
}
