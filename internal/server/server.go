// Package server provides the HTTP REST API for the interview progression engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-prep/internal/adaptive"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/evaluation"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/memory"
	"github.com/jonathan/interview-prep/internal/readiness"
	"github.com/jonathan/interview-prep/internal/roadmap"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	evaluator   *evaluation.Service
	stepper     *adaptive.Stepper
	memory      *memory.Service
	readiness   *readiness.Engine
	roadmap     *roadmap.Engine
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService // nil when JWT_SECRET is unset; routes stay open
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	APIKey         string
	Provider       string
	RoadmapEvery   int
	ReadinessEvery int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	// Connect to database
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.ConfigForProvider(llm.Provider(cfg.Provider)), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	var opts []evaluation.Option
	if cfg.RoadmapEvery > 0 {
		opts = append(opts, evaluation.WithRoadmapEvery(cfg.RoadmapEvery))
	}
	if cfg.ReadinessEvery > 0 {
		opts = append(opts, evaluation.WithReadinessEvery(cfg.ReadinessEvery))
	}

	s := &Server{
		db:        database,
		llmClient: client,
		evaluator: evaluation.NewService(database, client, opts...),
		stepper:   adaptive.NewStepper(database, nil),
		memory:    memory.NewService(database),
		readiness: readiness.NewEngine(database),
		roadmap:   roadmap.NewEngine(database),
		validator: validator.New(),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// JWT auth is optional: enabled only when JWT_SECRET is configured
	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	// Setup router
	mux := http.NewServeMux()

	// Session endpoints
	mux.Handle("POST /sessions", s.protected(http.HandlerFunc(s.handleCreateSession)))
	mux.Handle("GET /sessions/{id}", s.protected(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("GET /sessions/{id}/breakdown", s.protected(http.HandlerFunc(s.handleGetBreakdown)))
	mux.Handle("POST /sessions/{id}/evaluate", s.protected(http.HandlerFunc(s.handleEvaluate)))
	mux.Handle("POST /sessions/{id}/adaptive-step", s.protected(http.HandlerFunc(s.handleAdaptiveStep)))

	// Per-user progression endpoints
	mux.Handle("POST /users/{id}/memory", s.protected(http.HandlerFunc(s.handleMemoryUpdate)))
	mux.Handle("GET /users/{id}/weak-skills", s.protected(http.HandlerFunc(s.handleListWeakSkills)))
	mux.Handle("POST /users/{id}/readiness", s.protected(http.HandlerFunc(s.handleUpdateReadiness)))
	mux.Handle("GET /users/{id}/readiness", s.protected(http.HandlerFunc(s.handleGetReadiness)))
	mux.Handle("POST /users/{id}/roadmap", s.protected(http.HandlerFunc(s.handleGenerateRoadmap)))
	mux.Handle("GET /users/{id}/roadmap", s.protected(http.HandlerFunc(s.handleGetRoadmap)))

	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing model client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// protected wraps a handler with JWT validation when auth is configured
func (s *Server) protected(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
