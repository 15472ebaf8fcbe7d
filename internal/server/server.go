// Package server provides the HTTP REST API for the scholarship tracker.
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

	"github.com/jonathan/scholarship-tracker/internal/application"
	"github.com/jonathan/scholarship-tracker/internal/config"
	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
	"github.com/jonathan/scholarship-tracker/internal/server/middleware"
	"github.com/jonathan/scholarship-tracker/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	db            *db.DB
	llm           llm.Client
	applications  *application.Service
	rateLimiter   *ratelimit.Limiter
	jwtService    *JWTService
	userService   *UserService
	authHandler   *AuthHandler
	allowedOrigin string
}

// New creates a new server instance
func New(cfg *config.ServerConfig) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		db:            database,
		llm:           llmClient,
		applications:  application.NewService(database, llmClient),
		allowedOrigin: cfg.AllowedOrigin,
	}

	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimitPerMin)

	// Authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(h))
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints (public)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", authed(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("GET /users/me", authed(http.HandlerFunc(s.handleGetMe)))

	// Profile and transcript endpoints
	mux.Handle("GET /profile", authed(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /profile", authed(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("GET /transcript", authed(http.HandlerFunc(s.handleGetTranscript)))
	mux.Handle("PUT /transcript", authed(http.HandlerFunc(s.handlePutTranscript)))

	// Document endpoints
	mux.Handle("POST /documents", authed(http.HandlerFunc(s.handleUploadDocument)))
	mux.Handle("GET /documents", authed(http.HandlerFunc(s.handleListDocuments)))
	mux.Handle("GET /documents/{id}", authed(http.HandlerFunc(s.handleGetDocument)))

	// Scholarship endpoints
	mux.Handle("GET /scholarships", authed(http.HandlerFunc(s.handleListScholarships)))
	mux.Handle("GET /scholarships/{id}", authed(http.HandlerFunc(s.handleGetScholarship)))
	mux.Handle("GET /scholarships/{id}/eligibility", authed(http.HandlerFunc(s.handleCheckEligibility)))
	mux.Handle("POST /scholarships", adminOnly(s.handleCreateScholarship))

	// Application endpoints
	mux.Handle("POST /applications", authed(http.HandlerFunc(s.handleStartApplication)))
	mux.Handle("GET /applications", authed(http.HandlerFunc(s.handleListApplications)))
	mux.Handle("GET /applications/{id}", authed(http.HandlerFunc(s.handleGetApplication)))
	mux.Handle("PUT /applications/{id}/essay/draft", authed(http.HandlerFunc(s.handleSaveEssayDraft)))
	mux.Handle("POST /applications/{id}/essay/submit", authed(http.HandlerFunc(s.handleSubmitEssay)))
	mux.Handle("POST /applications/{id}/interview/schedule", authed(http.HandlerFunc(s.handleScheduleInterview)))
	mux.Handle("PUT /applications/{id}/interview/reflection", authed(http.HandlerFunc(s.handleSaveReflection)))

	// AI assistance endpoints
	mux.Handle("POST /assistance/essay", authed(http.HandlerFunc(s.handleEssayAssistance)))
	mux.Handle("POST /assistance/group", authed(http.HandlerFunc(s.handleGroupAssistance)))
	mux.Handle("POST /assistance/interview", authed(http.HandlerFunc(s.handleInterviewAssistance)))

	// Admin review endpoints
	mux.Handle("GET /admin/applications", adminOnly(s.handleAdminListApplications))
	mux.Handle("POST /admin/applications/{id}/review/essay", adminOnly(s.handleReviewEssay))
	mux.Handle("POST /admin/applications/{id}/review/group", adminOnly(s.handleReviewGroup))
	mux.Handle("POST /admin/applications/{id}/review/interview", adminOnly(s.handleReviewInterview))
	mux.Handle("POST /admin/applications/{id}/complete", adminOnly(s.handleMarkCompleted))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM-backed endpoints can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llm != nil {
		_ = s.llm.Close()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
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
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

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

// handleUpdatePassword handles password update requests for the caller.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// handleGetMe returns the authenticated user's account.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, convertDBUserToTypesUser(user))
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
// Uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored until the server sits behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
