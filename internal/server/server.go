// Package server provides the HTTP REST API for the resume studio.
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

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/session"
)

// DefaultMaxConcurrentOptimizations bounds how many LLM calls run at once.
const DefaultMaxConcurrentOptimizations = 4

// MaxUploadBytes caps the size of uploaded resume files.
const MaxUploadBytes = 10 << 20 // 10 MB

// Server represents the HTTP server.
type Server struct {
	httpServer   *http.Server
	store        *session.Store
	tokenService *session.TokenService
	llmClient    llm.Client
	rateLimiter  *ratelimit.Limiter
	optimizeSem  *semaphore.Weighted
	pruneStop    chan struct{}
}

// Config holds server configuration.
type Config struct {
	Port        int
	APIKey      string // Gemini API key
	TokenSecret string // HMAC secret for session tokens
	SessionTTL  time.Duration
	// MaxConcurrentOptimizations bounds simultaneous LLM calls; <= 0 uses
	// DefaultMaxConcurrentOptimizations.
	MaxConcurrentOptimizations int
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	llmClient, err := llm.NewClient(context.Background(), llm.ConfigFromEnv(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	tokenService, err := session.NewTokenService(cfg.TokenSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	s := newServer(cfg, llmClient, tokenService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for optimization calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the server internals without binding a listener. Split out
// so handler tests can inject a stub LLM client.
func newServer(cfg Config, llmClient llm.Client, tokenService *session.TokenService) *Server {
	maxOptimize := int64(cfg.MaxConcurrentOptimizations)
	if maxOptimize <= 0 {
		maxOptimize = DefaultMaxConcurrentOptimizations
	}

	return &Server{
		store:        session.NewStore(cfg.SessionTTL),
		tokenService: tokenService,
		llmClient:    llmClient,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		optimizeSem:  semaphore.NewWeighted(maxOptimize),
	}
}

// Handler builds the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Editor sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	sessionAuth := middleware.SessionAuth(s.tokenService)
	mux.Handle("GET /sessions/{id}", sessionAuth(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("PUT /sessions/{id}/text", sessionAuth(http.HandlerFunc(s.handleSetSessionText)))
	mux.Handle("PUT /sessions/{id}/mode", sessionAuth(http.HandlerFunc(s.handleSetSessionMode)))

	// Document operations
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("POST /export", s.handleExport)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.pruneStop = make(chan struct{})
	go s.pruneSessions()

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

	close(s.pruneStop)
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// pruneSessions periodically drops idle editor sessions.
func (s *Server) pruneSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.store.PruneExpired(); removed > 0 {
				log.Printf("Pruned %d expired sessions", removed)
			}
		case <-s.pruneStop:
			return
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
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

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
