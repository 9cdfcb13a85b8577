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
	"github.com/gorilla/websocket"

	"github.com/jonathan/interview-platform/internal/config"
	"github.com/jonathan/interview-platform/internal/interview"
	"github.com/jonathan/interview-platform/internal/llm"
	"github.com/jonathan/interview-platform/internal/server/ratelimit"
)

// Server hosts the interview API: the resume pipeline, the conversational
// endpoints, and the realtime voice relay.
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	upgrader    websocket.Upgrader

	client    llm.Client
	roles     *interview.RoleTable
	analyzer  *interview.Analyzer
	session   *interview.SessionManager
	evaluator *interview.Evaluator
}

// New creates a server instance. A missing API key is not fatal: the AI
// routes answer 503 per request while mock and health routes stay up.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		validate: validator.New(),
		roles:    interview.NewRoleTable(),
		upgrader: websocket.Upgrader{
			// The browser client is served from a separate origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	if cfg.HasAPIKey() {
		client, err := llm.NewClient(llm.DefaultOpenAIConfig().WithBaseURL(cfg.BaseURL).WithModel(cfg.Model), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create reasoning client: %w", err)
		}
		s.client = client
	} else {
		log.Println("OPENAI_API_KEY not set; AI routes will answer 503")
	}

	s.analyzer = interview.NewAnalyzer(s.client)
	s.session = interview.NewSessionManager(s.client, s.roles)
	s.evaluator = interview.NewEvaluator(s.client, s.roles)
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()

	// Interview pipeline
	mux.HandleFunc("POST /resume", s.handleResumeUpload)
	mux.HandleFunc("POST /resume/analyze", s.handleResumeAnalyze)
	mux.HandleFunc("POST /interview/turn", s.handleInterviewTurn)
	mux.HandleFunc("POST /interview/evaluate", s.handleInterviewEvaluate)
	mux.HandleFunc("GET /roles", s.handleRoles)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Realtime voice relay
	mux.HandleFunc("GET /ws", s.handleRealtime)

	// Admin dashboard API (mock data)
	mux.HandleFunc("GET /api/health", s.handleAPIHealth)
	mux.HandleFunc("GET /api/organizations", s.handleListOrganizations)
	mux.HandleFunc("GET /api/organizations/{id}", s.handleGetOrganization)
	mux.HandleFunc("GET /api/interviews", s.handleListInterviews)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // reasoning-service calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
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
	if s.client != nil {
		s.client.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

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

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes a plain error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// pipelineError maps a typed pipeline error onto the HTTP response.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %v", err)
	}
	s.jsonResponse(w, status, map[string]string{
		"error":   errorCode(err),
		"message": err.Error(),
	})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
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
