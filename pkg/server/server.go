// Package server exposes the orchestrator over HTTP.
//
// All endpoints answer JSON with a {"success": ...} envelope; failures carry
// an "error" string. The router is chi with request logging through zap.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/michal-ai/orchestrator-go/pkg/assistant"
	"github.com/michal-ai/orchestrator-go/pkg/core"
)

// Server serves the orchestrator API.
type Server struct {
	agent     *core.Client
	assistant *assistant.Assistant
	logger    *zap.Logger
	http      *http.Server
}

// New creates a server listening on addr.
func New(addr string, agent *core.Client, asst *assistant.Assistant, logger *zap.Logger) *Server {
	s := &Server{
		agent:     agent,
		assistant: asst,
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the configured router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks/{id}/action", s.handleTaskAction)
		r.Get("/debts", s.handleListDebts)
		r.Get("/bureaucracy", s.handleListBureaucracy)
		r.Get("/clients", s.handleListClients)
		r.Get("/smart-overview", s.handleSmartOverview)

		r.Route("/agent", func(r chi.Router) {
			r.Get("/priorities", s.handlePriorities)
			r.Get("/questions", s.handleQuestions)
			r.Post("/questions/{id}/answer", s.handleAnswerQuestion)
			r.Post("/sync/simulate", s.handleSyncSimulate)
			r.Get("/state", s.handleAgentState)
			r.Get("/metrics", s.handleMetrics)
			r.Get("/auto-actions", s.handleAutoActions)
			r.Post("/finance/balance", s.handleFinanceBalance)
		})

		r.Post("/chat", s.handleChat)
		r.Post("/documents/generate", s.handleGenerateDocument)

		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/me", s.handleMe)

		r.Get("/ai/status", s.handleAIStatus)
		r.Get("/gmail/status", s.handleGmailStatus)
		r.Post("/gmail/sync", s.handleGmailSync)
	})

	return router
}

// requestLogger logs every request with method, path, status and latency.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
