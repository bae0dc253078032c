// Package http exposes the JSON API consumed by the mobile clients.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"budgetbuddy/internal/assistant"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/services"
)

type Server struct {
	http.Server

	transactions *services.TransactionService
	goals        *services.GoalService
	categories   *services.CategoryService
	assistant    *assistant.Assistant
}

func NewServer(addr string, logger *log.Logger,
	transactions *services.TransactionService,
	goals *services.GoalService,
	categories *services.CategoryService,
	asst *assistant.Assistant,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		transactions: transactions,
		goals:        goals,
		categories:   categories,
		assistant:    asst,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/goals", s.handleGoals)
	mux.HandleFunc("/goals/complete", s.handleCompleteGoal)
	mux.HandleFunc("/goals/refresh", s.handleRefreshGoals)
	mux.HandleFunc("/categories", s.handleCategories)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/chat", s.handleChat)

	if logger != nil {
		s.Handler = log.RequestMiddleware(logger)(mux)
	} else {
		s.Handler = mux
	}

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutting down HTTP server")
	return s.Server.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
