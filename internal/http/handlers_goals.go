package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/goals"
)

type createGoalRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
	Target   string `json:"target"`
	Deadline string `json:"deadline"`
}

type goalResponse struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Kind        string  `json:"kind"`
	TargetCents int64   `json:"target_cents"`
	Target      string  `json:"target"`
	Deadline    string  `json:"deadline"`
	CreatedAt   string  `json:"created_at"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
	// DisplayProgress is the category-scoped percentage shown on the
	// goal card, distinct from the persisted reconcile metric.
	DisplayProgress float64 `json:"display_progress"`
}

func toGoalResponse(g core.Goal, displayProgress float64) goalResponse {
	return goalResponse{
		ID:              g.ID,
		Category:        g.Category,
		Kind:            string(g.Kind),
		TargetCents:     g.Target.Cents,
		Target:          g.Target.FormatEuros(),
		Deadline:        g.Deadline.Format(time.RFC3339),
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
		Status:          string(g.Status),
		Progress:        g.Progress,
		DisplayProgress: displayProgress,
	}
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateGoal(w, r)
	case http.MethodGet:
		s.handleListGoals(w, r)
	case http.MethodDelete:
		s.handleDeleteGoal(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid kind")
		return
	}

	target, err := parseAmount(req.Target)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target")
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid deadline, want YYYY-MM-DD")
		return
	}

	g := core.Goal{
		UserID:    strings.TrimSpace(req.UserID),
		Category:  strings.TrimSpace(req.Category),
		Kind:      kind,
		Target:    target,
		Deadline:  deadline,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	id, err := s.goals.CreateGoal(r.Context(), g)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create goal",
			"user_id", g.UserID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	g.ID = id
	g.Status = core.StatusInProgress
	writeJSON(w, http.StatusCreated, toGoalResponse(g, 0))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	gs, err := s.goals.ListGoals(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list goals",
			"user_id", userID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	// The display percentage needs the transaction history; if it
	// cannot be loaded the goals still go out with zero display values.
	txs, err := s.transactions.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.WarnContext(r.Context(), "Failed to load transactions for goal display",
			"user_id", userID, "error", err)
		txs = nil
	}

	out := make([]goalResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGoalResponse(g, goals.DisplayProgress(g, txs)))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))

	if err := s.goals.DeleteGoal(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete goal",
			"user_id", userID, "goal_id", id, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type goalActionRequest struct {
	UserID string `json:"user_id"`
	GoalID string `json:"goal_id"`
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req goalActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.goals.CompleteGoal(r.Context(), strings.TrimSpace(req.UserID), strings.TrimSpace(req.GoalID)); err != nil {
		slog.ErrorContext(r.Context(), "Failed to complete goal",
			"user_id", req.UserID, "goal_id", req.GoalID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefreshGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req goalActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	s.goals.RefreshProgress(r.Context(), userID)
	w.WriteHeader(http.StatusAccepted)
}
