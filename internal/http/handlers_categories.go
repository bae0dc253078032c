package http

import (
	"log/slog"
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
)

type createCategoryRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Budget string `json:"budget,omitempty"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BudgetCents int64  `json:"budget_cents"`
	Budget      string `json:"budget"`
}

func toCategoryResponse(c core.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		BudgetCents: c.Budget.Cents,
		Budget:      c.Budget.FormatEuros(),
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateCategory(w, r)
	case http.MethodGet:
		s.handleListCategories(w, r)
	case http.MethodDelete:
		s.handleDeleteCategory(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := core.Category{
		UserID: strings.TrimSpace(req.UserID),
		Name:   strings.TrimSpace(req.Name),
	}
	if req.Budget != "" {
		budget, err := parseAmount(req.Budget)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid budget")
			return
		}
		c.Budget = budget
	}

	id, err := s.categories.CreateCategory(r.Context(), c)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create category",
			"user_id", c.UserID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	c.ID = id
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	cs, err := s.categories.ListCategories(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories",
			"user_id", userID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	out := make([]categoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.categories.DeleteCategory(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete category",
			"user_id", userID, "id", id, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
