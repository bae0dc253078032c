package http

import (
	"net/http"
	"strings"
)

type chatRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	// Context is an optional pre-built financial snapshot. When absent
	// the server gathers one from the ledger.
	Context string `json:"context,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type chatTurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Pending  bool   `json:"pending"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleChatAsk(w, r)
	case http.MethodGet:
		s.handleChatHistory(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleChatAsk(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	question := strings.TrimSpace(req.Question)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	var answer string
	if req.Context != "" {
		answer = s.assistant.Ask(r.Context(), userID, question, req.Context)
	} else {
		answer = s.assistant.AskWithFullContext(r.Context(), userID, question)
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	turns := s.assistant.Conversation(userID).History()
	out := make([]chatTurnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, chatTurnResponse{
			Question: t.Question,
			Answer:   t.Answer,
			Pending:  t.Pending,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
