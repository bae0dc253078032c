package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

// decodeJSON parses the request body into v, refusing unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// userIDParam extracts the required user_id query parameter.
func userIDParam(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.URL.Query().Get("user_id"))
	return id, id != ""
}

// parseAmount converts a decimal euro string ("12,34" or "12.34") to cents.
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(strings.TrimSpace(s))
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidGoalID),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyUser),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrZeroOccurredAt),
		errors.Is(err, core.ErrInvalidDeadline):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
