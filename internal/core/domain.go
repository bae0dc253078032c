package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindSaving  Kind = "Ahorro"
	KindExpense Kind = "Gasto"
)

const (
	StatusInProgress GoalStatus = "Proceso"
	StatusCompleted  GoalStatus = "Completado"
	StatusExpired    GoalStatus = "Expirado"
)

type (
	// Kind classifies a transaction or goal as saving or spending.
	Kind string

	// GoalStatus is the lifecycle state of a goal. A completed goal is
	// never re-opened.
	GoalStatus string

	Money struct {
		Cents int64
	}

	// Transaction is an immutable ledger entry owned by one user. The ID
	// is assigned by the store at creation.
	Transaction struct {
		ID          string
		UserID      string
		Kind        Kind
		OccurredAt  time.Time
		Title       string
		Amount      Money
		Description string
		Category    string
	}

	// Goal is a target amount of saving or spending in a category by a
	// deadline. Progress and Status are mutated only by the progress
	// engine or by explicit user completion.
	Goal struct {
		ID        string
		UserID    string
		Category  string
		Kind      Kind
		Target    Money
		Deadline  time.Time
		CreatedAt time.Time
		Status    GoalStatus
		Progress  float64 // fraction in [0,1]
	}

	Category struct {
		ID     string
		UserID string
		Name   string
		Budget Money
	}

	// Profile is the per-user account document.
	Profile struct {
		UserID      string
		DisplayName string
		Email       string
		TotalFunds  Money
		PhotoURL    string
	}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyUser       = errors.New("empty user id")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyName       = errors.New("empty name")
	ErrZeroOccurredAt  = errors.New("transaction date cannot be zero")
	ErrInvalidDeadline = errors.New("invalid deadline")
)

// ParseKind normalizes user input to a Kind. Matching is case-insensitive
// and ignores surrounding whitespace, mirroring how transactions are
// filtered by kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ahorro":
		return KindSaving, nil
	case "gasto":
		return KindExpense, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) Valid() bool {
	return k == KindSaving || k == KindExpense
}

// Matches reports whether two kinds are equal ignoring case and
// surrounding whitespace.
func (k Kind) Matches(other Kind) bool {
	return strings.EqualFold(strings.TrimSpace(string(k)), strings.TrimSpace(string(other)))
}

func (s GoalStatus) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUser
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.OccurredAt.IsZero() {
		return ErrZeroOccurredAt
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Validate checks a goal at creation time. A non-positive target is
// rejected here so the progress engine never divides by zero.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return ErrEmptyUser
	}
	if !g.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Deadline.IsZero() {
		return ErrInvalidDeadline
	}
	if !g.CreatedAt.IsZero() && g.Deadline.Before(g.CreatedAt) {
		return ErrInvalidDeadline
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrEmptyUser
	}
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	// Budget is optional; zero means no budget set.
	if c.Budget.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
