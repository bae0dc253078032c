// Package ledger defines the ports to the per-user document store that
// holds transactions, goals and categories. Adapters live in the
// subpackages memory, sqlite and firestore; components receive these
// interfaces at construction so tests can substitute a fake store.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"budgetbuddy/internal/core"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidGoalID is returned for blank ids or ids containing a
	// path separator, which would address the wrong document.
	ErrInvalidGoalID = errors.New("invalid goal id")
)

// TransactionWindow selects the transactions contributing to a goal:
// same kind, occurred inside the inclusive [From, To] interval. The
// window is deliberately not category-scoped; see goals.Engine.
type TransactionWindow struct {
	Kind core.Kind
	From time.Time
	To   time.Time
}

// Contains reports whether the transaction falls inside the window.
func (w TransactionWindow) Contains(t core.Transaction) bool {
	if !t.Kind.Matches(w.Kind) {
		return false
	}
	return !t.OccurredAt.Before(w.From) && !t.OccurredAt.After(w.To)
}

type (
	TransactionStore interface {
		// AppendTransaction stores the transaction and returns the
		// store-assigned document id.
		AppendTransaction(ctx context.Context, t core.Transaction) (id string, err error)
		ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
		// ListTransactionsByKind filters with case-insensitive kind match.
		ListTransactionsByKind(ctx context.Context, userID string, kind core.Kind) ([]core.Transaction, error)
		TransactionsInWindow(ctx context.Context, userID string, w TransactionWindow) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, userID, id string) error
	}

	GoalStore interface {
		AppendGoal(ctx context.Context, g core.Goal) (id string, err error)
		ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
		// UpdateGoalProgress writes the progress field only.
		UpdateGoalProgress(ctx context.Context, userID, goalID string, progress float64) error
		// UpdateGoalStatus writes the status field only.
		UpdateGoalStatus(ctx context.Context, userID, goalID string, status core.GoalStatus) error
		// CompleteGoal writes status=Completado and progress=1 in a
		// single update.
		CompleteGoal(ctx context.Context, userID, goalID string) error
		DeleteGoal(ctx context.Context, userID, goalID string) error
	}

	CategoryStore interface {
		AppendCategory(ctx context.Context, c core.Category) (id string, err error)
		ListCategories(ctx context.Context, userID string) ([]core.Category, error)
		DeleteCategory(ctx context.Context, userID, id string) error
	}

	ProfileStore interface {
		GetProfile(ctx context.Context, userID string) (core.Profile, error)
		PutProfile(ctx context.Context, p core.Profile) error
		// AdjustFunds adds deltaCents to the user's total funds.
		AdjustFunds(ctx context.Context, userID string, deltaCents int64) error
	}

	// Store is the full ledger surface an adapter provides.
	Store interface {
		TransactionStore
		GoalStore
		CategoryStore
		ProfileStore
	}
)

// ValidGoalID reports whether a goal id can address a document: not
// blank and free of path separators.
func ValidGoalID(id string) bool {
	return strings.TrimSpace(id) != "" && !strings.Contains(id, "/")
}
