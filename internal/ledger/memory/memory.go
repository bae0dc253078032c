// Package memory provides an in-process ledger used as the default
// backend and as the test double for the store ports.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

type Store struct {
	mu       sync.Mutex
	txs      map[string][]core.Transaction // userID -> transactions
	goals    map[string][]core.Goal
	cats     map[string][]core.Category
	profiles map[string]core.Profile
}

func New() *Store {
	return &Store{
		txs:      make(map[string][]core.Transaction),
		goals:    make(map[string][]core.Goal),
		cats:     make(map[string][]core.Category),
		profiles: make(map[string]core.Profile),
	}
}

// AppendTransaction stores the transaction and assigns a document id.
func (s *Store) AppendTransaction(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.txs[t.UserID] = append(s.txs[t.UserID], t)
	return t.ID, nil
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs[userID]...), nil
}

func (s *Store) ListTransactionsByKind(_ context.Context, userID string, kind core.Kind) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs[userID] {
		if t.Kind.Matches(kind) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) TransactionsInWindow(_ context.Context, userID string, w ledger.TransactionWindow) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs[userID] {
		if w.Contains(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.txs[userID]
	for i, t := range list {
		if t.ID == id {
			s.txs[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) AppendGoal(_ context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.NewString()
	if g.Status == "" {
		g.Status = core.StatusInProgress
	}
	s.goals[g.UserID] = append(s.goals[g.UserID], g)
	return g.ID, nil
}

func (s *Store) ListGoals(_ context.Context, userID string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals[userID]...), nil
}

func (s *Store) UpdateGoalProgress(_ context.Context, userID, goalID string, progress float64) error {
	return s.updateGoal(userID, goalID, func(g *core.Goal) {
		g.Progress = progress
	})
}

func (s *Store) UpdateGoalStatus(_ context.Context, userID, goalID string, status core.GoalStatus) error {
	return s.updateGoal(userID, goalID, func(g *core.Goal) {
		g.Status = status
	})
}

func (s *Store) CompleteGoal(_ context.Context, userID, goalID string) error {
	return s.updateGoal(userID, goalID, func(g *core.Goal) {
		g.Status = core.StatusCompleted
		g.Progress = 1.0
	})
}

func (s *Store) updateGoal(userID, goalID string, apply func(*core.Goal)) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.goals[userID]
	for i := range list {
		if list[i].ID == goalID {
			apply(&list[i])
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, userID, goalID string) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.goals[userID]
	for i, g := range list {
		if g.ID == goalID {
			s.goals[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) AppendCategory(_ context.Context, c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.cats[c.UserID] = append(s.cats[c.UserID], c)
	return c.ID, nil
}

func (s *Store) ListCategories(_ context.Context, userID string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats[userID]...), nil
}

func (s *Store) DeleteCategory(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cats[userID]
	for i, c := range list {
		if c.ID == id {
			s.cats[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) GetProfile(_ context.Context, userID string) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return core.Profile{}, ledger.ErrNotFound
	}
	return p, nil
}

func (s *Store) PutProfile(_ context.Context, p core.Profile) error {
	if p.UserID == "" {
		return core.ErrEmptyUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
	return nil
}

func (s *Store) AdjustFunds(_ context.Context, userID string, deltaCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return ledger.ErrNotFound
	}
	p.TotalFunds.Cents += deltaCents
	s.profiles[userID] = p
	return nil
}
