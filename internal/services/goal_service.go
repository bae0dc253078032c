package services

import (
	"context"
	"fmt"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/goals"
	"budgetbuddy/internal/ledger"
)

// GoalService owns the goal lifecycle: creation, listing, manual
// completion and on-demand progress refresh through the engine.
type GoalService struct {
	store  ledger.Store
	engine *goals.Engine
}

func NewGoalService(store ledger.Store, engine *goals.Engine) *GoalService {
	return &GoalService{
		store:  store,
		engine: engine,
	}
}

// CreateGoal validates and stores a new goal. New goals always start in
// progress with zero progress regardless of what the caller sends.
func (s *GoalService) CreateGoal(ctx context.Context, g core.Goal) (string, error) {
	g.Status = core.StatusInProgress
	g.Progress = 0

	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate goal: %w", err)
	}

	id, err := s.store.AppendGoal(ctx, g)
	if err != nil {
		return "", fmt.Errorf("save goal: %w", err)
	}

	return id, nil
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

// CompleteGoal marks a goal completed ahead of reconciliation, e.g.
// when the user closes it manually.
func (s *GoalService) CompleteGoal(ctx context.Context, userID, goalID string) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	if err := s.store.CompleteGoal(ctx, userID, goalID); err != nil {
		return fmt.Errorf("complete goal: %w", err)
	}
	return nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	if err := s.store.DeleteGoal(ctx, userID, goalID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// RefreshProgress reconciles all of the user's goals against the
// transaction history. Per-goal failures are logged inside the engine
// and never surface here.
func (s *GoalService) RefreshProgress(ctx context.Context, userID string) {
	s.engine.ReconcileUser(ctx, userID)
}
