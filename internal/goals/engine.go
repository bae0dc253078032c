// Package goals implements the goal-progress reconciliation engine: it
// recomputes each goal's completion from the transaction history and
// persists the minimal status/progress change.
package goals

import (
	"context"
	"log/slog"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

// Engine recomputes goal progress against the ledger. It must be invoked
// after any transaction mutation that can affect progress; the store does
// not trigger it on its own.
type Engine struct {
	txs   ledger.TransactionStore
	goals ledger.GoalStore
	now   func() time.Time
}

func NewEngine(txs ledger.TransactionStore, goals ledger.GoalStore) *Engine {
	return &Engine{txs: txs, goals: goals, now: time.Now}
}

// Reconcile recomputes and persists progress for each goal in the batch.
// Per-goal failures are logged and never abort the remaining goals, so a
// single bad document cannot block the batch. Nothing is escalated to
// the caller.
func (e *Engine) Reconcile(ctx context.Context, userID string, batch []core.Goal) {
	for _, g := range batch {
		if g.Status == core.StatusCompleted {
			continue
		}
		if !ledger.ValidGoalID(g.ID) {
			slog.WarnContext(ctx, "Skipping goal with malformed id",
				"user_id", userID, "goal_id", g.ID)
			continue
		}
		if g.Target.Cents <= 0 {
			// Creation validation rejects these; an existing document in
			// this state is skipped rather than treated as instantly met.
			slog.WarnContext(ctx, "Skipping goal with non-positive target",
				"user_id", userID, "goal_id", g.ID)
			continue
		}
		if err := e.reconcileOne(ctx, userID, g); err != nil {
			slog.ErrorContext(ctx, "Goal reconciliation failed",
				"user_id", userID, "goal_id", g.ID, "error", err)
		}
	}
}

func (e *Engine) reconcileOne(ctx context.Context, userID string, g core.Goal) error {
	window := ledger.TransactionWindow{
		Kind: g.Kind,
		From: g.CreatedAt,
		To:   g.Deadline,
	}
	matches, err := e.txs.TransactionsInWindow(ctx, userID, window)
	if err != nil {
		return err
	}

	var total int64
	for _, t := range matches {
		total += t.Amount.Cents
	}
	progress := Progress(total, g.Target.Cents)

	if progress >= 1.0 {
		if err := e.goals.CompleteGoal(ctx, userID, g.ID); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Goal completed",
			"user_id", userID, "goal_id", g.ID, "category", g.Category)
		return nil
	}

	if err := e.goals.UpdateGoalProgress(ctx, userID, g.ID, progress); err != nil {
		return err
	}

	if e.now().After(g.Deadline) && g.Status != core.StatusExpired {
		if err := e.goals.UpdateGoalStatus(ctx, userID, g.ID, core.StatusExpired); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Goal expired",
			"user_id", userID, "goal_id", g.ID, "category", g.Category)
	}
	return nil
}

// ReconcileUser loads the user's goals and reconciles them all. List
// errors are logged and swallowed like per-goal errors.
func (e *Engine) ReconcileUser(ctx context.Context, userID string) {
	batch, err := e.goals.ListGoals(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list goals for reconciliation",
			"user_id", userID, "error", err)
		return
	}
	e.Reconcile(ctx, userID, batch)
}

// Progress computes the clamped completion fraction for an accumulated
// amount against a target. Non-positive targets yield zero.
func Progress(totalCents, targetCents int64) float64 {
	if targetCents <= 0 {
		return 0
	}
	p := float64(totalCents) / float64(targetCents)
	if p > 1.0 {
		return 1.0
	}
	return p
}
