// Package worker runs goal reconciliation in response to AMQP triggers.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/goals"
	"budgetbuddy/internal/ledger"
)

// ReconcileWorker re-runs the goal engine whenever a transaction
// mutation for a user comes through the queue.
type ReconcileWorker struct {
	engine *goals.Engine
	goals  ledger.GoalStore
}

func NewReconcileWorker(engine *goals.Engine, goals ledger.GoalStore) *ReconcileWorker {
	return &ReconcileWorker{
		engine: engine,
		goals:  goals,
	}
}

// HandleReconcileMessage processes a single reconcile trigger. The
// engine isolates per-goal failures internally, so a non-nil return
// means the batch never started and the message should be requeued.
func (w *ReconcileWorker) HandleReconcileMessage(ctx context.Context, msg *amqp.ReconcileMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("reconcile message without user id")
	}

	slog.InfoContext(ctx, "Processing reconcile message",
		"user_id", msg.UserID,
		"reason", msg.Reason)

	batch, err := w.goals.ListGoals(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}

	if len(batch) == 0 {
		slog.InfoContext(ctx, "No goals to reconcile", "user_id", msg.UserID)
		return nil
	}

	w.engine.Reconcile(ctx, msg.UserID, batch)

	slog.InfoContext(ctx, "Reconcile completed",
		"user_id", msg.UserID,
		"goals", len(batch))

	return nil
}
