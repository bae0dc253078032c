package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/goals"
	"budgetbuddy/internal/ledger"
	"budgetbuddy/internal/ledger/memory"
)

func newTestGoal() core.Goal {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return core.Goal{
		UserID:    "user-1",
		Category:  "Viajes",
		Kind:      core.KindSaving,
		Target:    core.Money{Cents: 50_000},
		CreatedAt: created,
		Deadline:  created.AddDate(0, 6, 0),
	}
}

func TestCreateGoalStartsInProgress(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	g := newTestGoal()
	g.Status = core.StatusCompleted
	g.Progress = 0.9

	id, err := svc.CreateGoal(ctx, g)
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	listed, err := store.ListGoals(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListGoals() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d goals, want 1", len(listed))
	}
	if listed[0].ID != id {
		t.Errorf("ID = %q, want %q", listed[0].ID, id)
	}
	if listed[0].Status != core.StatusInProgress {
		t.Errorf("Status = %q, want %q", listed[0].Status, core.StatusInProgress)
	}
	if listed[0].Progress != 0 {
		t.Errorf("Progress = %v, want 0", listed[0].Progress)
	}
}

func TestCreateGoalRejectsZeroTarget(t *testing.T) {
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	g := newTestGoal()
	g.Target = core.Money{}

	if _, err := svc.CreateGoal(context.Background(), g); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("CreateGoal() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCompleteGoalManually(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	id, err := svc.CreateGoal(ctx, newTestGoal())
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if err := svc.CompleteGoal(ctx, "user-1", id); err != nil {
		t.Fatalf("CompleteGoal() error = %v", err)
	}

	listed, _ := store.ListGoals(ctx, "user-1")
	if listed[0].Status != core.StatusCompleted || listed[0].Progress != 1.0 {
		t.Errorf("got status %q progress %v, want %q and 1.0",
			listed[0].Status, listed[0].Progress, core.StatusCompleted)
	}
}

func TestCompleteGoalRejectsMalformedID(t *testing.T) {
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	for _, id := range []string{"", "  ", "a/b"} {
		if err := svc.CompleteGoal(context.Background(), "user-1", id); !errors.Is(err, ledger.ErrInvalidGoalID) {
			t.Errorf("CompleteGoal(%q) error = %v, want ErrInvalidGoalID", id, err)
		}
	}
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	id, err := svc.CreateGoal(ctx, newTestGoal())
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if err := svc.DeleteGoal(ctx, "user-1", id); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}

	listed, _ := store.ListGoals(ctx, "user-1")
	if len(listed) != 0 {
		t.Errorf("expected no goals after delete, got %d", len(listed))
	}
}

func TestRefreshProgressCompletesFundedGoal(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewGoalService(store, goals.NewEngine(store, store))

	id, err := svc.CreateGoal(ctx, newTestGoal())
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	tx := newTestTransaction(core.KindSaving, 50_000)
	tx.OccurredAt = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.AppendTransaction(ctx, tx); err != nil {
		t.Fatalf("AppendTransaction() error = %v", err)
	}

	svc.RefreshProgress(ctx, "user-1")

	listed, _ := store.ListGoals(ctx, "user-1")
	if listed[0].ID != id {
		t.Fatalf("unexpected goal id %q", listed[0].ID)
	}
	if listed[0].Status != core.StatusCompleted || listed[0].Progress != 1.0 {
		t.Errorf("got status %q progress %v, want %q and 1.0",
			listed[0].Status, listed[0].Progress, core.StatusCompleted)
	}
}
