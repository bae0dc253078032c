package memory

import (
	"context"
	"testing"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

func TestAppendAndListTransactions(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.AppendTransaction(ctx, core.Transaction{
		UserID:     "u1",
		Kind:       core.KindSaving,
		OccurredAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Title:      "nomina",
		Amount:     core.Money{Cents: 100000},
		Category:   "Trabajo",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatal("expected store-assigned id")
	}

	list, err := s.ListTransactions(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %d items", err, len(list))
	}
	if list[0].ID != id {
		t.Fatalf("listed id %q != assigned %q", list[0].ID, id)
	}

	other, _ := s.ListTransactions(ctx, "u2")
	if len(other) != 0 {
		t.Fatal("transactions must be scoped per user")
	}
}

func TestAppendTransactionRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.AppendTransaction(context.Background(), core.Transaction{UserID: "u1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestTransactionsInWindow(t *testing.T) {
	s := New()
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	add := func(kind core.Kind, at time.Time) {
		_, err := s.AppendTransaction(ctx, core.Transaction{
			UserID: "u1", Kind: kind, OccurredAt: at,
			Title: "x", Amount: core.Money{Cents: 100}, Category: "c",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	add(core.KindSaving, t0)                   // on lower bound, included
	add(core.KindSaving, t0.AddDate(0, 0, 30)) // on upper bound, included
	add(core.KindSaving, t0.AddDate(0, 0, 31)) // outside
	add(core.KindExpense, t0.AddDate(0, 0, 5)) // wrong kind

	got, err := s.TransactionsInWindow(ctx, "u1", ledger.TransactionWindow{
		Kind: core.KindSaving, From: t0, To: t0.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions in window, got %d", len(got))
	}
}

func TestListTransactionsByKindIsCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.AppendTransaction(ctx, core.Transaction{
		UserID: "u1", Kind: core.KindExpense,
		OccurredAt: time.Now(), Title: "cine",
		Amount: core.Money{Cents: 900}, Category: "Ocio",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.ListTransactionsByKind(ctx, "u1", core.Kind("gasto"))
	if err != nil || len(got) != 1 {
		t.Fatalf("expected 1 match, got %d (%v)", len(got), err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	id, err := s.AppendGoal(ctx, core.Goal{
		UserID: "u1", Category: "Comida", Kind: core.KindSaving,
		Target: core.Money{Cents: 10000}, CreatedAt: now, Deadline: now.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("append goal: %v", err)
	}

	goals, _ := s.ListGoals(ctx, "u1")
	if len(goals) != 1 || goals[0].Status != core.StatusInProgress {
		t.Fatalf("new goal should be in progress: %+v", goals)
	}

	if err := s.UpdateGoalProgress(ctx, "u1", id, 0.4); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if err := s.CompleteGoal(ctx, "u1", id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	goals, _ = s.ListGoals(ctx, "u1")
	if goals[0].Status != core.StatusCompleted || goals[0].Progress != 1.0 {
		t.Fatalf("expected completed goal with progress 1, got %+v", goals[0])
	}

	if err := s.DeleteGoal(ctx, "u1", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteGoal(ctx, "u1", id); err != ledger.ErrNotFound {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestGoalWritesRejectMalformedIDs(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.UpdateGoalProgress(ctx, "u1", "", 0.5); err != ledger.ErrInvalidGoalID {
		t.Fatalf("blank id: got %v", err)
	}
	if err := s.CompleteGoal(ctx, "u1", "a/b"); err != ledger.ErrInvalidGoalID {
		t.Fatalf("id with separator: got %v", err)
	}
}

func TestProfileFunds(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.PutProfile(ctx, core.Profile{UserID: "u1", DisplayName: "Eva", TotalFunds: core.Money{Cents: 5000}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.AdjustFunds(ctx, "u1", -1200); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	p, err := s.GetProfile(ctx, "u1")
	if err != nil || p.TotalFunds.Cents != 3800 {
		t.Fatalf("got %+v, %v", p, err)
	}
	if _, err := s.GetProfile(ctx, "nadie"); err != ledger.ErrNotFound {
		t.Fatalf("missing profile: got %v", err)
	}
}
