package core

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Ahorro", KindSaving, true},
		{"gasto", KindExpense, true},
		{"  AHORRO ", KindSaving, true},
		{"ingreso", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: got (%q, %v), want %q", i, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestKindMatches(t *testing.T) {
	if !KindSaving.Matches(Kind(" ahorro ")) {
		t.Fatal("expected case-insensitive match")
	}
	if KindSaving.Matches(KindExpense) {
		t.Fatal("saving should not match expense")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		UserID:     "u1",
		Kind:       KindSaving,
		OccurredAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Title:      "paga extra",
		Amount:     Money{Cents: 4000},
		Category:   "Comida",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Kind: KindSaving, OccurredAt: good.OccurredAt, Title: "a", Amount: Money{Cents: 1}, Category: "c"},       // no user
		{UserID: "u", Kind: "Ingreso", OccurredAt: good.OccurredAt, Title: "a", Amount: Money{Cents: 1}, Category: "c"},
		{UserID: "u", Kind: KindSaving, Title: "a", Amount: Money{Cents: 1}, Category: "c"},                        // zero date
		{UserID: "u", Kind: KindSaving, OccurredAt: good.OccurredAt, Title: " ", Amount: Money{Cents: 1}, Category: "c"},
		{UserID: "u", Kind: KindSaving, OccurredAt: good.OccurredAt, Title: "a", Amount: Money{Cents: 0}, Category: "c"},
		{UserID: "u", Kind: KindSaving, OccurredAt: good.OccurredAt, Title: "a", Amount: Money{Cents: 1}, Category: ""},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	good := Goal{
		UserID:    "u1",
		Category:  "Comida",
		Kind:      KindSaving,
		Target:    Money{Cents: 10000},
		CreatedAt: now,
		Deadline:  now.AddDate(0, 1, 0),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zeroTarget := good
	zeroTarget.Target = Money{}
	if err := zeroTarget.Validate(); err != ErrInvalidAmount {
		t.Fatalf("zero target: got %v, want ErrInvalidAmount", err)
	}

	backwards := good
	backwards.Deadline = now.AddDate(0, 0, -1)
	if err := backwards.Validate(); err != ErrInvalidDeadline {
		t.Fatalf("deadline before creation: got %v, want ErrInvalidDeadline", err)
	}

	noDeadline := good
	noDeadline.Deadline = time.Time{}
	if err := noDeadline.Validate(); err != ErrInvalidDeadline {
		t.Fatalf("zero deadline: got %v, want ErrInvalidDeadline", err)
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{UserID: "u", Name: "Ocio"}).Validate(); err != nil {
		t.Fatalf("zero budget should be allowed, got %v", err)
	}
	if err := (Category{UserID: "u", Name: ""}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := (Category{UserID: "", Name: "Ocio"}).Validate(); err == nil {
		t.Fatal("expected error for empty user")
	}
}
