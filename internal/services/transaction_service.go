// Package services orchestrates ledger writes, profile funds updates
// and the reconcile message bus behind single-call operations.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

// ReconcilePublisher pushes reconcile triggers to the worker. The AMQP
// client satisfies it; tests substitute a fake.
type ReconcilePublisher interface {
	PublishReconcile(ctx context.Context, userID, reason string) error
}

// TransactionService writes transactions to the ledger, keeps the
// profile's total funds in step and notifies the reconcile worker.
type TransactionService struct {
	store     ledger.Store
	publisher ReconcilePublisher
}

func NewTransactionService(store ledger.Store, publisher ReconcilePublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// CreateTransaction validates and stores the transaction, then adjusts
// the user's funds and publishes a reconcile message. The ledger write
// is authoritative; funds and messaging failures never undo it.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}

	id, err := s.store.AppendTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if err := s.store.AdjustFunds(ctx, t.UserID, fundsDelta(t)); err != nil {
		slog.ErrorContext(ctx, "Failed to adjust funds",
			"user_id", t.UserID, "id", id, "error", err)
		// Don't fail the request - transaction is saved
	}

	if err := s.publishReconcile(ctx, t.UserID, amqp.ReasonCreate); err != nil {
		slog.ErrorContext(ctx, "Failed to publish reconcile message",
			"user_id", t.UserID, "id", id, "error", err)
	}

	return id, nil
}

// DeleteTransaction removes the transaction and reverts its effect on
// the user's funds.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	t, err := s.findTransaction(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.store.AdjustFunds(ctx, userID, -fundsDelta(t)); err != nil {
		slog.ErrorContext(ctx, "Failed to revert funds",
			"user_id", userID, "id", id, "error", err)
	}

	if err := s.publishReconcile(ctx, userID, amqp.ReasonDelete); err != nil {
		slog.ErrorContext(ctx, "Failed to publish reconcile message",
			"user_id", userID, "id", id, "error", err)
	}

	return nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *TransactionService) ListTransactionsByKind(ctx context.Context, userID string, kind core.Kind) ([]core.Transaction, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}
	return s.store.ListTransactionsByKind(ctx, userID, kind)
}

func (s *TransactionService) findTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}
	for _, t := range txs {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ledger.ErrNotFound
}

func (s *TransactionService) publishReconcile(ctx context.Context, userID, reason string) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping reconcile message")
		return nil
	}
	return s.publisher.PublishReconcile(ctx, userID, reason)
}

// fundsDelta is the signed effect of a transaction on total funds:
// savings add, expenses subtract.
func fundsDelta(t core.Transaction) int64 {
	if t.Kind.Matches(core.KindExpense) {
		return -t.Amount.Cents
	}
	return t.Amount.Cents
}
