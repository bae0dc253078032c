// Package sqlite is the local single-file ledger adapter.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

type Repository struct {
	db *sql.DB
}

var _ ledger.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, kind, occurred_at, title, amount_cents, description, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.UserID, string(t.Kind), t.OccurredAt.Unix(), t.Title, t.Amount.Cents, t.Description, t.Category)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	return id, nil
}

func (r *Repository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx, `
		SELECT id, user_id, kind, occurred_at, title, amount_cents, description, category
		FROM transactions WHERE user_id = ? ORDER BY occurred_at, id`, userID)
}

func (r *Repository) ListTransactionsByKind(ctx context.Context, userID string, kind core.Kind) ([]core.Transaction, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}
	// Kind matching is case-insensitive across the ledger.
	return r.queryTransactions(ctx, `
		SELECT id, user_id, kind, occurred_at, title, amount_cents, description, category
		FROM transactions WHERE user_id = ? AND kind = ? COLLATE NOCASE
		ORDER BY occurred_at, id`, userID, string(kind))
}

func (r *Repository) TransactionsInWindow(ctx context.Context, userID string, w ledger.TransactionWindow) ([]core.Transaction, error) {
	return r.queryTransactions(ctx, `
		SELECT id, user_id, kind, occurred_at, title, amount_cents, description, category
		FROM transactions
		WHERE user_id = ? AND kind = ? COLLATE NOCASE AND occurred_at >= ? AND occurred_at <= ?
		ORDER BY occurred_at, id`,
		userID, string(w.Kind), w.From.Unix(), w.To.Unix())
}

func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res)
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t          core.Transaction
			kind       string
			occurredAt int64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &occurredAt, &t.Title,
			&t.Amount.Cents, &t.Description, &t.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.Kind(kind)
		t.OccurredAt = time.Unix(occurredAt, 0).UTC()
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) AppendGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	status := g.Status
	if status == "" {
		status = core.StatusInProgress
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, category, kind, target_cents, deadline, created_at, status, progress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, g.UserID, g.Category, string(g.Kind), g.Target.Cents,
		g.Deadline.Unix(), g.CreatedAt.Unix(), string(status), g.Progress)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}

	return id, nil
}

func (r *Repository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, kind, target_cents, deadline, created_at, status, progress
		FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var gs []core.Goal
	for rows.Next() {
		var (
			g                   core.Goal
			kind, status        string
			deadline, createdAt int64
		)
		if err := rows.Scan(&g.ID, &g.UserID, &g.Category, &kind, &g.Target.Cents,
			&deadline, &createdAt, &status, &g.Progress); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Kind = core.Kind(kind)
		g.Status = core.GoalStatus(status)
		g.Deadline = time.Unix(deadline, 0).UTC()
		g.CreatedAt = time.Unix(createdAt, 0).UTC()
		gs = append(gs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return gs, nil
}

func (r *Repository) UpdateGoalProgress(ctx context.Context, userID, goalID string, progress float64) error {
	return r.updateGoal(ctx, userID, goalID,
		`UPDATE goals SET progress = ? WHERE user_id = ? AND id = ?`, progress)
}

func (r *Repository) UpdateGoalStatus(ctx context.Context, userID, goalID string, status core.GoalStatus) error {
	return r.updateGoal(ctx, userID, goalID,
		`UPDATE goals SET status = ? WHERE user_id = ? AND id = ?`, string(status))
}

func (r *Repository) CompleteGoal(ctx context.Context, userID, goalID string) error {
	return r.updateGoal(ctx, userID, goalID,
		`UPDATE goals SET status = ?, progress = 1 WHERE user_id = ? AND id = ?`,
		string(core.StatusCompleted))
}

func (r *Repository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, goalID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireAffected(res)
}

func (r *Repository) updateGoal(ctx context.Context, userID, goalID, query string, value any) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	res, err := r.db.ExecContext(ctx, query, value, userID, goalID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireAffected(res)
}

func (r *Repository) AppendCategory(ctx context.Context, c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, budget_cents) VALUES (?, ?, ?, ?)`,
		id, c.UserID, c.Name, c.Budget.Cents)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}

	return id, nil
}

func (r *Repository) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, budget_cents FROM categories
		WHERE user_id = ? ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cs []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Budget.Cents); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cs = append(cs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cs, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	var p core.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, email, total_funds_cents, photo_url
		FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.DisplayName, &p.Email, &p.TotalFunds.Cents, &p.PhotoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

func (r *Repository) PutProfile(ctx context.Context, p core.Profile) error {
	if p.UserID == "" {
		return core.ErrEmptyUser
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, email, total_funds_cents, photo_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			email = excluded.email,
			total_funds_cents = excluded.total_funds_cents,
			photo_url = excluded.photo_url`,
		p.UserID, p.DisplayName, p.Email, p.TotalFunds.Cents, p.PhotoURL)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *Repository) AdjustFunds(ctx context.Context, userID string, deltaCents int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET total_funds_cents = total_funds_cents + ?
		WHERE user_id = ?`, deltaCents, userID)
	if err != nil {
		return fmt.Errorf("adjust funds: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}
