// Package firestore is the cloud ledger adapter. Documents live under
// usuarios/{uid} with the transacciones, metas and categorias
// subcollections the mobile clients read.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

const (
	usersCollection        = "usuarios"
	transactionsCollection = "transacciones"
	goalsCollection        = "metas"
	categoriesCollection   = "categorias"
)

type Config struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON []byte
}

type Store struct {
	client *firestore.Client
}

var _ ledger.Store = (*Store)(nil)

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	switch {
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Documents keep the Spanish field names the mobile apps were built
// against. Amounts are stored in cents to avoid float drift.
type transactionDoc struct {
	Kind        string    `firestore:"tipo"`
	OccurredAt  time.Time `firestore:"fecha"`
	Title       string    `firestore:"titulo"`
	AmountCents int64     `firestore:"cantidad"`
	Description string    `firestore:"descripcion"`
	Category    string    `firestore:"categoria"`
}

type goalDoc struct {
	Category    string    `firestore:"categoria"`
	Kind        string    `firestore:"tipo"`
	TargetCents int64     `firestore:"cantidad"`
	Deadline    time.Time `firestore:"fechaLimite"`
	CreatedAt   time.Time `firestore:"fechaCreacion"`
	Status      string    `firestore:"estado"`
	Progress    float64   `firestore:"progreso"`
}

type categoryDoc struct {
	Name        string `firestore:"nombre"`
	BudgetCents int64  `firestore:"presupuesto"`
}

type profileDoc struct {
	DisplayName     string `firestore:"nombreCompleto"`
	Email           string `firestore:"correo"`
	TotalFundsCents int64  `firestore:"dineroTotal"`
	PhotoURL        string `firestore:"fotoPerfil"`
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID)
}

func (s *Store) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	ref, _, err := s.userDoc(t.UserID).Collection(transactionsCollection).Add(ctx, transactionDoc{
		Kind:        string(t.Kind),
		OccurredAt:  t.OccurredAt,
		Title:       t.Title,
		AmountCents: t.Amount.Cents,
		Description: t.Description,
		Category:    t.Category,
	})
	if err != nil {
		return "", fmt.Errorf("add transaction: %w", err)
	}

	return ref.ID, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	docs, err := s.userDoc(userID).Collection(transactionsCollection).
		OrderBy("fecha", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]core.Transaction, 0, len(docs))
	for _, doc := range docs {
		var d transactionDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode transaction %s: %w", doc.Ref.ID, err)
		}
		txs = append(txs, d.toTransaction(doc.Ref.ID, userID))
	}
	return txs, nil
}

func (s *Store) ListTransactionsByKind(ctx context.Context, userID string, kind core.Kind) ([]core.Transaction, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}

	// Kind matching is case-insensitive across the ledger, and
	// Firestore cannot express that in a query, so filter here.
	txs, err := s.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []core.Transaction
	for _, t := range txs {
		if t.Kind.Matches(kind) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) TransactionsInWindow(ctx context.Context, userID string, w ledger.TransactionWindow) ([]core.Transaction, error) {
	docs, err := s.userDoc(userID).Collection(transactionsCollection).
		Where("fecha", ">=", w.From).
		Where("fecha", "<=", w.To).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query transaction window: %w", err)
	}

	var txs []core.Transaction
	for _, doc := range docs {
		var d transactionDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode transaction %s: %w", doc.Ref.ID, err)
		}
		t := d.toTransaction(doc.Ref.ID, userID)
		if t.Kind.Matches(w.Kind) {
			txs = append(txs, t)
		}
	}
	return txs, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	ref := s.userDoc(userID).Collection(transactionsCollection).Doc(id)
	if err := s.requireExists(ctx, ref); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *Store) AppendGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	status := g.Status
	if status == "" {
		status = core.StatusInProgress
	}

	ref, _, err := s.userDoc(g.UserID).Collection(goalsCollection).Add(ctx, goalDoc{
		Category:    g.Category,
		Kind:        string(g.Kind),
		TargetCents: g.Target.Cents,
		Deadline:    g.Deadline,
		CreatedAt:   g.CreatedAt,
		Status:      string(status),
		Progress:    g.Progress,
	})
	if err != nil {
		return "", fmt.Errorf("add goal: %w", err)
	}

	return ref.ID, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	docs, err := s.userDoc(userID).Collection(goalsCollection).
		OrderBy("fechaCreacion", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	gs := make([]core.Goal, 0, len(docs))
	for _, doc := range docs {
		var d goalDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode goal %s: %w", doc.Ref.ID, err)
		}
		gs = append(gs, core.Goal{
			ID:        doc.Ref.ID,
			UserID:    userID,
			Category:  d.Category,
			Kind:      core.Kind(d.Kind),
			Target:    core.Money{Cents: d.TargetCents},
			Deadline:  d.Deadline,
			CreatedAt: d.CreatedAt,
			Status:    core.GoalStatus(d.Status),
			Progress:  d.Progress,
		})
	}
	return gs, nil
}

func (s *Store) UpdateGoalProgress(ctx context.Context, userID, goalID string, progress float64) error {
	return s.updateGoal(ctx, userID, goalID, []firestore.Update{
		{Path: "progreso", Value: progress},
	})
}

func (s *Store) UpdateGoalStatus(ctx context.Context, userID, goalID string, status core.GoalStatus) error {
	return s.updateGoal(ctx, userID, goalID, []firestore.Update{
		{Path: "estado", Value: string(status)},
	})
}

func (s *Store) CompleteGoal(ctx context.Context, userID, goalID string) error {
	return s.updateGoal(ctx, userID, goalID, []firestore.Update{
		{Path: "estado", Value: string(core.StatusCompleted)},
		{Path: "progreso", Value: 1.0},
	})
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	ref := s.userDoc(userID).Collection(goalsCollection).Doc(goalID)
	if err := s.requireExists(ctx, ref); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *Store) updateGoal(ctx context.Context, userID, goalID string, updates []firestore.Update) error {
	if !ledger.ValidGoalID(goalID) {
		return ledger.ErrInvalidGoalID
	}
	_, err := s.userDoc(userID).Collection(goalsCollection).Doc(goalID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ledger.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

func (s *Store) AppendCategory(ctx context.Context, c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	ref, _, err := s.userDoc(c.UserID).Collection(categoriesCollection).Add(ctx, categoryDoc{
		Name:        c.Name,
		BudgetCents: c.Budget.Cents,
	})
	if err != nil {
		return "", fmt.Errorf("add category: %w", err)
	}

	return ref.ID, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	docs, err := s.userDoc(userID).Collection(categoriesCollection).
		OrderBy("nombre", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	cs := make([]core.Category, 0, len(docs))
	for _, doc := range docs {
		var d categoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", doc.Ref.ID, err)
		}
		cs = append(cs, core.Category{
			ID:     doc.Ref.ID,
			UserID: userID,
			Name:   d.Name,
			Budget: core.Money{Cents: d.BudgetCents},
		})
	}
	return cs, nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	ref := s.userDoc(userID).Collection(categoriesCollection).Doc(id)
	if err := s.requireExists(ctx, ref); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	snap, err := s.userDoc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return core.Profile{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	var d profileDoc
	if err := snap.DataTo(&d); err != nil {
		return core.Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	return core.Profile{
		UserID:      userID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		TotalFunds:  core.Money{Cents: d.TotalFundsCents},
		PhotoURL:    d.PhotoURL,
	}, nil
}

func (s *Store) PutProfile(ctx context.Context, p core.Profile) error {
	if p.UserID == "" {
		return core.ErrEmptyUser
	}

	_, err := s.userDoc(p.UserID).Set(ctx, profileDoc{
		DisplayName:     p.DisplayName,
		Email:           p.Email,
		TotalFundsCents: p.TotalFunds.Cents,
		PhotoURL:        p.PhotoURL,
	})
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

func (s *Store) AdjustFunds(ctx context.Context, userID string, deltaCents int64) error {
	ref := s.userDoc(userID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var d profileDoc
		if err := snap.DataTo(&d); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "dineroTotal", Value: d.TotalFundsCents + deltaCents},
		})
	})
	if status.Code(err) == codes.NotFound {
		return ledger.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("adjust funds: %w", err)
	}
	return nil
}

func (s *Store) requireExists(ctx context.Context, ref *firestore.DocumentRef) error {
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return ledger.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	return nil
}

func (d transactionDoc) toTransaction(id, userID string) core.Transaction {
	return core.Transaction{
		ID:          id,
		UserID:      userID,
		Kind:        core.Kind(d.Kind),
		OccurredAt:  d.OccurredAt,
		Title:       d.Title,
		Amount:      core.Money{Cents: d.AmountCents},
		Description: d.Description,
		Category:    d.Category,
	}
}
