package assistant

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

const (
	maxConversations = 256
	conversationTTL  = time.Hour
)

// Assistant manages one conversation per user and can gather the
// financial context straight from the ledger. Idle conversations are
// evicted after conversationTTL.
type Assistant struct {
	client Completer
	store  ledger.Store
	convs  *cache.LRU[*Conversation]
}

func New(client Completer, store ledger.Store) *Assistant {
	return &Assistant{
		client: client,
		store:  store,
		convs:  cache.NewLRU[*Conversation](maxConversations, conversationTTL),
	}
}

// Conversation returns the user's conversation, creating it on first
// use.
func (a *Assistant) Conversation(userID string) *Conversation {
	return a.convs.GetOrSet(userID, func() *Conversation {
		return NewConversation(a.client)
	})
}

// Ask submits a question with a caller-provided context snapshot.
func (a *Assistant) Ask(ctx context.Context, userID, question, financialContext string) string {
	return a.Conversation(userID).Submit(ctx, question, financialContext)
}

// AskWithFullContext reads the user's profile, goals, transactions and
// categories from the ledger, builds the snapshot inline and submits
// the question. A missing profile degrades to an empty context; list
// read failures degrade to empty lists, so the chat stays usable when
// the store is unhealthy.
func (a *Assistant) AskWithFullContext(ctx context.Context, userID, question string) string {
	profile, err := a.store.GetProfile(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "Profile unavailable, asking without context",
			"user_id", userID, "error", err)
		return a.Ask(ctx, userID, question, "")
	}

	var (
		goals []core.Goal
		txs   []core.Transaction
		cats  []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if goals, err = a.store.ListGoals(gctx, userID); err != nil {
			slog.WarnContext(gctx, "Goal list unavailable for context", "user_id", userID, "error", err)
			goals = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if txs, err = a.store.ListTransactions(gctx, userID); err != nil {
			slog.WarnContext(gctx, "Transaction list unavailable for context", "user_id", userID, "error", err)
			txs = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cats, err = a.store.ListCategories(gctx, userID); err != nil {
			slog.WarnContext(gctx, "Category list unavailable for context", "user_id", userID, "error", err)
			cats = nil
		}
		return nil
	})
	_ = g.Wait()

	// The snapshot keeps the chronological tail, so order by date first.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].OccurredAt.Before(txs[j].OccurredAt)
	})

	return a.Ask(ctx, userID, question, Summarize(profile, txs, cats, goals))
}
