package services

import (
	"context"
	"fmt"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

// CategoryService manages the user's spending categories.
type CategoryService struct {
	store ledger.Store
}

func NewCategoryService(store ledger.Store) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) CreateCategory(ctx context.Context, c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("validate category: %w", err)
	}

	id, err := s.store.AppendCategory(ctx, c)
	if err != nil {
		return "", fmt.Errorf("save category: %w", err)
	}

	return id, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
