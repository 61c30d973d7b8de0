package usecase

import (
	"context"
	"fmt"

	"github.com/n3xa/n3xa/internal/domain"
	"github.com/n3xa/n3xa/internal/ports"
)

// CategoryUseCase serves the fixed category list
type CategoryUseCase struct {
	categoryRepo ports.CategoryRepository
}

func NewCategoryUseCase(categoryRepo ports.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// ListCategories returns the stored categories ordered by name
func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// SeedCategories inserts the ten fixed labels if missing
func (uc *CategoryUseCase) SeedCategories(ctx context.Context) error {
	if err := uc.categoryRepo.Seed(ctx, domain.CategoryNames()); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
