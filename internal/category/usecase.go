package category

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/category/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id, restaurantID string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id, restaurantID string) error
	ReorderCategory(ctx context.Context, id, restaurantID string, dir ordering.Direction) error
	// MoveCategory repositions id at targetID's index and renumbers the
	// whole scope (drag and drop).
	MoveCategory(ctx context.Context, id, targetID, restaurantID string) error
}
