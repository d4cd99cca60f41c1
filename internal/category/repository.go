package category

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/category/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	// Delete cascades to the category's subcategories, their menu items and
	// add-ons, plus legacy add-ons attached directly to the category.
	Delete(ctx context.Context, id, restaurantID string) error
	// Siblings adapts one restaurant's category list to the ordering engine.
	Siblings(restaurantID string) ordering.SiblingStore
}
