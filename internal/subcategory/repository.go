package subcategory

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/subcategory/dto"
)

type Repository interface {
	Create(ctx context.Context, sub *model.Subcategory) error
	FindByID(ctx context.Context, id string) (*model.Subcategory, error)
	FindAll(ctx context.Context, filters *dto.SubcategoryFilters) ([]model.Subcategory, error)
	Update(ctx context.Context, sub *model.Subcategory) error
	// Delete cascades to the subcategory's menu items and add-ons.
	Delete(ctx context.Context, id, restaurantID string) error
	// Siblings adapts one category's subcategory list to the ordering engine.
	Siblings(categoryID, restaurantID string) ordering.SiblingStore
}
