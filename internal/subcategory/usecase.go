package subcategory

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/subcategory/dto"
)

type UseCase interface {
	CreateSubcategory(ctx context.Context, input *dto.CreateSubcategoryInput) (*model.Subcategory, error)
	GetSubcategory(ctx context.Context, id, restaurantID string) (*model.Subcategory, error)
	ListSubcategories(ctx context.Context, filters *dto.SubcategoryFilters) ([]model.Subcategory, error)
	UpdateSubcategory(ctx context.Context, input *dto.UpdateSubcategoryInput) (*model.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id, restaurantID string) error
	ReorderSubcategory(ctx context.Context, id, restaurantID string, dir ordering.Direction) error
	// MoveSubcategory is the drag-drop renumber. A target under a different
	// category is a cross-scope drag: silently ignored, zero writes.
	MoveSubcategory(ctx context.Context, id, targetID, restaurantID string) error
}
