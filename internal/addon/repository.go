package addon

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/addon/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type Repository interface {
	Create(ctx context.Context, addon *model.Addon) error
	FindByID(ctx context.Context, id string) (*model.Addon, error)
	FindAll(ctx context.Context, filters *dto.AddonFilters) ([]model.Addon, error)
	Update(ctx context.Context, addon *model.Addon, restaurantID string) error
	Delete(ctx context.Context, id, restaurantID string) error
	// Siblings scopes by subcategory when set, otherwise by category
	// (legacy rows). Global add-ons have no sibling scope.
	Siblings(subcategoryID, categoryID *string, restaurantID string) ordering.SiblingStore
}
