package menuitem

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type Repository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	FindAll(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, error)
	// Update and Delete re-apply the tenant predicate through the item's
	// subcategory; items carry no tenant column of their own.
	Update(ctx context.Context, item *model.MenuItem, restaurantID string) error
	Delete(ctx context.Context, id, restaurantID string) error
	Siblings(subcategoryID, restaurantID string) ordering.SiblingStore
}
