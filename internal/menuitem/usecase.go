package menuitem

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type UseCase interface {
	CreateMenuItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id, restaurantID string) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, input *dto.UpdateMenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id, restaurantID string) error
	ReorderMenuItem(ctx context.Context, id, restaurantID string, dir ordering.Direction) error
	// MoveMenuItem is the drag-drop renumber. A target in a different
	// subcategory is a cross-scope drag: silently ignored, zero writes.
	MoveMenuItem(ctx context.Context, id, targetID, restaurantID string) error
}
