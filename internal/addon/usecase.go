package addon

import (
	"context"

	"github.com/tavolo/menu-catalog-service/internal/addon/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type UseCase interface {
	CreateAddon(ctx context.Context, input *dto.CreateAddonInput) (*model.Addon, error)
	GetAddon(ctx context.Context, id, restaurantID string) (*model.Addon, error)
	ListAddons(ctx context.Context, filters *dto.AddonFilters) ([]model.Addon, error)
	UpdateAddon(ctx context.Context, input *dto.UpdateAddonInput) (*model.Addon, error)
	DeleteAddon(ctx context.Context, id, restaurantID string) error
	ReorderAddon(ctx context.Context, id, restaurantID string, dir ordering.Direction) error
	MoveAddon(ctx context.Context, id, targetID, restaurantID string) error
}
