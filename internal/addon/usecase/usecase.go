package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/addon"
	"github.com/tavolo/menu-catalog-service/internal/addon/dto"
	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

// globalAddonSortOrder is assigned to add-ons created without any parent.
// They do not compete for order with scoped add-ons; this is deliberate,
// not a bug.
const globalAddonSortOrder = 1

type addonUseCase struct {
	repo     addon.Repository
	guard    *guard.Guard
	engine   *ordering.Engine
	notifier notifier.Publisher
	logger   *zap.Logger
}

func NewAddonUseCase(
	repo addon.Repository,
	g *guard.Guard,
	engine *ordering.Engine,
	n notifier.Publisher,
	logger *zap.Logger,
) addon.UseCase {
	return &addonUseCase{
		repo:     repo,
		guard:    g,
		engine:   engine,
		notifier: n,
		logger:   logger,
	}
}

func (uc *addonUseCase) CreateAddon(ctx context.Context, input *dto.CreateAddonInput) (*model.Addon, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var subcategoryID, categoryID *string
	sortOrder := globalAddonSortOrder

	switch {
	case input.SubcategoryID != "":
		sub, err := uc.guard.VerifySubcategory(ctx, input.SubcategoryID, input.RestaurantID)
		if err != nil {
			return nil, err
		}
		subcategoryID = &sub.ID
		sortOrder, err = ordering.NextSortOrder(ctx, uc.repo.Siblings(subcategoryID, nil, input.RestaurantID))
		if err != nil {
			return nil, err
		}
	case input.CategoryID != "":
		cat, err := uc.guard.VerifyCategory(ctx, input.CategoryID, input.RestaurantID)
		if err != nil {
			return nil, err
		}
		categoryID = &cat.ID
		sortOrder, err = ordering.NextSortOrder(ctx, uc.repo.Siblings(nil, categoryID, input.RestaurantID))
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	a := &model.Addon{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubcategoryID: subcategoryID,
		CategoryID:    categoryID,
		RestaurantID:  &input.RestaurantID,
		Title:         input.Title,
		TitleEN:       optional(input.TitleEN),
		TitleIT:       optional(input.TitleIT),
		TitleES:       optional(input.TitleES),
		Description:   optional(input.Description),
		DescriptionEN: optional(input.DescriptionEN),
		DescriptionIT: optional(input.DescriptionIT),
		DescriptionES: optional(input.DescriptionES),
		Price:         input.Price,
		ImageURL:      optional(input.ImageURL),
		SortOrder:     sortOrder,
		Status:        model.StatusActive,
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, input.RestaurantID)
	return a, nil
}

func (uc *addonUseCase) GetAddon(ctx context.Context, id, restaurantID string) (*model.Addon, error) {
	a, err := uc.guard.VerifyAddon(ctx, id, restaurantID)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			return nil, apperr.NotFoundf("addon %s not found", id)
		}
		return nil, err
	}
	return a, nil
}

func (uc *addonUseCase) ListAddons(ctx context.Context, filters *dto.AddonFilters) ([]model.Addon, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *addonUseCase) UpdateAddon(ctx context.Context, input *dto.UpdateAddonInput) (*model.Addon, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	a, err := uc.guard.VerifyAddon(ctx, input.ID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	a.Title = input.Title
	a.TitleEN = optional(input.TitleEN)
	a.TitleIT = optional(input.TitleIT)
	a.TitleES = optional(input.TitleES)
	a.Description = optional(input.Description)
	a.DescriptionEN = optional(input.DescriptionEN)
	a.DescriptionIT = optional(input.DescriptionIT)
	a.DescriptionES = optional(input.DescriptionES)
	a.Price = input.Price
	a.ImageURL = optional(input.ImageURL)
	if input.Status != "" {
		a.Status = input.Status
	}
	a.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, a, input.RestaurantID); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, input.RestaurantID)
	return a, nil
}

func (uc *addonUseCase) DeleteAddon(ctx context.Context, id, restaurantID string) error {
	a, err := uc.guard.VerifyAddon(ctx, id, restaurantID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, a.ID, restaurantID); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *addonUseCase) ReorderAddon(ctx context.Context, id, restaurantID string, dir ordering.Direction) error {
	a, err := uc.guard.VerifyAddon(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	if a.SubcategoryID == nil && a.CategoryID == nil {
		// Global add-ons hold no sibling scope to reorder within.
		return nil
	}

	if err := uc.engine.Swap(ctx, uc.repo.Siblings(a.SubcategoryID, a.CategoryID, restaurantID), id, dir); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *addonUseCase) MoveAddon(ctx context.Context, id, targetID, restaurantID string) error {
	a, err := uc.guard.VerifyAddon(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	target, err := uc.guard.VerifyAddon(ctx, targetID, restaurantID)
	if err != nil {
		return err
	}

	if !sameScope(a, target) {
		uc.logger.Debug("ignoring cross-scope addon drag",
			zap.String("id", id), zap.String("target_id", targetID))
		return nil
	}
	if a.SubcategoryID == nil && a.CategoryID == nil {
		return nil
	}

	store := uc.repo.Siblings(a.SubcategoryID, a.CategoryID, restaurantID)
	siblings, err := store.Siblings(ctx)
	if err != nil {
		return err
	}
	toIndex := -1
	for i := range siblings {
		if siblings[i].ID == target.ID {
			toIndex = i
			break
		}
	}
	if toIndex < 0 {
		return apperr.NotFoundf("addon %s not found in scope", targetID)
	}

	if _, err := uc.engine.Move(ctx, store, id, toIndex); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func sameScope(a, b *model.Addon) bool {
	return equalRef(a.SubcategoryID, b.SubcategoryID) && equalRef(a.CategoryID, b.CategoryID)
}

func equalRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (uc *addonUseCase) publishInvalidation(ctx context.Context, restaurantID string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Publish(ctx, restaurantID); err != nil {
		uc.logger.Warn("failed to publish catalog invalidation",
			zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
