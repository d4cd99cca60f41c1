package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/menuitem"
	"github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/storage"
	"github.com/tavolo/menu-catalog-service/internal/translate"
)

type menuItemUseCase struct {
	repo       menuitem.Repository
	guard      *guard.Guard
	engine     *ordering.Engine
	notifier   notifier.Publisher
	storage    storage.Uploader     // optional
	translator translate.Translator // optional
	logger     *zap.Logger
}

func NewMenuItemUseCase(
	repo menuitem.Repository,
	g *guard.Guard,
	engine *ordering.Engine,
	n notifier.Publisher,
	store storage.Uploader,
	translator translate.Translator,
	logger *zap.Logger,
) menuitem.UseCase {
	return &menuItemUseCase{
		repo:       repo,
		guard:      g,
		engine:     engine,
		notifier:   n,
		storage:    store,
		translator: translator,
		logger:     logger,
	}
}

func (uc *menuItemUseCase) CreateMenuItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sub, err := uc.guard.VerifySubcategory(ctx, input.SubcategoryID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	sortOrder, err := ordering.NextSortOrder(ctx, uc.repo.Siblings(sub.ID, input.RestaurantID))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.MenuItem{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubcategoryID: sub.ID,
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
		ModelGLBURL:   optional(input.ModelGLBURL),
		ModelUSDZURL:  optional(input.ModelUSDZURL),
		IsSpecial:     input.IsSpecial,
		SortOrder:     sortOrder,
		Status:        model.StatusActive,
	}
	uc.fillLocales(ctx, item)

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, input.RestaurantID)
	return item, nil
}

func (uc *menuItemUseCase) GetMenuItem(ctx context.Context, id, restaurantID string) (*model.MenuItem, error) {
	item, err := uc.guard.VerifyMenuItem(ctx, id, restaurantID)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			// Reads report missing-or-foreign rows as not found.
			return nil, apperr.NotFoundf("menu item %s not found", id)
		}
		return nil, err
	}
	return item, nil
}

func (uc *menuItemUseCase) ListMenuItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *menuItemUseCase) UpdateMenuItem(ctx context.Context, input *dto.UpdateMenuItemInput) (*model.MenuItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := uc.guard.VerifyMenuItem(ctx, input.ID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	oldImage := item.ImageURL

	item.Title = input.Title
	item.TitleEN = optional(input.TitleEN)
	item.TitleIT = optional(input.TitleIT)
	item.TitleES = optional(input.TitleES)
	item.Description = optional(input.Description)
	item.DescriptionEN = optional(input.DescriptionEN)
	item.DescriptionIT = optional(input.DescriptionIT)
	item.DescriptionES = optional(input.DescriptionES)
	item.Price = input.Price
	item.ImageURL = optional(input.ImageURL)
	item.ModelGLBURL = optional(input.ModelGLBURL)
	item.ModelUSDZURL = optional(input.ModelUSDZURL)
	item.IsSpecial = input.IsSpecial
	if input.Status != "" {
		item.Status = input.Status
	}
	item.UpdatedAt = time.Now()
	uc.fillLocales(ctx, item)

	if err := uc.repo.Update(ctx, item, input.RestaurantID); err != nil {
		return nil, err
	}

	uc.removeReplacedImage(oldImage, item.ImageURL)
	uc.publishInvalidation(ctx, input.RestaurantID)
	return item, nil
}

func (uc *menuItemUseCase) DeleteMenuItem(ctx context.Context, id, restaurantID string) error {
	item, err := uc.guard.VerifyMenuItem(ctx, id, restaurantID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, item.ID, restaurantID); err != nil {
		return err
	}

	uc.removeReplacedImage(item.ImageURL, nil)
	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *menuItemUseCase) ReorderMenuItem(ctx context.Context, id, restaurantID string, dir ordering.Direction) error {
	item, err := uc.guard.VerifyMenuItem(ctx, id, restaurantID)
	if err != nil {
		return err
	}

	if err := uc.engine.Swap(ctx, uc.repo.Siblings(item.SubcategoryID, restaurantID), id, dir); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *menuItemUseCase) MoveMenuItem(ctx context.Context, id, targetID, restaurantID string) error {
	item, err := uc.guard.VerifyMenuItem(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	target, err := uc.guard.VerifyMenuItem(ctx, targetID, restaurantID)
	if err != nil {
		return err
	}

	// Cross-parent drags never reach the store: silent no-op, zero writes.
	if item.SubcategoryID != target.SubcategoryID {
		uc.logger.Debug("ignoring cross-scope item drag",
			zap.String("id", id), zap.String("target_id", targetID))
		return nil
	}

	store := uc.repo.Siblings(item.SubcategoryID, restaurantID)
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
		return apperr.NotFoundf("menu item %s not found in scope", targetID)
	}

	if _, err := uc.engine.Move(ctx, store, id, toIndex); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

// removeReplacedImage deletes an image that is no longer referenced.
// Best-effort secondary work: a failure is logged and never fails the
// primary operation.
func (uc *menuItemUseCase) removeReplacedImage(old, current *string) {
	if uc.storage == nil || old == nil {
		return
	}
	if current != nil && *current == *old {
		return
	}
	go func(name string) {
		if err := uc.storage.Remove(context.Background(), name); err != nil {
			uc.logger.Warn("failed to remove replaced image",
				zap.String("image", name), zap.Error(err))
		}
	}(*old)
}

func (uc *menuItemUseCase) fillLocales(ctx context.Context, item *model.MenuItem) {
	if uc.translator == nil {
		return
	}
	fill := func(target **string, text, locale string) {
		if *target != nil || text == "" {
			return
		}
		translated, err := uc.translator.Translate(ctx, text, "auto", locale)
		if err != nil {
			uc.logger.Warn("locale fill failed",
				zap.String("locale", locale), zap.Error(err))
			return
		}
		*target = &translated
	}
	fill(&item.TitleEN, item.Title, "en")
	fill(&item.TitleIT, item.Title, "it")
	fill(&item.TitleES, item.Title, "es")
	if item.Description != nil {
		fill(&item.DescriptionEN, *item.Description, "en")
		fill(&item.DescriptionIT, *item.Description, "it")
		fill(&item.DescriptionES, *item.Description, "es")
	}
}

func (uc *menuItemUseCase) publishInvalidation(ctx context.Context, restaurantID string) {
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
