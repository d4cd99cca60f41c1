package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/subcategory"
	"github.com/tavolo/menu-catalog-service/internal/subcategory/dto"
)

type subcategoryUseCase struct {
	repo     subcategory.Repository
	guard    *guard.Guard
	engine   *ordering.Engine
	notifier notifier.Publisher
	logger   *zap.Logger
}

func NewSubcategoryUseCase(
	repo subcategory.Repository,
	g *guard.Guard,
	engine *ordering.Engine,
	n notifier.Publisher,
	logger *zap.Logger,
) subcategory.UseCase {
	return &subcategoryUseCase{
		repo:     repo,
		guard:    g,
		engine:   engine,
		notifier: n,
		logger:   logger,
	}
}

func (uc *subcategoryUseCase) CreateSubcategory(ctx context.Context, input *dto.CreateSubcategoryInput) (*model.Subcategory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// The parent category must belong to the caller before anything is
	// created under it.
	cat, err := uc.guard.VerifyCategory(ctx, input.CategoryID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	sortOrder, err := ordering.NextSortOrder(ctx, uc.repo.Siblings(cat.ID, input.RestaurantID))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &model.Subcategory{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:    cat.ID,
		RestaurantID:  input.RestaurantID,
		IsDefault:     false,
		Title:         input.Title,
		TitleEN:       optional(input.TitleEN),
		TitleIT:       optional(input.TitleIT),
		TitleES:       optional(input.TitleES),
		Description:   optional(input.Description),
		DescriptionEN: optional(input.DescriptionEN),
		DescriptionIT: optional(input.DescriptionIT),
		DescriptionES: optional(input.DescriptionES),
		SortOrder:     sortOrder,
		Status:        model.StatusActive,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, input.RestaurantID)
	return sub, nil
}

func (uc *subcategoryUseCase) GetSubcategory(ctx context.Context, id, restaurantID string) (*model.Subcategory, error) {
	sub, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.RestaurantID != restaurantID {
		return nil, apperr.NotFoundf("subcategory %s not found", id)
	}
	return sub, nil
}

func (uc *subcategoryUseCase) ListSubcategories(ctx context.Context, filters *dto.SubcategoryFilters) ([]model.Subcategory, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *subcategoryUseCase) UpdateSubcategory(ctx context.Context, input *dto.UpdateSubcategoryInput) (*model.Subcategory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sub, err := uc.guard.VerifySubcategory(ctx, input.ID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	sub.Title = input.Title
	sub.TitleEN = optional(input.TitleEN)
	sub.TitleIT = optional(input.TitleIT)
	sub.TitleES = optional(input.TitleES)
	sub.Description = optional(input.Description)
	sub.DescriptionEN = optional(input.DescriptionEN)
	sub.DescriptionIT = optional(input.DescriptionIT)
	sub.DescriptionES = optional(input.DescriptionES)
	if input.Status != "" {
		sub.Status = input.Status
	}
	sub.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, sub.RestaurantID)
	return sub, nil
}

func (uc *subcategoryUseCase) DeleteSubcategory(ctx context.Context, id, restaurantID string) error {
	sub, err := uc.guard.VerifySubcategory(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	if sub.IsDefault {
		return apperr.Validationf("the default subcategory cannot be deleted")
	}

	if err := uc.repo.Delete(ctx, sub.ID, restaurantID); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *subcategoryUseCase) ReorderSubcategory(ctx context.Context, id, restaurantID string, dir ordering.Direction) error {
	sub, err := uc.guard.VerifySubcategory(ctx, id, restaurantID)
	if err != nil {
		return err
	}

	if err := uc.engine.Swap(ctx, uc.repo.Siblings(sub.CategoryID, restaurantID), id, dir); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *subcategoryUseCase) MoveSubcategory(ctx context.Context, id, targetID, restaurantID string) error {
	sub, err := uc.guard.VerifySubcategory(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	target, err := uc.guard.VerifySubcategory(ctx, targetID, restaurantID)
	if err != nil {
		return err
	}

	// Cross-parent drags never reach the store: silent no-op, zero writes.
	if sub.CategoryID != target.CategoryID {
		uc.logger.Debug("ignoring cross-scope subcategory drag",
			zap.String("id", id), zap.String("target_id", targetID))
		return nil
	}

	store := uc.repo.Siblings(sub.CategoryID, restaurantID)
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
		return apperr.NotFoundf("subcategory %s not found in scope", targetID)
	}

	if _, err := uc.engine.Move(ctx, store, id, toIndex); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *subcategoryUseCase) publishInvalidation(ctx context.Context, restaurantID string) {
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
