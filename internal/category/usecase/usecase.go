package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/category"
	"github.com/tavolo/menu-catalog-service/internal/category/dto"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/translate"
)

const defaultSubcategoryTitle = "General"

// SubcategoryCreator is the slice of the subcategory repository needed to
// auto-create the default bucket alongside a new category.
type SubcategoryCreator interface {
	Create(ctx context.Context, sub *model.Subcategory) error
}

type categoryUseCase struct {
	repo       category.Repository
	subs       SubcategoryCreator
	guard      *guard.Guard
	engine     *ordering.Engine
	notifier   notifier.Publisher
	translator translate.Translator // optional
	logger     *zap.Logger
}

func NewCategoryUseCase(
	repo category.Repository,
	subs SubcategoryCreator,
	g *guard.Guard,
	engine *ordering.Engine,
	n notifier.Publisher,
	translator translate.Translator,
	logger *zap.Logger,
) category.UseCase {
	return &categoryUseCase{
		repo:       repo,
		subs:       subs,
		guard:      g,
		engine:     engine,
		notifier:   n,
		translator: translator,
		logger:     logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sortOrder, err := ordering.NextSortOrder(ctx, uc.repo.Siblings(input.RestaurantID))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RestaurantID:  input.RestaurantID,
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
	uc.fillLocales(ctx, cat)

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	// Every category gets its default bucket up front; items that need no
	// named section live there.
	sub := &model.Subcategory{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:   cat.ID,
		RestaurantID: cat.RestaurantID,
		IsDefault:    true,
		Title:        defaultSubcategoryTitle,
		SortOrder:    1,
		Status:       model.StatusActive,
	}
	if err := uc.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, cat.RestaurantID)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id, restaurantID string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.RestaurantID != restaurantID {
		return nil, apperr.NotFoundf("category %s not found", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cat, err := uc.guard.VerifyCategory(ctx, input.ID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	cat.Title = input.Title
	cat.TitleEN = optional(input.TitleEN)
	cat.TitleIT = optional(input.TitleIT)
	cat.TitleES = optional(input.TitleES)
	cat.Description = optional(input.Description)
	cat.DescriptionEN = optional(input.DescriptionEN)
	cat.DescriptionIT = optional(input.DescriptionIT)
	cat.DescriptionES = optional(input.DescriptionES)
	if input.Status != "" {
		cat.Status = input.Status
	}
	cat.UpdatedAt = time.Now()
	uc.fillLocales(ctx, cat)

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	uc.publishInvalidation(ctx, cat.RestaurantID)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id, restaurantID string) error {
	cat, err := uc.guard.VerifyCategory(ctx, id, restaurantID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, cat.ID, restaurantID); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *categoryUseCase) ReorderCategory(ctx context.Context, id, restaurantID string, dir ordering.Direction) error {
	if _, err := uc.guard.VerifyCategory(ctx, id, restaurantID); err != nil {
		return err
	}

	if err := uc.engine.Swap(ctx, uc.repo.Siblings(restaurantID), id, dir); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

func (uc *categoryUseCase) MoveCategory(ctx context.Context, id, targetID, restaurantID string) error {
	if _, err := uc.guard.VerifyCategory(ctx, id, restaurantID); err != nil {
		return err
	}
	target, err := uc.guard.VerifyCategory(ctx, targetID, restaurantID)
	if err != nil {
		return err
	}

	store := uc.repo.Siblings(restaurantID)
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
		return apperr.NotFoundf("category %s not found in scope", targetID)
	}

	if _, err := uc.engine.Move(ctx, store, id, toIndex); err != nil {
		return err
	}

	uc.publishInvalidation(ctx, restaurantID)
	return nil
}

// fillLocales fills empty locale variants from the base title/description.
// Best effort: a translation failure is logged and the save proceeds with
// whatever the caller supplied.
func (uc *categoryUseCase) fillLocales(ctx context.Context, cat *model.Category) {
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
	fill(&cat.TitleEN, cat.Title, "en")
	fill(&cat.TitleIT, cat.Title, "it")
	fill(&cat.TitleES, cat.Title, "es")
	if cat.Description != nil {
		fill(&cat.DescriptionEN, *cat.Description, "en")
		fill(&cat.DescriptionIT, *cat.Description, "it")
		fill(&cat.DescriptionES, *cat.Description, "es")
	}
}

func (uc *categoryUseCase) publishInvalidation(ctx context.Context, restaurantID string) {
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
