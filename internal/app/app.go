// Package app assembles the catalog service for in-process embedding. There
// is no transport layer of its own; the admin UI backend constructs an App
// and calls the use cases directly.
package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/addon"
	addonRepoPkg "github.com/tavolo/menu-catalog-service/internal/addon/repository"
	addonUCPkg "github.com/tavolo/menu-catalog-service/internal/addon/usecase"
	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/auth"
	"github.com/tavolo/menu-catalog-service/internal/catalog"
	"github.com/tavolo/menu-catalog-service/internal/category"
	catRepoPkg "github.com/tavolo/menu-catalog-service/internal/category/repository"
	catUCPkg "github.com/tavolo/menu-catalog-service/internal/category/usecase"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/menuitem"
	itemRepoPkg "github.com/tavolo/menu-catalog-service/internal/menuitem/repository"
	itemUCPkg "github.com/tavolo/menu-catalog-service/internal/menuitem/usecase"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
	"github.com/tavolo/menu-catalog-service/internal/session"
	"github.com/tavolo/menu-catalog-service/internal/storage"
	"github.com/tavolo/menu-catalog-service/internal/subcategory"
	subRepoPkg "github.com/tavolo/menu-catalog-service/internal/subcategory/repository"
	subUCPkg "github.com/tavolo/menu-catalog-service/internal/subcategory/usecase"
	"github.com/tavolo/menu-catalog-service/internal/translate"
)

// App is the composed service: the four entity use cases for writes and the
// catalog read side. Uploader and translator are optional; pass nil to
// disable image storage and auto-translation.
type App struct {
	Categories    category.UseCase
	Subcategories subcategory.UseCase
	MenuItems     menuitem.UseCase
	Addons        addon.UseCase

	Aggregator *catalog.Aggregator
	Cache      *catalog.Cache
	Notifier   notifier.Notifier

	categories *catRepoPkg.PGRepository
	logger     *zap.Logger
}

func New(
	db *sqlx.DB,
	redisClient *redis.Client,
	uploader storage.Uploader,
	translator translate.Translator,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *App {
	catRepo := catRepoPkg.NewPGRepository(db)
	subRepo := subRepoPkg.NewPGRepository(db)
	itemRepo := itemRepoPkg.NewPGRepository(db)
	addonRepo := addonRepoPkg.NewPGRepository(db)

	tenantGuard := guard.New(catRepo, subRepo, itemRepo, addonRepo, logger)
	engine := ordering.NewEngine(logger)
	changeNotifier := notifier.NewRedisNotifier(redisClient, logger)

	return &App{
		Categories:    catUCPkg.NewCategoryUseCase(catRepo, subRepo, tenantGuard, engine, changeNotifier, translator, logger),
		Subcategories: subUCPkg.NewSubcategoryUseCase(subRepo, tenantGuard, engine, changeNotifier, logger),
		MenuItems:     itemUCPkg.NewMenuItemUseCase(itemRepo, tenantGuard, engine, changeNotifier, uploader, translator, logger),
		Addons:        addonUCPkg.NewAddonUseCase(addonRepo, tenantGuard, engine, changeNotifier, logger),

		Aggregator: catalog.NewAggregator(catRepo, subRepo, itemRepo, addonRepo, logger),
		Cache:      catalog.NewCache(redisClient, cacheTTL, logger),
		Notifier:   changeNotifier,

		categories: catRepo,
		logger:     logger,
	}
}

// OpenSession starts one admin-tab session for a restaurant. The caller owns
// the session and must Close it when the tab goes away.
func (a *App) OpenSession(ctx context.Context, restaurantID string) (*session.Session, error) {
	return session.Open(ctx, restaurantID, a.Aggregator, a.Cache, a.Notifier, a.logger)
}

// OpenSessionFromContext opens a session for the authenticated tenant
// stamped on ctx by the embedding auth layer.
func (a *App) OpenSessionFromContext(ctx context.Context) (*session.Session, error) {
	restaurantID := auth.GetRestaurantID(ctx)
	if restaurantID == "" {
		return nil, apperr.Unauthorizedf("missing restaurant context")
	}
	return a.OpenSession(ctx, restaurantID)
}

// RestaurantIDs lists every restaurant with catalog data.
func (a *App) RestaurantIDs(ctx context.Context) ([]string, error) {
	return a.categories.RestaurantIDs(ctx)
}
