// Package guard verifies tenant ownership before any mutation. Every entity
// service composes with it; it is a mandatory precondition, not optional
// middleware. Repositories additionally re-apply the tenant predicate on the
// write itself, so a mutation only lands if ownership still holds then.
package guard

import (
	"context"

	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/model"
)

// Narrow read views over the entity repositories. FindByID returns
// (nil, nil) when the row is missing.
type CategorySource interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type SubcategorySource interface {
	FindByID(ctx context.Context, id string) (*model.Subcategory, error)
}

type MenuItemSource interface {
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
}

type AddonSource interface {
	FindByID(ctx context.Context, id string) (*model.Addon, error)
}

type Guard struct {
	categories    CategorySource
	subcategories SubcategorySource
	items         MenuItemSource
	addons        AddonSource
	logger        *zap.Logger
}

func New(categories CategorySource, subcategories SubcategorySource, items MenuItemSource, addons AddonSource, logger *zap.Logger) *Guard {
	return &Guard{
		categories:    categories,
		subcategories: subcategories,
		items:         items,
		addons:        addons,
		logger:        logger,
	}
}

// VerifyCategory checks the tenant reference stored directly on the row.
// A missing row or a mismatch both fail with Unauthorized; callers must not
// fall back to any default tenant.
func (g *Guard) VerifyCategory(ctx context.Context, id, restaurantID string) (*model.Category, error) {
	if restaurantID == "" {
		return nil, apperr.Unauthorizedf("missing restaurant context")
	}
	cat, err := g.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.RestaurantID != restaurantID {
		return nil, g.deny(ctx, "category", id, restaurantID)
	}
	return cat, nil
}

func (g *Guard) VerifySubcategory(ctx context.Context, id, restaurantID string) (*model.Subcategory, error) {
	if restaurantID == "" {
		return nil, apperr.Unauthorizedf("missing restaurant context")
	}
	sub, err := g.subcategories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.RestaurantID != restaurantID {
		return nil, g.deny(ctx, "subcategory", id, restaurantID)
	}
	return sub, nil
}

// VerifyMenuItem resolves the owner transitively through the item's
// subcategory; items carry no tenant column of their own.
func (g *Guard) VerifyMenuItem(ctx context.Context, id, restaurantID string) (*model.MenuItem, error) {
	if restaurantID == "" {
		return nil, apperr.Unauthorizedf("missing restaurant context")
	}
	item, err := g.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, g.deny(ctx, "menu_item", id, restaurantID)
	}
	sub, err := g.subcategories.FindByID(ctx, item.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.RestaurantID != restaurantID {
		return nil, g.deny(ctx, "menu_item", id, restaurantID)
	}
	return item, nil
}

// VerifyAddon prefers the tenant reference stored on the row. Legacy rows
// have none and resolve through their subcategory or category parent.
func (g *Guard) VerifyAddon(ctx context.Context, id, restaurantID string) (*model.Addon, error) {
	if restaurantID == "" {
		return nil, apperr.Unauthorizedf("missing restaurant context")
	}
	addon, err := g.addons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addon == nil {
		return nil, g.deny(ctx, "addon", id, restaurantID)
	}

	if addon.RestaurantID != nil {
		if *addon.RestaurantID != restaurantID {
			return nil, g.deny(ctx, "addon", id, restaurantID)
		}
		return addon, nil
	}

	if addon.SubcategoryID != nil {
		sub, err := g.subcategories.FindByID(ctx, *addon.SubcategoryID)
		if err != nil {
			return nil, err
		}
		if sub != nil && sub.RestaurantID == restaurantID {
			return addon, nil
		}
		return nil, g.deny(ctx, "addon", id, restaurantID)
	}

	if addon.CategoryID != nil {
		cat, err := g.categories.FindByID(ctx, *addon.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat != nil && cat.RestaurantID == restaurantID {
			return addon, nil
		}
	}
	return nil, g.deny(ctx, "addon", id, restaurantID)
}

func (g *Guard) deny(_ context.Context, kind, id, restaurantID string) error {
	// Logged at warn: a denial is either a bug or a cross-tenant attempt.
	g.logger.Warn("tenant ownership check failed",
		zap.String("entity", kind),
		zap.String("id", id),
		zap.String("restaurant_id", restaurantID))
	return apperr.Unauthorizedf("%s %s does not belong to restaurant %s", kind, id, restaurantID)
}
