// Package catalog assembles the nested public menu structure for one
// restaurant. It only reads; mutations never pass through here.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	addondto "github.com/tavolo/menu-catalog-service/internal/addon/dto"
	categorydto "github.com/tavolo/menu-catalog-service/internal/category/dto"
	menuitemdto "github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
	"github.com/tavolo/menu-catalog-service/internal/model"
	subcategorydto "github.com/tavolo/menu-catalog-service/internal/subcategory/dto"
)

type SectionKind string

const (
	SectionDefault     SectionKind = "default"
	SectionSubcategory SectionKind = "subcategory"
	SectionSpecials    SectionKind = "specials"
	SectionSupplements SectionKind = "supplements"
)

const (
	specialsTitle    = "Specials"
	supplementsTitle = "Supplements"
)

// Section is one rendered block of a category page. The default section
// carries an empty title by contract.
type Section struct {
	Kind   SectionKind      `json:"kind"`
	Title  string           `json:"title"`
	Items  []model.MenuItem `json:"items,omitempty"`
	Addons []model.Addon    `json:"addons,omitempty"`
}

type Entry struct {
	Category model.Category `json:"category"`
	Sections []Section      `json:"sections"`
}

// Read views over the entity repositories; the concrete repositories
// satisfy these directly.
type CategorySource interface {
	FindAll(ctx context.Context, filters *categorydto.CategoryFilters) ([]model.Category, error)
}

type SubcategorySource interface {
	FindAll(ctx context.Context, filters *subcategorydto.SubcategoryFilters) ([]model.Subcategory, error)
}

type MenuItemSource interface {
	FindAll(ctx context.Context, filters *menuitemdto.MenuItemFilters) ([]model.MenuItem, error)
}

type AddonSource interface {
	FindAll(ctx context.Context, filters *addondto.AddonFilters) ([]model.Addon, error)
}

type Aggregator struct {
	categories    CategorySource
	subcategories SubcategorySource
	items         MenuItemSource
	addons        AddonSource
	logger        *zap.Logger
}

func NewAggregator(
	categories CategorySource,
	subcategories SubcategorySource,
	items MenuItemSource,
	addons AddonSource,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		categories:    categories,
		subcategories: subcategories,
		items:         items,
		addons:        addons,
		logger:        logger,
	}
}

// BuildCatalog assembles every active category of the restaurant. Section
// order inside a category is fixed: default bucket, named subcategories by
// sort order, specials, supplements. Empty sections are omitted; that order
// is the rendering contract, it determines on-page section order.
func (a *Aggregator) BuildCatalog(ctx context.Context, restaurantID string) (map[string]Entry, error) {
	cats, err := a.categories.FindAll(ctx, &categorydto.CategoryFilters{
		RestaurantID: restaurantID,
		Status:       model.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	subs, err := a.subcategories.FindAll(ctx, &subcategorydto.SubcategoryFilters{
		RestaurantID: restaurantID,
		Status:       model.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	items, err := a.items.FindAll(ctx, &menuitemdto.MenuItemFilters{
		RestaurantID: restaurantID,
		Status:       model.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	addons, err := a.addons.FindAll(ctx, &addondto.AddonFilters{
		RestaurantID: restaurantID,
		Status:       model.StatusActive,
	})
	if err != nil {
		return nil, err
	}

	subsByCategory := make(map[string][]model.Subcategory)
	subCategoryOf := make(map[string]string) // subcategory id -> category id
	for _, s := range subs {
		subsByCategory[s.CategoryID] = append(subsByCategory[s.CategoryID], s)
		subCategoryOf[s.ID] = s.CategoryID
	}
	itemsBySub := make(map[string][]model.MenuItem)
	for _, it := range items {
		itemsBySub[it.SubcategoryID] = append(itemsBySub[it.SubcategoryID], it)
	}
	addonsByCategory := make(map[string][]model.Addon)
	for _, ad := range addons {
		switch {
		case ad.SubcategoryID != nil:
			if catID, ok := subCategoryOf[*ad.SubcategoryID]; ok {
				addonsByCategory[catID] = append(addonsByCategory[catID], ad)
			}
		case ad.CategoryID != nil:
			addonsByCategory[*ad.CategoryID] = append(addonsByCategory[*ad.CategoryID], ad)
		}
	}

	entries := make(map[string]Entry, len(cats))
	for _, cat := range cats {
		entries[cat.ID] = Entry{
			Category: cat,
			Sections: a.buildSections(subsByCategory[cat.ID], itemsBySub, addonsByCategory[cat.ID]),
		}
	}

	a.logger.Debug("built catalog",
		zap.String("restaurant_id", restaurantID),
		zap.Int("categories", len(entries)))
	return entries, nil
}

func (a *Aggregator) buildSections(subs []model.Subcategory, itemsBySub map[string][]model.MenuItem, addons []model.Addon) []Section {
	sections := make([]Section, 0, len(subs)+3)
	var specials []model.MenuItem

	// Subcategories arrive sorted by sort_order; the default bucket renders
	// first regardless of its own sort order.
	ordered := make([]model.Subcategory, 0, len(subs))
	for _, s := range subs {
		if s.IsDefault {
			ordered = append([]model.Subcategory{s}, ordered...)
		} else {
			ordered = append(ordered, s)
		}
	}

	for _, sub := range ordered {
		var regular []model.MenuItem
		for _, it := range itemsBySub[sub.ID] {
			if it.IsSpecial {
				specials = append(specials, it)
				continue
			}
			regular = append(regular, it)
		}
		if len(regular) == 0 {
			continue
		}
		if sub.IsDefault {
			sections = append(sections, Section{
				Kind:  SectionDefault,
				Title: "",
				Items: regular,
			})
			continue
		}
		sections = append(sections, Section{
			Kind:  SectionSubcategory,
			Title: sub.Title,
			Items: regular,
		})
	}

	if len(specials) > 0 {
		sort.SliceStable(specials, func(i, j int) bool {
			return specials[i].SortOrder < specials[j].SortOrder
		})
		sections = append(sections, Section{
			Kind:  SectionSpecials,
			Title: specialsTitle,
			Items: specials,
		})
	}

	if len(addons) > 0 {
		sort.SliceStable(addons, func(i, j int) bool {
			return addons[i].SortOrder < addons[j].SortOrder
		})
		sections = append(sections, Section{
			Kind:   SectionSupplements,
			Title:  supplementsTitle,
			Addons: addons,
		})
	}

	return sections
}
