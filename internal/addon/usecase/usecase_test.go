package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/addon/dto"
	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type fakeSiblingStore struct {
	siblings []ordering.Sibling
	writes   int
}

func (s *fakeSiblingStore) Siblings(_ context.Context) ([]ordering.Sibling, error) {
	out := make([]ordering.Sibling, len(s.siblings))
	copy(out, s.siblings)
	return out, nil
}

func (s *fakeSiblingStore) SetSortOrder(_ context.Context, id string, sortOrder int) error {
	s.writes++
	for i := range s.siblings {
		if s.siblings[i].ID == id {
			s.siblings[i].SortOrder = sortOrder
		}
	}
	return nil
}

type fakeRepo struct {
	rows    map[string]*model.Addon
	created []*model.Addon
	stores  map[string]*fakeSiblingStore // keyed by parent id
}

func (r *fakeRepo) Create(_ context.Context, a *model.Addon) error {
	r.created = append(r.created, a)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Addon, error) {
	return r.rows[id], nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.AddonFilters) ([]model.Addon, error) {
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, _ *model.Addon, _ string) error { return nil }

func (r *fakeRepo) Delete(_ context.Context, _, _ string) error { return nil }

func (r *fakeRepo) Siblings(subcategoryID, categoryID *string, _ string) ordering.SiblingStore {
	key := ""
	switch {
	case subcategoryID != nil:
		key = *subcategoryID
	case categoryID != nil:
		key = *categoryID
	}
	store, ok := r.stores[key]
	if !ok {
		store = &fakeSiblingStore{}
		r.stores[key] = store
	}
	return store
}

type fakeCategories map[string]*model.Category

func (f fakeCategories) FindByID(_ context.Context, id string) (*model.Category, error) {
	return f[id], nil
}

type fakeSubcategories map[string]*model.Subcategory

func (f fakeSubcategories) FindByID(_ context.Context, id string) (*model.Subcategory, error) {
	return f[id], nil
}

type noItems struct{}

func (noItems) FindByID(_ context.Context, _ string) (*model.MenuItem, error) { return nil, nil }

type fakePublisher struct {
	published int
}

func (p *fakePublisher) Publish(_ context.Context, _ string) error {
	p.published++
	return nil
}

func strptr(s string) *string { return &s }

type fixture struct {
	uc        *addonUseCase
	repo      *fakeRepo
	publisher *fakePublisher
}

func newFixture(addons ...*model.Addon) *fixture {
	repo := &fakeRepo{rows: map[string]*model.Addon{}, stores: map[string]*fakeSiblingStore{}}
	for _, a := range addons {
		repo.rows[a.ID] = a
		store := repo.Siblings(a.SubcategoryID, a.CategoryID, "rest-1").(*fakeSiblingStore)
		store.siblings = append(store.siblings, ordering.Sibling{ID: a.ID, SortOrder: a.SortOrder})
	}

	categories := fakeCategories{
		"cat-1": {BaseModel: model.BaseModel{ID: "cat-1"}, RestaurantID: "rest-1"},
	}
	subcategories := fakeSubcategories{
		"sub-1": {BaseModel: model.BaseModel{ID: "sub-1"}, CategoryID: "cat-1", RestaurantID: "rest-1"},
	}

	logger := zap.NewNop()
	publisher := &fakePublisher{}
	g := guard.New(categories, subcategories, noItems{}, repo, logger)
	uc := NewAddonUseCase(repo, g, ordering.NewEngine(logger), publisher, logger)
	return &fixture{uc: uc.(*addonUseCase), repo: repo, publisher: publisher}
}

func testAddon(id string, subcategoryID, categoryID *string, sortOrder int) *model.Addon {
	return &model.Addon{
		BaseModel:     model.BaseModel{ID: id},
		SubcategoryID: subcategoryID,
		CategoryID:    categoryID,
		RestaurantID:  strptr("rest-1"),
		Title:         "Addon " + id,
		Price:         1.5,
		SortOrder:     sortOrder,
		Status:        model.StatusActive,
	}
}

func TestCreateAddonScopedToSubcategory(t *testing.T) {
	f := newFixture(
		testAddon("addon-1", strptr("sub-1"), nil, 1),
		testAddon("addon-2", strptr("sub-1"), nil, 2),
	)

	a, err := f.uc.CreateAddon(context.Background(), &dto.CreateAddonInput{
		RestaurantID:  "rest-1",
		SubcategoryID: "sub-1",
		Title:         "Extra cheese",
		Price:         1,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, a.SortOrder)
	require.NotNil(t, a.SubcategoryID)
	assert.Equal(t, "sub-1", *a.SubcategoryID)
	require.NotNil(t, a.RestaurantID)
	assert.Equal(t, "rest-1", *a.RestaurantID)
	assert.Equal(t, 1, f.publisher.published)
}

func TestCreateAddonScopedToCategory(t *testing.T) {
	f := newFixture()

	a, err := f.uc.CreateAddon(context.Background(), &dto.CreateAddonInput{
		RestaurantID: "rest-1",
		CategoryID:   "cat-1",
		Title:        "Bread basket",
		Price:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, a.SortOrder)
	require.NotNil(t, a.CategoryID)
	assert.Equal(t, "cat-1", *a.CategoryID)
	assert.Nil(t, a.SubcategoryID)
}

func TestCreateGlobalAddonAlwaysGetsOrderOne(t *testing.T) {
	// Even with scoped add-ons around, a parentless add-on takes order 1.
	f := newFixture(
		testAddon("addon-1", strptr("sub-1"), nil, 1),
		testAddon("addon-2", strptr("sub-1"), nil, 2),
	)

	a, err := f.uc.CreateAddon(context.Background(), &dto.CreateAddonInput{
		RestaurantID: "rest-1",
		Title:        "Service charge",
		Price:        0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, a.SortOrder)
	assert.Nil(t, a.SubcategoryID)
	assert.Nil(t, a.CategoryID)
}

func TestCreateAddonRequiresOwnedParent(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateAddon(context.Background(), &dto.CreateAddonInput{
		RestaurantID:  "rest-other",
		SubcategoryID: "sub-1",
		Title:         "Extra cheese",
		Price:         1,
	})
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Empty(t, f.repo.created)
}

func TestReorderGlobalAddonIsNoOp(t *testing.T) {
	f := newFixture(testAddon("addon-global", nil, nil, 1))

	require.NoError(t, f.uc.ReorderAddon(context.Background(), "addon-global", "rest-1", ordering.DirectionUp))

	for _, store := range f.repo.stores {
		assert.Zero(t, store.writes)
	}
	assert.Zero(t, f.publisher.published)
}

func TestMoveAddonAcrossScopesIsIgnored(t *testing.T) {
	f := newFixture(
		testAddon("addon-sub", strptr("sub-1"), nil, 1),
		testAddon("addon-cat", nil, strptr("cat-1"), 1),
	)

	require.NoError(t, f.uc.MoveAddon(context.Background(), "addon-sub", "addon-cat", "rest-1"))

	for _, store := range f.repo.stores {
		assert.Zero(t, store.writes)
	}
	assert.Zero(t, f.publisher.published)
}

func TestMoveAddonWithinScope(t *testing.T) {
	f := newFixture(
		testAddon("addon-1", strptr("sub-1"), nil, 1),
		testAddon("addon-2", strptr("sub-1"), nil, 2),
		testAddon("addon-3", strptr("sub-1"), nil, 3),
	)

	require.NoError(t, f.uc.MoveAddon(context.Background(), "addon-3", "addon-1", "rest-1"))

	assert.Equal(t, []ordering.Sibling{
		{ID: "addon-1", SortOrder: 2},
		{ID: "addon-2", SortOrder: 3},
		{ID: "addon-3", SortOrder: 1},
	}, f.repo.stores["sub-1"].siblings)
	assert.Equal(t, 1, f.publisher.published)
}
