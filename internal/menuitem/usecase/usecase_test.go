package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/guard"
	"github.com/tavolo/menu-catalog-service/internal/menuitem/dto"
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
	rows    map[string]*model.MenuItem
	created []*model.MenuItem
	updated []*model.MenuItem
	stores  map[string]*fakeSiblingStore // keyed by subcategory id
}

func (r *fakeRepo) Create(_ context.Context, item *model.MenuItem) error {
	r.created = append(r.created, item)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.MenuItem, error) {
	return r.rows[id], nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.MenuItemFilters) ([]model.MenuItem, error) {
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, item *model.MenuItem, _ string) error {
	r.updated = append(r.updated, item)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, _, _ string) error { return nil }

func (r *fakeRepo) Siblings(subcategoryID, _ string) ordering.SiblingStore {
	store, ok := r.stores[subcategoryID]
	if !ok {
		store = &fakeSiblingStore{}
		r.stores[subcategoryID] = store
	}
	return store
}

type fakeSubcategories map[string]*model.Subcategory

func (f fakeSubcategories) FindByID(_ context.Context, id string) (*model.Subcategory, error) {
	return f[id], nil
}

type noCategories struct{}

func (noCategories) FindByID(_ context.Context, _ string) (*model.Category, error) {
	return nil, nil
}

type noAddons struct{}

func (noAddons) FindByID(_ context.Context, _ string) (*model.Addon, error) { return nil, nil }

type fakePublisher struct {
	published int
}

func (p *fakePublisher) Publish(_ context.Context, _ string) error {
	p.published++
	return nil
}

type fakeUploader struct {
	removed chan string
}

func (u *fakeUploader) Upload(_ context.Context, name string, _ io.Reader, _ int64, _ string) (string, error) {
	return "http://cdn/" + name, nil
}

func (u *fakeUploader) Remove(_ context.Context, name string) error {
	u.removed <- name
	return nil
}

type fakeTranslator struct{}

func (fakeTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	return target + ":" + text, nil
}

type fixture struct {
	uc        *menuItemUseCase
	repo      *fakeRepo
	publisher *fakePublisher
	uploader  *fakeUploader
}

func newFixture(items ...*model.MenuItem) *fixture {
	repo := &fakeRepo{rows: map[string]*model.MenuItem{}, stores: map[string]*fakeSiblingStore{}}
	for _, item := range items {
		repo.rows[item.ID] = item
		store := repo.Siblings(item.SubcategoryID, "rest-1").(*fakeSiblingStore)
		store.siblings = append(store.siblings, ordering.Sibling{ID: item.ID, SortOrder: item.SortOrder})
	}

	subcategories := fakeSubcategories{
		"sub-1": {BaseModel: model.BaseModel{ID: "sub-1"}, CategoryID: "cat-1", RestaurantID: "rest-1"},
		"sub-2": {BaseModel: model.BaseModel{ID: "sub-2"}, CategoryID: "cat-1", RestaurantID: "rest-1"},
	}

	logger := zap.NewNop()
	publisher := &fakePublisher{}
	uploader := &fakeUploader{removed: make(chan string, 1)}
	g := guard.New(noCategories{}, subcategories, repo, noAddons{}, logger)
	uc := NewMenuItemUseCase(repo, g, ordering.NewEngine(logger), publisher, uploader, fakeTranslator{}, logger)
	return &fixture{uc: uc.(*menuItemUseCase), repo: repo, publisher: publisher, uploader: uploader}
}

func testItem(id, subcategoryID string, sortOrder int) *model.MenuItem {
	return &model.MenuItem{
		BaseModel:     model.BaseModel{ID: id},
		SubcategoryID: subcategoryID,
		Title:         "Item " + id,
		Price:         9.5,
		SortOrder:     sortOrder,
		Status:        model.StatusActive,
	}
}

func TestCreateMenuItem(t *testing.T) {
	f := newFixture(testItem("item-1", "sub-1", 1))

	item, err := f.uc.CreateMenuItem(context.Background(), &dto.CreateMenuItemInput{
		RestaurantID:  "rest-1",
		SubcategoryID: "sub-1",
		Title:         "Carbonara",
		Price:         12,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, item.SortOrder)
	assert.Equal(t, model.StatusActive, item.Status)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, 1, f.publisher.published)

	// Locale variants were filled from the base title.
	require.NotNil(t, item.TitleEN)
	assert.Equal(t, "en:Carbonara", *item.TitleEN)
}

func TestCreateMenuItemRejectsNegativePrice(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateMenuItem(context.Background(), &dto.CreateMenuItemInput{
		RestaurantID:  "rest-1",
		SubcategoryID: "sub-1",
		Title:         "Carbonara",
		Price:         -1,
	})
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, f.repo.created)
	assert.Zero(t, f.publisher.published)
}

func TestCreateMenuItemRequiresOwnedSubcategory(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateMenuItem(context.Background(), &dto.CreateMenuItemInput{
		RestaurantID:  "rest-other",
		SubcategoryID: "sub-1",
		Title:         "Carbonara",
		Price:         12,
	})
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Empty(t, f.repo.created)
}

func TestGetMenuItemReportsForeignRowsAsNotFound(t *testing.T) {
	f := newFixture(testItem("item-1", "sub-1", 1))

	_, err := f.uc.GetMenuItem(context.Background(), "item-1", "rest-other")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateMenuItemRemovesReplacedImage(t *testing.T) {
	old := "http://cdn/menu-images/old.png"
	item := testItem("item-1", "sub-1", 1)
	item.ImageURL = &old
	f := newFixture(item)

	_, err := f.uc.UpdateMenuItem(context.Background(), &dto.UpdateMenuItemInput{
		ID:           "item-1",
		RestaurantID: "rest-1",
		Title:        "Item item-1",
		Price:        9.5,
		ImageURL:     "http://cdn/menu-images/new.png",
	})
	require.NoError(t, err)

	select {
	case removed := <-f.uploader.removed:
		assert.Equal(t, old, removed)
	case <-time.After(2 * time.Second):
		t.Fatal("replaced image was not removed")
	}
}

func TestMoveMenuItemAcrossSubcategoriesIsIgnored(t *testing.T) {
	f := newFixture(
		testItem("item-1", "sub-1", 1),
		testItem("item-2", "sub-2", 1),
	)

	require.NoError(t, f.uc.MoveMenuItem(context.Background(), "item-1", "item-2", "rest-1"))

	for _, store := range f.repo.stores {
		assert.Zero(t, store.writes)
	}
	assert.Zero(t, f.publisher.published)
}

func TestMoveMenuItemWithinSubcategory(t *testing.T) {
	f := newFixture(
		testItem("item-1", "sub-1", 1),
		testItem("item-2", "sub-1", 2),
		testItem("item-3", "sub-1", 3),
	)

	require.NoError(t, f.uc.MoveMenuItem(context.Background(), "item-1", "item-3", "rest-1"))

	assert.Equal(t, []ordering.Sibling{
		{ID: "item-1", SortOrder: 3},
		{ID: "item-2", SortOrder: 1},
		{ID: "item-3", SortOrder: 2},
	}, f.repo.stores["sub-1"].siblings)
	assert.Equal(t, 1, f.publisher.published)
}

func TestReorderMenuItem(t *testing.T) {
	f := newFixture(
		testItem("item-1", "sub-1", 1),
		testItem("item-2", "sub-1", 2),
	)

	require.NoError(t, f.uc.ReorderMenuItem(context.Background(), "item-1", "rest-1", ordering.DirectionDown))

	store := f.repo.stores["sub-1"]
	assert.Equal(t, 2, store.writes)
	assert.Equal(t, 2, store.siblings[0].SortOrder)
	assert.Equal(t, 1, store.siblings[1].SortOrder)
}
