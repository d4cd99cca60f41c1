package ordering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
)

type write struct {
	id        string
	sortOrder int
}

type fakeStore struct {
	siblings []Sibling
	writes   []write
	failOn   string // id whose write fails
}

func (s *fakeStore) Siblings(_ context.Context) ([]Sibling, error) {
	out := make([]Sibling, len(s.siblings))
	copy(out, s.siblings)
	return out, nil
}

func (s *fakeStore) SetSortOrder(_ context.Context, id string, sortOrder int) error {
	if id == s.failOn {
		return apperr.Persistence(assert.AnError, "set sort order")
	}
	s.writes = append(s.writes, write{id: id, sortOrder: sortOrder})
	for i := range s.siblings {
		if s.siblings[i].ID == id {
			s.siblings[i].SortOrder = sortOrder
		}
	}
	return nil
}

func newStore(siblings ...Sibling) *fakeStore {
	return &fakeStore{siblings: siblings}
}

func TestNextSortOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("empty scope starts at one", func(t *testing.T) {
		got, err := NextSortOrder(ctx, newStore())
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("appends after the max", func(t *testing.T) {
		got, err := NextSortOrder(ctx, newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
		))
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("sparse scope still appends after the max", func(t *testing.T) {
		got, err := NextSortOrder(ctx, newStore(
			Sibling{ID: "a", SortOrder: 3},
			Sibling{ID: "b", SortOrder: 7},
		))
		require.NoError(t, err)
		assert.Equal(t, 8, got)
	})
}

func TestEngineSwap(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(zap.NewNop())

	t.Run("exchanges exactly two rows", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
			Sibling{ID: "c", SortOrder: 3},
		)
		require.NoError(t, engine.Swap(ctx, store, "b", DirectionUp))

		assert.Equal(t, []write{{"b", 1}, {"a", 2}}, store.writes)
	})

	t.Run("swap down", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
		)
		require.NoError(t, engine.Swap(ctx, store, "a", DirectionDown))

		assert.Equal(t, []write{{"a", 2}, {"b", 1}}, store.writes)
	})

	t.Run("first row up is a no-op", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
		)
		require.NoError(t, engine.Swap(ctx, store, "a", DirectionUp))
		assert.Empty(t, store.writes)
	})

	t.Run("last row down is a no-op", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
		)
		require.NoError(t, engine.Swap(ctx, store, "b", DirectionDown))
		assert.Empty(t, store.writes)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		store := newStore(Sibling{ID: "a", SortOrder: 1})
		err := engine.Swap(ctx, store, "ghost", DirectionUp)
		assert.True(t, apperr.IsNotFound(err))
		assert.Empty(t, store.writes)
	})

	t.Run("unknown direction is a validation error", func(t *testing.T) {
		store := newStore(Sibling{ID: "a", SortOrder: 1}, Sibling{ID: "b", SortOrder: 2})
		err := engine.Swap(ctx, store, "a", Direction("sideways"))
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, store.writes)
	})
}

func TestEngineMove(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(zap.NewNop())

	t.Run("renumbers from the original minimum", func(t *testing.T) {
		// Orders deliberately do not start at 1.
		store := newStore(
			Sibling{ID: "a", SortOrder: 3},
			Sibling{ID: "b", SortOrder: 4},
			Sibling{ID: "c", SortOrder: 5},
			Sibling{ID: "d", SortOrder: 6},
		)
		moved, err := engine.Move(ctx, store, "d", 0)
		require.NoError(t, err)

		assert.Equal(t, []Sibling{
			{ID: "d", SortOrder: 3},
			{ID: "a", SortOrder: 4},
			{ID: "b", SortOrder: 5},
			{ID: "c", SortOrder: 6},
		}, moved)
		assert.Equal(t, moved, store.siblings)
	})

	t.Run("membership is preserved", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
			Sibling{ID: "c", SortOrder: 3},
		)
		moved, err := engine.Move(ctx, store, "a", 2)
		require.NoError(t, err)

		ids := make(map[string]bool, len(moved))
		for _, s := range moved {
			ids[s.ID] = true
		}
		assert.Len(t, ids, 3)
		for _, id := range []string{"a", "b", "c"} {
			assert.True(t, ids[id])
		}
	})

	t.Run("moving in place writes nothing", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
			Sibling{ID: "c", SortOrder: 3},
		)
		_, err := engine.Move(ctx, store, "b", 1)
		require.NoError(t, err)
		assert.Empty(t, store.writes)
	})

	t.Run("heals duplicated orders", func(t *testing.T) {
		// Aftermath of a crashed swap: two rows share an order.
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 1},
			Sibling{ID: "c", SortOrder: 3},
		)
		moved, err := engine.Move(ctx, store, "c", 2)
		require.NoError(t, err)

		assert.Equal(t, []Sibling{
			{ID: "a", SortOrder: 1},
			{ID: "b", SortOrder: 2},
			{ID: "c", SortOrder: 3},
		}, moved)
	})

	t.Run("target index is clamped", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
		)
		moved, err := engine.Move(ctx, store, "a", 99)
		require.NoError(t, err)
		assert.Equal(t, "a", moved[1].ID)
	})

	t.Run("mid-batch failure surfaces the error", func(t *testing.T) {
		store := newStore(
			Sibling{ID: "a", SortOrder: 1},
			Sibling{ID: "b", SortOrder: 2},
			Sibling{ID: "c", SortOrder: 3},
		)
		store.failOn = "b"
		_, err := engine.Move(ctx, store, "c", 0)
		require.Error(t, err)
		assert.True(t, apperr.IsPersistence(err))
	})
}

func TestPreview(t *testing.T) {
	siblings := []Sibling{
		{ID: "a", SortOrder: 1},
		{ID: "b", SortOrder: 2},
		{ID: "c", SortOrder: 3},
	}

	moved, err := Preview(siblings, "c", 0)
	require.NoError(t, err)

	assert.Equal(t, []Sibling{
		{ID: "c", SortOrder: 1},
		{ID: "a", SortOrder: 2},
		{ID: "b", SortOrder: 3},
	}, moved)

	// The input stays untouched; callers hold it for rollback display.
	assert.Equal(t, 1, siblings[0].SortOrder)
	assert.Equal(t, "a", siblings[0].ID)

	_, err = Preview(siblings, "ghost", 0)
	assert.True(t, apperr.IsNotFound(err))
}
