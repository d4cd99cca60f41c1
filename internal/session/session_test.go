package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/apperr"
	"github.com/tavolo/menu-catalog-service/internal/catalog"
	"github.com/tavolo/menu-catalog-service/internal/model"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
	"github.com/tavolo/menu-catalog-service/internal/ordering"
)

type fakeBuilder struct {
	builds atomic.Int32
}

func (b *fakeBuilder) BuildCatalog(_ context.Context, _ string) (map[string]catalog.Entry, error) {
	n := b.builds.Add(1)
	return map[string]catalog.Entry{
		"cat-1": {Category: model.Category{BaseModel: model.BaseModel{ID: "cat-1"}, SortOrder: int(n)}},
	}, nil
}

type fakeSubscription struct {
	ch chan struct{}
}

func (s *fakeSubscription) Invalidations() <-chan struct{} { return s.ch }
func (s *fakeSubscription) Close() error {
	close(s.ch)
	return nil
}

type fakeNotifier struct {
	sub *fakeSubscription
}

func (n *fakeNotifier) Publish(_ context.Context, _ string) error { return nil }
func (n *fakeNotifier) Subscribe(_ context.Context, _ string) (notifier.Subscription, error) {
	return n.sub, nil
}

func openTestSession(t *testing.T) (*Session, *fakeBuilder, *fakeSubscription) {
	builder := &fakeBuilder{}
	sub := &fakeSubscription{ch: make(chan struct{}, 1)}
	sess, err := Open(context.Background(), "rest-1", builder, nil, &fakeNotifier{sub: sub}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })
	return sess, builder, sub
}

func TestCatalogIsBuiltOnceUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	sess, builder, _ := openTestSession(t)

	first, err := sess.Catalog(ctx)
	require.NoError(t, err)
	second, err := sess.Catalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), builder.builds.Load())
}

func TestInvalidationTriggersRebuild(t *testing.T) {
	ctx := context.Background()
	sess, builder, sub := openTestSession(t)

	_, err := sess.Catalog(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), builder.builds.Load())

	sub.ch <- struct{}{}

	// The drop happens on the watcher goroutine; the next read after it
	// lands rebuilds.
	require.Eventually(t, func() bool {
		if _, err := sess.Catalog(ctx); err != nil {
			return false
		}
		return builder.builds.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestExplicitInvalidateDropsLocalCopy(t *testing.T) {
	ctx := context.Background()
	sess, builder, _ := openTestSession(t)

	_, err := sess.Catalog(ctx)
	require.NoError(t, err)
	sess.Invalidate(ctx)
	_, err = sess.Catalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), builder.builds.Load())
}

func TestBeginReorder(t *testing.T) {
	siblings := []ordering.Sibling{
		{ID: "a", SortOrder: 1},
		{ID: "b", SortOrder: 2},
		{ID: "c", SortOrder: 3},
	}

	r, err := BeginReorder(siblings, "c", 0)
	require.NoError(t, err)

	assert.Equal(t, PhasePending, r.Phase())
	assert.Equal(t, []ordering.Sibling{
		{ID: "c", SortOrder: 1},
		{ID: "a", SortOrder: 2},
		{ID: "b", SortOrder: 3},
	}, r.Local())
	assert.Equal(t, siblings, r.Before())

	_, err = BeginReorder(siblings, "ghost", 0)
	assert.True(t, apperr.IsNotFound(err))
}

func TestPushReorderCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	sess, builder, _ := openTestSession(t)

	_, err := sess.Catalog(ctx)
	require.NoError(t, err)

	r, err := BeginReorder([]ordering.Sibling{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: 2}}, "b", 0)
	require.NoError(t, err)

	pushed := false
	err = sess.PushReorder(ctx, r, func(context.Context) error {
		pushed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, pushed)
	assert.Equal(t, PhaseCommitted, r.Phase())

	// A committed reorder keeps the local copy; no rebuild happens.
	_, err = sess.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), builder.builds.Load())
}

func TestPushReorderRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	sess, builder, _ := openTestSession(t)

	_, err := sess.Catalog(ctx)
	require.NoError(t, err)

	r, err := BeginReorder([]ordering.Sibling{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: 2}}, "b", 0)
	require.NoError(t, err)

	pushErr := apperr.Persistence(assert.AnError, "batch update")
	err = sess.PushReorder(ctx, r, func(context.Context) error {
		return pushErr
	})
	require.ErrorIs(t, err, pushErr)
	assert.Equal(t, PhaseRolledBack, r.Phase())

	// The optimistic state is gone; the next read is a full reload.
	_, err = sess.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), builder.builds.Load())
}
