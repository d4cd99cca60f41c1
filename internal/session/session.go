// Package session holds the per-admin-tab view of one restaurant's catalog:
// a local copy of the aggregation, a subscription to the restaurant's
// invalidation channel, and the optimistic reorder state machine. A session
// is created when the tab opens and torn down with Close; nothing here is a
// process-wide singleton.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/internal/catalog"
	"github.com/tavolo/menu-catalog-service/internal/notifier"
)

type CatalogBuilder interface {
	BuildCatalog(ctx context.Context, restaurantID string) (map[string]catalog.Entry, error)
}

type Session struct {
	restaurantID string
	builder      CatalogBuilder
	cache        *catalog.Cache // optional
	sub          notifier.Subscription
	logger       *zap.Logger

	mu      sync.Mutex
	entries map[string]catalog.Entry
}

// Open subscribes the session to the restaurant's invalidation channel.
// The subscription lives exactly as long as the session.
func Open(ctx context.Context, restaurantID string, builder CatalogBuilder, cache *catalog.Cache, n notifier.Notifier, logger *zap.Logger) (*Session, error) {
	sub, err := n.Subscribe(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		restaurantID: restaurantID,
		builder:      builder,
		cache:        cache,
		sub:          sub,
		logger:       logger,
	}
	go s.watch()
	return s, nil
}

func (s *Session) watch() {
	for range s.sub.Invalidations() {
		s.logger.Debug("catalog invalidated by another session",
			zap.String("restaurant_id", s.restaurantID))
		s.drop(context.Background())
	}
}

// Catalog returns the cached aggregation, rebuilding it on a miss.
func (s *Session) Catalog(ctx context.Context) (map[string]catalog.Entry, error) {
	s.mu.Lock()
	if s.entries != nil {
		entries := s.entries
		s.mu.Unlock()
		return entries, nil
	}
	s.mu.Unlock()

	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, s.restaurantID); ok {
			s.store(entries)
			return entries, nil
		}
	}

	entries, err := s.builder.BuildCatalog(ctx, s.restaurantID)
	if err != nil {
		return nil, err
	}
	s.store(entries)
	if s.cache != nil {
		s.cache.Set(ctx, s.restaurantID, entries)
	}
	return entries, nil
}

// PushReorder resolves a Pending reorder: push sends the batched sort-order
// writes; success commits, failure rolls back and discards every cached
// view so the next read is a full authoritative reload. There is no partial
// rollback of individual rows.
func (s *Session) PushReorder(ctx context.Context, r *Reorder, push func(context.Context) error) error {
	if err := push(ctx); err != nil {
		r.rollback()
		s.drop(ctx)
		s.logger.Warn("reorder push failed, discarding optimistic state",
			zap.String("restaurant_id", s.restaurantID), zap.Error(err))
		return err
	}
	r.commit()
	return nil
}

// Invalidate discards the session's cached aggregation.
func (s *Session) Invalidate(ctx context.Context) {
	s.drop(ctx)
}

func (s *Session) Close() error {
	return s.sub.Close()
}

func (s *Session) store(entries map[string]catalog.Entry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func (s *Session) drop(ctx context.Context) {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.Invalidate(ctx, s.restaurantID)
	}
}
