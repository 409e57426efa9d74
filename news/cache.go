// Package news holds the serving-side state of the aggregation pipeline:
// a single-slot, time-boxed cache over the aggregator.
package news

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/evportal-ch/newshub/models"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is the window after which a cached result counts as stale.
const DefaultFreshness = time.Hour

// Aggregator produces one complete aggregation pass. Satisfied by
// *feeds.Aggregator.
type Aggregator interface {
	Aggregate(ctx context.Context) []models.Article
}

// Cache holds the most recent aggregation result together with its
// population time. The slot is replaced atomically: readers see the old
// result until the new one is fully ready. Concurrent refreshes coalesce
// onto a single in-flight aggregation pass instead of each triggering its
// own fetch storm.
type Cache struct {
	aggregator Aggregator
	freshness  time.Duration
	now        func() time.Time

	refreshGroup singleflight.Group

	mu        sync.RWMutex
	articles  []models.Article
	updatedAt time.Time
}

// NewCache wires a cache over the given aggregator. A non-positive freshness
// falls back to DefaultFreshness; a nil clock falls back to time.Now.
func NewCache(aggregator Aggregator, freshness time.Duration, now func() time.Time) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		aggregator: aggregator,
		freshness:  freshness,
		now:        now,
	}
}

// Articles returns the cached aggregation result and its population time,
// refreshing first when the cache is empty, stale, or force is set.
// A present-but-stale result is never served once detected; the caller
// blocks on (or joins) the refresh.
func (c *Cache) Articles(ctx context.Context, force bool) ([]models.Article, time.Time) {
	c.mu.RLock()
	articles, updatedAt := c.articles, c.updatedAt
	c.mu.RUnlock()

	fresh := !updatedAt.IsZero() &&
		len(articles) > 0 &&
		c.now().Sub(updatedAt) < c.freshness

	if fresh && !force {
		return articles, updatedAt
	}
	return c.Refresh(ctx)
}

// Refresh runs one aggregation pass and replaces the stored slot. Callers
// arriving while a pass is in flight share its result rather than starting
// another. The pass runs detached from the driving request's cancellation:
// the result is shared by every coalesced waiter, so one client hanging up
// must not abort the flight or wipe the slot for the others. The aggregator
// bounds the pass with its own deadline.
func (c *Cache) Refresh(ctx context.Context) ([]models.Article, time.Time) {
	_, _, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		articles := c.aggregator.Aggregate(context.WithoutCancel(ctx))

		c.mu.Lock()
		c.articles = articles
		c.updatedAt = c.now()
		c.mu.Unlock()

		log.Printf("INFO (NewsCache): Cache refreshed with %d articles", len(articles))
		return nil, nil
	})
	if shared {
		log.Printf("INFO (NewsCache): Joined in-flight refresh")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.articles, c.updatedAt
}

// Age reports how long ago the cache was populated, or zero if it never was.
func (c *Cache) Age() time.Duration {
	c.mu.RLock()
	updatedAt := c.updatedAt
	c.mu.RUnlock()

	if updatedAt.IsZero() {
		return 0
	}
	return c.now().Sub(updatedAt)
}
