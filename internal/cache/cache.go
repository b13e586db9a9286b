// Package cache holds the most recently fetched message snapshot and
// refreshes it from the remote source when it goes stale.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/raghavkonduri05/member-qa-system/internal/metrics"
	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

// DefaultTTL is how long a snapshot is considered fresh.
const DefaultTTL = 300 * time.Second

// Source retrieves the complete current message set.
type Source interface {
	FetchAll(ctx context.Context) ([]models.Message, error)
}

// Option mutates cache configuration.
type Option func(*MessageCache)

// WithTTL sets how long a snapshot can be served without refresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *MessageCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *MessageCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the cache logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *MessageCache) {
		c.logger = logger
	}
}

// MessageCache is the single shared snapshot of member messages. Reads of a
// fresh snapshot take only a read lock; a stale or absent snapshot triggers
// exactly one refresh shared by all concurrent callers.
type MessageCache struct {
	source Source
	ttl    time.Duration
	clock  func() time.Time
	logger zerolog.Logger

	mu    sync.RWMutex
	entry *entry

	group singleflight.Group
}

type entry struct {
	messages  []models.Message
	fetchedAt time.Time
}

// New creates a message cache around the given source.
func New(source Source, options ...Option) *MessageCache {
	c := &MessageCache{
		source: source,
		ttl:    DefaultTTL,
		clock:  time.Now,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Get returns the current message set. A fresh snapshot is returned as-is.
// A stale or absent snapshot triggers one shared refresh; if the refresh
// fails and a previous snapshot exists, the stale snapshot is served instead
// of the error. Only a first-ever failure propagates. The returned slice is
// shared and must not be mutated.
func (c *MessageCache) Get(ctx context.Context) ([]models.Message, error) {
	if messages, ok := c.fresh(); ok {
		metrics.CacheHits.Inc()
		return messages, nil
	}
	metrics.CacheMisses.Inc()

	result, err, _ := c.group.Do("refresh", func() (any, error) {
		// A caller queued behind a completed refresh may arrive here after
		// the snapshot was already replaced; serve it without refetching.
		if messages, ok := c.fresh(); ok {
			return messages, nil
		}
		return c.refresh(ctx)
	})
	if err == nil {
		return result.([]models.Message), nil
	}

	c.mu.RLock()
	stale := c.entry
	c.mu.RUnlock()
	if stale != nil {
		metrics.CacheStaleServes.Inc()
		c.logger.Warn().
			Err(err).
			Time("fetched_at", stale.fetchedAt).
			Msg("refresh failed, serving stale snapshot")
		return stale.messages, nil
	}
	return nil, err
}

func (c *MessageCache) fresh() ([]models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false
	}
	if c.clock().Sub(c.entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.entry.messages, true
}

func (c *MessageCache) refresh(ctx context.Context) ([]models.Message, error) {
	// Waiters on the single-flight path share the first caller's fetch;
	// detaching from its cancellation keeps one impatient caller from
	// failing everyone behind it.
	messages, err := c.source.FetchAll(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entry = &entry{messages: messages, fetchedAt: c.clock()}
	c.mu.Unlock()

	c.logger.Info().Int("messages", len(messages)).Msg("message snapshot refreshed")
	return messages, nil
}

// Age reports how long ago the current snapshot was fetched. The second
// return is false when no snapshot exists yet.
func (c *MessageCache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return 0, false
	}
	return c.clock().Sub(c.entry.fetchedAt), true
}

// Size reports how many messages the current snapshot holds.
func (c *MessageCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return 0
	}
	return len(c.entry.messages)
}
