package service

import (
	"context"
	"slices"
	"sync"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// Collection is the generalised list/create/update/delete state holder
// applied uniformly to projects, users and phases. Every successful fetch
// replaces the whole in-memory slice; there is no incremental patching. Every
// successful mutation triggers an awaited refetch with the last-used filter,
// so a caller observing a nil mutation error is guaranteed the items already
// reflect the change.
type Collection[T any, D any] struct {
	ops ports.ResourceOps[T, D]

	mu         sync.Mutex
	items      []T
	loaded     bool
	loading    bool
	refreshing bool
	err        error
	filter     ports.Filter
	gen        uint64
	closed     bool
}

func NewCollection[T any, D any](ops ports.ResourceOps[T, D]) *Collection[T, D] {
	return &Collection[T, D]{ops: ops}
}

// Load fetches the list with the given filter. The first load reports
// loading; subsequent loads report refreshing; exactly one of the two is true
// while a fetch is in flight, and the error is cleared when the fetch starts.
// When loads overlap, only the most recently started one applies: results
// from a superseded load are discarded.
func (c *Collection[T, D]) Load(ctx context.Context, filter ports.Filter) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	c.filter = filter
	c.err = nil
	if c.loaded {
		c.refreshing = true
	} else {
		c.loading = true
	}
	c.mu.Unlock()

	items, err := c.ops.List(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		// Closed, or a newer load has taken over; drop this result.
		return err
	}
	c.loading = false
	c.refreshing = false
	if err != nil {
		c.err = err
		return err
	}
	c.items = slices.Clone(items)
	c.loaded = true
	return nil
}

// Reload repeats the last load with the same filter.
func (c *Collection[T, D]) Reload(ctx context.Context) error {
	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()
	return c.Load(ctx, filter)
}

// Create submits a draft. On backend rejection the error carries a
// display-ready message and the items are untouched, so the caller can keep
// its editing dialog open. On success the awaited refetch has already run
// when Create returns; a refetch failure is exposed via Err, not as a
// mutation failure.
func (c *Collection[T, D]) Create(ctx context.Context, draft D) error {
	if err := c.ops.Create(ctx, draft); err != nil {
		return err
	}
	_ = c.Reload(ctx)
	return nil
}

// Update submits a patch for the given id. Same refetch contract as Create.
func (c *Collection[T, D]) Update(ctx context.Context, id int, patch D) error {
	if err := c.ops.Update(ctx, id, patch); err != nil {
		return err
	}
	_ = c.Reload(ctx)
	return nil
}

// Delete removes the given id. Same refetch contract as Create.
func (c *Collection[T, D]) Delete(ctx context.Context, id int) error {
	if err := c.ops.Delete(ctx, id); err != nil {
		return err
	}
	_ = c.Reload(ctx)
	return nil
}

// Items returns a copy of the current collection.
func (c *Collection[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Loading reports whether the first fetch is in flight.
func (c *Collection[T, D]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Refreshing reports whether a non-first fetch is in flight.
func (c *Collection[T, D]) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// Err returns the error of the last settled fetch, nil after a success.
func (c *Collection[T, D]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close marks the collection abandoned: in-flight results are discarded on
// arrival and later loads are no-ops. Used when the owning screen goes away
// so stale responses cannot overwrite anything.
func (c *Collection[T, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = nil
	c.loading = false
	c.refreshing = false
}
