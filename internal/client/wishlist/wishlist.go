// Package wishlist holds the per-user wishlist, stored the same way as the
// cart but keyed by item id alone.
package wishlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/truekicks/internal/client/events"
	"github.com/dmitrijs2005/truekicks/internal/client/identity"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

const keyPrefix = "wishlistItems_"

// ErrStorageCorrupt is returned when the stored wishlist is not a list of
// items. The container falls back to an empty wishlist.
var ErrStorageCorrupt = errors.New("stored wishlist is corrupt")

func StorageKey(userID models.ID) string {
	return keyPrefix + userID.String()
}

type Container struct {
	mu       sync.Mutex
	store    kv.Store
	identity identity.Provider
	events   events.Publisher
	logger   logging.Logger
	items    []models.WishlistItem
}

func NewContainer(store kv.Store, ids identity.Provider, pub events.Publisher, logger logging.Logger) *Container {
	return &Container{
		store:    store,
		identity: ids,
		events:   pub,
		logger:   logger.With("module", "wishlist"),
		items:    []models.WishlistItem{},
	}
}

func (c *Container) Listen(sub events.Subscriber) events.Unsubscribe {
	return sub.Subscribe(events.IdentityChanged, func(ctx context.Context, e events.Event) {
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn(ctx, "wishlist refresh after identity change failed", "source", e.Source, "error", err)
		}
	})
}

func (c *Container) Initialize(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh reloads the wishlist of the currently resolved user.
func (c *Container) Refresh(ctx context.Context) error {
	c.mu.Lock()
	err := c.reload(ctx)
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

func (c *Container) reload(ctx context.Context) error {
	c.items = []models.WishlistItem{}

	userID, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}

	raw, found, err := c.store.Get(ctx, StorageKey(userID))
	if err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}
	if !found {
		return nil
	}

	items, err := decode(raw)
	if err != nil {
		c.logger.Warn(ctx, "discarding corrupt wishlist record", "user_id", userID, "error", err)
		return err
	}
	c.items = items
	return nil
}

// Add appends item unless an item with the same id is already present.
// Guests are ignored.
func (c *Container) Add(ctx context.Context, item models.WishlistItem) error {
	c.mu.Lock()

	userID, ok := c.identity.CurrentUserID(ctx)
	if !ok || c.indexOf(item.ID) >= 0 {
		c.mu.Unlock()
		return nil
	}

	c.items = append(c.items, item)
	err := c.persist(ctx, userID)
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

// Remove drops the item with the given id, if present.
func (c *Container) Remove(ctx context.Context, id models.ID) error {
	c.mu.Lock()

	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)

	var err error
	if userID, ok := c.identity.CurrentUserID(ctx); ok {
		err = c.persist(ctx, userID)
	}
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

func (c *Container) Contains(id models.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(id) >= 0
}

func (c *Container) Items() []models.WishlistItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.WishlistItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Container) indexOf(id models.ID) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the list under the user's key. An empty list removes the
// record so that a user who never kept anything has no key at all.
func (c *Container) persist(ctx context.Context, userID models.ID) error {
	if len(c.items) == 0 {
		if err := c.store.Delete(ctx, StorageKey(userID)); err != nil {
			c.logger.Error(ctx, "failed to remove empty wishlist", "user_id", userID, "error", err)
			return fmt.Errorf("persist wishlist: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := c.store.Set(ctx, StorageKey(userID), raw); err != nil {
		c.logger.Error(ctx, "failed to persist wishlist", "user_id", userID, "error", err)
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}

func (c *Container) notify(ctx context.Context) {
	if c.events != nil {
		c.events.Publish(ctx, events.Event{Kind: events.WishlistChanged, Source: "wishlist"})
	}
}

func decode(raw []byte) ([]models.WishlistItem, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}

	items := make([]models.WishlistItem, 0, len(elems))
	for i, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrStorageCorrupt, i)
		}
		var it models.WishlistItem
		if err := json.Unmarshal(e, &it); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrStorageCorrupt, i, err)
		}
		if it.ID == "" {
			return nil, fmt.Errorf("%w: element %d has no id", ErrStorageCorrupt, i)
		}
		items = append(items, it)
	}
	return items, nil
}
