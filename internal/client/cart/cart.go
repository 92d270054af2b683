// Package cart holds the per-user shopping cart. State lives in memory and
// is written through to the durable store under a key namespaced by the
// resolved user id; guests have no cart.
package cart

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
	"github.com/dmitrijs2005/truekicks/internal/money"
)

const keyPrefix = "cartItems_"

// ErrStorageCorrupt is returned when the stored cart record is not a list
// of line items. The container falls back to an empty cart.
var ErrStorageCorrupt = errors.New("stored cart is corrupt")

// StorageKey is the durable store key of the given user's cart.
func StorageKey(userID models.ID) string {
	return keyPrefix + userID.String()
}

type Container struct {
	mu       sync.Mutex
	store    kv.Store
	identity identity.Provider
	events   events.Publisher
	logger   logging.Logger
	items    []models.CartItem
}

func NewContainer(store kv.Store, ids identity.Provider, pub events.Publisher, logger logging.Logger) *Container {
	return &Container{
		store:    store,
		identity: ids,
		events:   pub,
		logger:   logger.With("module", "cart"),
		items:    []models.CartItem{},
	}
}

// Listen reloads the cart whenever the identity changes.
func (c *Container) Listen(sub events.Subscriber) events.Unsubscribe {
	return sub.Subscribe(events.IdentityChanged, func(ctx context.Context, e events.Event) {
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn(ctx, "cart refresh after identity change failed", "source", e.Source, "error", err)
		}
	})
}

// Initialize loads the cart of the current user.
func (c *Container) Initialize(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh re-resolves the identity and reloads its cart. Guests, missing
// records and corrupt records all yield an empty cart; the latter also
// returns an error wrapping ErrStorageCorrupt.
func (c *Container) Refresh(ctx context.Context) error {
	c.mu.Lock()
	err := c.reload(ctx)
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

func (c *Container) reload(ctx context.Context) error {
	c.items = []models.CartItem{}

	userID, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}

	raw, found, err := c.store.Get(ctx, StorageKey(userID))
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if !found {
		return nil
	}

	items, err := decode(raw)
	if err != nil {
		c.logger.Warn(ctx, "discarding corrupt cart record", "user_id", userID, "error", err)
		return err
	}
	c.items = items
	return nil
}

// Add merges item into the cart: a line with the same id and size gets its
// quantity increased, otherwise the item is appended. Guests are ignored.
func (c *Container) Add(ctx context.Context, item models.CartItem) error {
	c.mu.Lock()

	userID, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		c.mu.Unlock()
		return nil
	}

	if i := c.indexOf(item.ID, item.Size); i >= 0 {
		c.items[i].Quantity += item.Quantity
	} else {
		c.items = append(c.items, item)
	}

	err := c.persist(ctx, userID)
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

// Remove drops the line with the given id and size, if any.
func (c *Container) Remove(ctx context.Context, id models.ID, size string) error {
	return c.mutate(ctx, func() bool {
		i := c.indexOf(id, size)
		if i < 0 {
			return false
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		return true
	})
}

// UpdateQuantity sets the quantity of the matching line. The value is not
// clamped, so zero and negative quantities are kept as given.
func (c *Container) UpdateQuantity(ctx context.Context, id models.ID, size string, quantity models.Quantity) error {
	return c.mutate(ctx, func() bool {
		i := c.indexOf(id, size)
		if i < 0 {
			return false
		}
		c.items[i].Quantity = quantity
		return true
	})
}

// Clear empties the cart and deletes the stored record.
func (c *Container) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.items = []models.CartItem{}

	var err error
	if userID, ok := c.identity.CurrentUserID(ctx); ok {
		if err = c.store.Delete(ctx, StorageKey(userID)); err != nil {
			err = fmt.Errorf("clear cart: %w", err)
		}
	}
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

// Items returns a copy of the cart lines in insertion order.
func (c *Container) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is the sum of price times quantity over all lines.
func (c *Container) TotalPrice() money.Money {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := money.Zero
	for _, it := range c.items {
		total = total.Plus(it.Subtotal())
	}
	return total
}

// TotalItems is the sum of all line quantities.
func (c *Container) TotalItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, it := range c.items {
		n += int64(it.Quantity)
	}
	return n
}

func (c *Container) mutate(ctx context.Context, fn func() bool) error {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return nil
	}

	var err error
	if userID, ok := c.identity.CurrentUserID(ctx); ok {
		err = c.persist(ctx, userID)
	}
	c.mu.Unlock()

	c.notify(ctx)
	return err
}

func (c *Container) indexOf(id models.ID, size string) int {
	for i, it := range c.items {
		if it.ID == id && it.Size == size {
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
			c.logger.Error(ctx, "failed to remove empty cart", "user_id", userID, "error", err)
			return fmt.Errorf("persist cart: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Set(ctx, StorageKey(userID), raw); err != nil {
		c.logger.Error(ctx, "failed to persist cart", "user_id", userID, "error", err)
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func (c *Container) notify(ctx context.Context) {
	if c.events != nil {
		c.events.Publish(ctx, events.Event{Kind: events.CartChanged, Source: "cart"})
	}
}

// decode validates a stored record: a JSON array of objects, each with an id.
func decode(raw []byte) ([]models.CartItem, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}

	items := make([]models.CartItem, 0, len(elems))
	for i, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrStorageCorrupt, i)
		}
		var it models.CartItem
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
