// Package events is the in-process notification bus connecting the
// connectivity override, the auth flow and the cart/wishlist containers.
package events

import (
	"context"
	"sort"
	"sync"
)

// Kind names a notification.
type Kind string

const (
	// IdentityChanged fires whenever the stored "user" identity is rewritten
	// or removed.
	IdentityChanged Kind = "identity-changed"
	// CartChanged fires after the cart contents change.
	CartChanged Kind = "cart-changed"
	// WishlistChanged fires after the wishlist contents change.
	WishlistChanged Kind = "wishlist-changed"
)

// Event is a single notification.
type Event struct {
	Kind Kind
	// Source names the publisher, for logs.
	Source string
}

// Handler receives events. It runs on the publisher's goroutine.
type Handler func(ctx context.Context, e Event)

// Unsubscribe removes a subscription. Calling it twice is harmless.
type Unsubscribe func()

type subscription struct {
	id      uint64
	kind    Kind
	handler Handler
}

// Bus delivers events synchronously in subscription order. Handlers are
// called outside the bus lock, so a handler may publish or subscribe.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]subscription)}
}

// Subscribe registers h for events of kind k.
func (b *Bus) Subscribe(k Kind, h Handler) Unsubscribe {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = subscription{id: id, kind: k, handler: h}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every handler subscribed to e.Kind.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	matched := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == e.Kind {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].id < matched[j].id })

	for _, s := range matched {
		s.handler(ctx, e)
	}
}

// Publisher is the publishing side of the bus.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Subscriber is the subscribing side of the bus.
type Subscriber interface {
	Subscribe(k Kind, h Handler) Unsubscribe
}
