// Package connectivity swaps the stored identity for a guest one while the
// storefront API is unreachable and restores it when the API comes back.
package connectivity

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/truekicks/internal/client/events"
	"github.com/dmitrijs2005/truekicks/internal/client/identity"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

// BackupKey is the session store key holding the identity saved on going
// offline.
const BackupKey = "backup_user"

type State string

const (
	StateUnknown State = ""
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// Override is the two-state online/offline machine. Storage failures are
// logged and the transition still counts as done; nothing is retried.
type Override struct {
	mu      sync.Mutex
	durable kv.Store
	session kv.Store
	events  events.Publisher
	logger  logging.Logger
	state   State
}

func NewOverride(durable, session kv.Store, pub events.Publisher, logger logging.Logger) *Override {
	return &Override{
		durable: durable,
		session: session,
		events:  pub,
		logger:  logger.With("module", "connectivity"),
	}
}

// GuestBlob is the serialized guest identity written while offline.
func GuestBlob() []byte {
	b, _ := json.Marshal(models.GuestIdentity)
	return b
}

// Start sets the initial state and runs its entry action.
func (o *Override) Start(ctx context.Context, online bool) {
	o.mu.Lock()
	o.state = StateUnknown
	changed := o.transition(ctx, online)
	o.mu.Unlock()

	if changed {
		o.notify(ctx)
	}
}

// SetOnline moves the machine to the given connectivity. Reporting the
// current state again does nothing.
func (o *Override) SetOnline(ctx context.Context, online bool) {
	o.mu.Lock()
	target := StateOffline
	if online {
		target = StateOnline
	}
	if o.state == target {
		o.mu.Unlock()
		return
	}
	changed := o.transition(ctx, online)
	o.mu.Unlock()

	if changed {
		o.notify(ctx)
	}
}

func (o *Override) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// transition runs the entry action of the target state and reports whether
// the stored identity was rewritten.
func (o *Override) transition(ctx context.Context, online bool) bool {
	if online {
		o.state = StateOnline
		o.logger.Info(ctx, "switched to online mode")
		return o.enterOnline(ctx)
	}
	o.state = StateOffline
	o.logger.Info(ctx, "switched to offline mode")
	return o.enterOffline(ctx)
}

func (o *Override) enterOffline(ctx context.Context) bool {
	current, ok, err := o.durable.Get(ctx, identity.StorageKey)
	switch {
	case err != nil:
		o.logger.Error(ctx, "failed to read identity before going offline", "error", err)
	case ok:
		if err := o.session.Set(ctx, BackupKey, current); err != nil {
			o.logger.Error(ctx, "failed to back up identity", "error", err)
		}
	default:
		if err := o.session.Delete(ctx, BackupKey); err != nil {
			o.logger.Error(ctx, "failed to drop stale identity backup", "error", err)
		}
	}

	if err := o.durable.Set(ctx, identity.StorageKey, GuestBlob()); err != nil {
		o.logger.Error(ctx, "failed to write guest identity", "error", err)
	}
	return true
}

func (o *Override) enterOnline(ctx context.Context) bool {
	backup, ok, err := o.session.Get(ctx, BackupKey)
	if err != nil {
		o.logger.Error(ctx, "failed to read identity backup", "error", err)
		return false
	}
	if !ok {
		return false
	}

	if err := o.durable.Set(ctx, identity.StorageKey, backup); err != nil {
		o.logger.Error(ctx, "failed to restore identity", "error", err)
	}
	return true
}

func (o *Override) notify(ctx context.Context) {
	if o.events != nil {
		o.events.Publish(ctx, events.Event{Kind: events.IdentityChanged, Source: "connectivity"})
	}
}
