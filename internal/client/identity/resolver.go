// Package identity resolves the current user from the identity blob kept in
// the durable store.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

// StorageKey is the durable store key holding the identity JSON.
const StorageKey = "user"

// ErrMalformed is returned when the stored identity is not a JSON object
// of the expected shape.
var ErrMalformed = errors.New("malformed identity")

// Provider resolves the id whose storage namespace the containers use.
// ok is false for guests and when nobody is logged in.
type Provider interface {
	CurrentUserID(ctx context.Context) (id models.ID, ok bool)
}

type Resolver struct {
	store  kv.Store
	logger logging.Logger
}

func NewResolver(store kv.Store, logger logging.Logger) *Resolver {
	return &Resolver{store: store, logger: logger.With("module", "identity")}
}

// Decode parses a stored identity blob.
func Decode(raw []byte) (models.Identity, error) {
	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return id, nil
}

// Current returns the stored identity, or nil when none is stored.
func (r *Resolver) Current(ctx context.Context) (*models.Identity, error) {
	raw, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	id, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CurrentUserID fails closed: unreadable or malformed identities resolve to
// no identity, and so does any guest identity whatever its id.
func (r *Resolver) CurrentUserID(ctx context.Context) (models.ID, bool) {
	id, err := r.Current(ctx)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			r.logger.Warn(ctx, "stored identity is malformed, treating as anonymous", "error", err)
		} else {
			r.logger.Error(ctx, "failed to read stored identity", "error", err)
		}
		return "", false
	}
	if id == nil || id.IsGuest() || id.ID.Empty() {
		return "", false
	}
	return id.ID, true
}
