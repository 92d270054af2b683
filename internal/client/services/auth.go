package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/client/events"
	"github.com/dmitrijs2005/truekicks/internal/client/identity"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

// ErrNotLoggedIn is returned by operations that need a stored, non-guest
// identity.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService manages the identity blob stored under identity.StorageKey.
// Every change publishes events.IdentityChanged so the cart and wishlist
// reload their namespaces.
type AuthService struct {
	api      client.API
	store    kv.Store
	resolver *identity.Resolver
	events   events.Publisher
	logger   logging.Logger
}

func NewAuthService(api client.API, store kv.Store, resolver *identity.Resolver, pub events.Publisher, logger logging.Logger) *AuthService {
	return &AuthService{
		api:      api,
		store:    store,
		resolver: resolver,
		events:   pub,
		logger:   logger.With("module", "auth"),
	}
}

// Register creates an account. It does not log in; the caller is expected
// to call Login afterwards.
func (s *AuthService) Register(ctx context.Context, fullName, email string, password []byte) (*models.Identity, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: full name, email and password are required", client.ErrRejected)
	}

	id, err := s.api.Register(ctx, fullName, email, password)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", id.ID)
	return id, nil
}

// Login authenticates against the server and stores the returned identity,
// access token included.
func (s *AuthService) Login(ctx context.Context, email string, password []byte) (*models.Identity, error) {
	id, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := s.save(ctx, *id); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user logged in", "user_id", id.ID)
	return id, nil
}

// Logout forgets the stored identity.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.forget(ctx, "logout")
}

// ContinueAsGuest browses without an account. Like logging out, it removes
// whatever identity is stored.
func (s *AuthService) ContinueAsGuest(ctx context.Context) error {
	return s.forget(ctx, "guest")
}

// Current returns the stored identity, or nil when none is stored.
func (s *AuthService) Current(ctx context.Context) (*models.Identity, error) {
	return s.resolver.Current(ctx)
}

// Rename changes the full name of the stored identity locally.
func (s *AuthService) Rename(ctx context.Context, fullName string) (*models.Identity, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", client.ErrRejected)
	}

	id, err := s.resolver.Current(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil || id.IsGuest() {
		return nil, ErrNotLoggedIn
	}

	id.FullName = fullName
	if err := s.save(ctx, *id); err != nil {
		return nil, err
	}
	return id, nil
}

func (s *AuthService) save(ctx context.Context, id models.Identity) error {
	blob, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(ctx, identity.StorageKey, blob); err != nil {
		return fmt.Errorf("store identity: %w", err)
	}
	s.events.Publish(ctx, events.Event{Kind: events.IdentityChanged, Source: "auth"})
	return nil
}

func (s *AuthService) forget(ctx context.Context, reason string) error {
	if err := s.store.Delete(ctx, identity.StorageKey); err != nil {
		return fmt.Errorf("remove identity: %w", err)
	}
	s.logger.Info(ctx, "stored identity removed", "reason", reason)
	s.events.Publish(ctx, events.Event{Kind: events.IdentityChanged, Source: "auth"})
	return nil
}
