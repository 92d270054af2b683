package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/truekicks/internal/client/cart"
	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/client/identity"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

var (
	// ErrCheckoutFailed is returned for any failure while placing an order.
	// The cart is left untouched.
	ErrCheckoutFailed = errors.New("failed to place order")
	// ErrEmptyCart is returned when checking out with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// ShippingDetails is what the checkout form collects.
type ShippingDetails struct {
	FullName   string
	Address    string
	City       string
	PostalCode string
	Phone      string
}

// JoinedAddress is the single address line stored on the order:
// "address, city, postal code".
func (d ShippingDetails) JoinedAddress() string {
	return fmt.Sprintf("%s, %s, %s", strings.TrimSpace(d.Address), strings.TrimSpace(d.City), strings.TrimSpace(d.PostalCode))
}

type CheckoutService struct {
	api      client.API
	resolver *identity.Resolver
	cart     *cart.Container
	logger   logging.Logger
	newID    func() string

	// pending remembers the request id of the last unconfirmed submit so a
	// retry of the same order reuses it.
	mu      sync.Mutex
	pending pendingOrder
}

type pendingOrder struct {
	fingerprint string
	requestID   string
}

func NewCheckoutService(api client.API, resolver *identity.Resolver, c *cart.Container, logger logging.Logger) *CheckoutService {
	return &CheckoutService{
		api:      api,
		resolver: resolver,
		cart:     c,
		logger:   logger.With("module", "checkout"),
		newID:    uuid.NewString,
	}
}

// PlaceOrder submits the current cart. On success the cart is cleared.
// Resubmitting the same order after a failure sends the same request id,
// so the server returns the order it may already have stored.
func (s *CheckoutService) PlaceOrder(ctx context.Context, d ShippingDetails) (*models.Order, error) {
	user, err := s.loggedIn(ctx)
	if err != nil {
		return nil, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(d.FullName) == "" || strings.TrimSpace(d.Address) == "" {
		return nil, fmt.Errorf("%w: full name and address are required", ErrCheckoutFailed)
	}

	req := models.OrderRequest{
		UserID:     user.ID,
		FullName:   strings.TrimSpace(d.FullName),
		Address:    d.JoinedAddress(),
		Phone:      strings.TrimSpace(d.Phone),
		TotalPrice: s.cart.TotalPrice(),
		Items:      items,
	}
	fingerprint, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	req.RequestID = s.requestID(string(fingerprint))

	order, err := s.api.PlaceOrder(ctx, user.Token, req)
	if err != nil {
		s.logger.Error(ctx, "checkout failed", "request_id", req.RequestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	s.settle(req.RequestID)

	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "order placed but cart was not cleared", "order_id", order.ID, "error", err)
	}
	s.logger.Info(ctx, "order placed", "order_id", order.ID, "request_id", req.RequestID)
	return order, nil
}

// requestID returns the pending id when fingerprint matches the previous
// unconfirmed submit and a fresh one otherwise.
func (s *CheckoutService) requestID(fingerprint string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.requestID == "" || s.pending.fingerprint != fingerprint {
		s.pending = pendingOrder{fingerprint: fingerprint, requestID: s.newID()}
	}
	return s.pending.requestID
}

func (s *CheckoutService) settle(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.requestID == requestID {
		s.pending = pendingOrder{}
	}
}

// Orders returns the order history of the logged-in user, newest first.
// Guests have no history.
func (s *CheckoutService) Orders(ctx context.Context) ([]models.Order, error) {
	user, err := s.loggedIn(ctx)
	if errors.Is(err, ErrNotLoggedIn) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.api.Orders(ctx, user.Token, user.ID)
}

func (s *CheckoutService) loggedIn(ctx context.Context) (*models.Identity, error) {
	user, err := s.resolver.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsGuest() || user.ID.Empty() {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}
