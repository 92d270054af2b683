package client

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
)

// API is the storefront backend as seen by the client services.
type API interface {
	// Fetch returns the raw JSON body of a catalog GET such as
	// "/api/products" or "/api/detail/sneakers/3".
	Fetch(ctx context.Context, path string) ([]byte, error)
	Register(ctx context.Context, fullName, email string, password []byte) (*models.Identity, error)
	Login(ctx context.Context, email string, password []byte) (*models.Identity, error)
	PlaceOrder(ctx context.Context, token string, req models.OrderRequest) (*models.Order, error)
	Orders(ctx context.Context, token string, userID models.ID) ([]models.Order, error)
}
