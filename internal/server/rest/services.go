package rest

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/services"
)

type CatalogService interface {
	List(ctx context.Context, table string) ([]models.Product, error)
	Detail(ctx context.Context, table string, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type UserService interface {
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UserIDFromToken(token string) (int64, error)
}

type OrderService interface {
	Place(ctx context.Context, in services.OrderInput) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
}
