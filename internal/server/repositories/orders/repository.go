package orders

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	// FindByRequestID returns common.ErrorNotFound when the user has no order
	// with that request id.
	FindByRequestID(ctx context.Context, userID int64, requestID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
}
