package categories

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
}
