package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/dbx"
	"github.com/dmitrijs2005/truekicks/internal/money"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/repomanager"
)

// OrderInput is a checkout as received from a client.
type OrderInput struct {
	UserID     int64
	FullName   string
	Address    string
	Phone      string
	TotalPrice money.Money
	Items      json.RawMessage
	// RequestID, when set, makes placement idempotent per user.
	RequestID string
}

type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m}
}

func (in *OrderInput) validate() error {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Address) == "" {
		return common.ErrorValidation
	}
	var items []json.RawMessage
	if len(in.Items) == 0 || json.Unmarshal(in.Items, &items) != nil || len(items) == 0 {
		return common.ErrorValidation
	}
	return nil
}

// Place stores a new order with status Processing. When the user already
// placed an order with the same request id, that order is returned instead.
func (s *OrderService) Place(ctx context.Context, in OrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Orders(tx)

		if in.RequestID != "" {
			existing, err := repo.FindByRequestID(ctx, in.UserID, in.RequestID)
			if err == nil {
				order = existing
				return nil
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
		}

		created, err := repo.Create(ctx, &models.Order{
			UserID:     in.UserID,
			FullName:   in.FullName,
			Address:    in.Address,
			Phone:      in.Phone,
			TotalPrice: in.TotalPrice,
			Items:      in.Items,
			Status:     common.OrderStatusProcessing,
			RequestID:  in.RequestID,
		})
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if errors.Is(err, common.ErrorAlreadyExists) && in.RequestID != "" {
		// A concurrent submit with the same request id committed first.
		order, err = s.repomanager.Orders(s.db).FindByRequestID(ctx, in.UserID, in.RequestID)
	}
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repomanager.Orders(s.db).ListByUser(ctx, userID)
}
