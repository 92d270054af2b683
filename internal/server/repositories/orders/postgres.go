package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/dbx"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, user_id, full_name, address, phone, total_price, items, status, request_id, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*models.Order, error) {
	o := &models.Order{}
	var items []byte
	var requestID sql.NullString
	err := row.Scan(&o.ID, &o.UserID, &o.FullName, &o.Address, &o.Phone,
		&o.TotalPrice, &items, &o.Status, &requestID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.RequestID = requestID.String
	return o, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	query :=
		`INSERT INTO orders (user_id, full_name, address, phone, total_price, items, status, request_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + columns

	created, err := scanOrder(r.db.QueryRowContext(ctx, query,
		order.UserID, order.FullName, order.Address, order.Phone,
		order.TotalPrice, []byte(order.Items), order.Status, nullable(order.RequestID)))
	if err != nil {
		// The only unique key besides id is (user_id, request_id).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) FindByRequestID(ctx context.Context, userID int64, requestID string) (*models.Order, error) {
	query := `SELECT ` + columns + ` FROM orders WHERE user_id = $1 AND request_id = $2`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, userID, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `SELECT ` + columns + ` FROM orders WHERE user_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
