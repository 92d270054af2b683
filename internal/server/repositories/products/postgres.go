package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/dbx"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, name, category, price, image_url, description, detail_images`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	var images []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.ImageURL, &p.Description, &images); err != nil {
		return nil, err
	}
	p.DetailImages = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.DetailImages); err != nil {
			return nil, fmt.Errorf("detail_images of %d: %w", p.ID, err)
		}
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, table string) ([]models.Product, error) {
	if !ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, columns, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, table string, id int64) (*models.Product, error) {
	if !ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columns, table)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
