// Package products reads the catalog tables. The three product tables share
// one schema, so every call names the table; only allow-listed names reach SQL.
package products

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/server/models"
)

// Tables lists the product tables, in the order the storefront shows them.
var Tables = []string{"products", "sneakers", "apparel"}

// ValidTable reports whether table is one of Tables.
func ValidTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}

type Repository interface {
	List(ctx context.Context, table string) ([]models.Product, error)
	Get(ctx context.Context, table string, id int64) (*models.Product, error)
}
