package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/truekicks/internal/dbx"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/categories"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/orders"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/products"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Products(db dbx.DBTX) products.Repository
	Categories(db dbx.DBTX) categories.Repository
	Users(db dbx.DBTX) users.Repository
	Orders(db dbx.DBTX) orders.Repository
}
