package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/dbx"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/categories"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/orders"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/products"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeProductsRepo struct {
	rows   map[string][]models.Product
	err    error
	tables []string
}

func (f *fakeProductsRepo) List(ctx context.Context, table string) ([]models.Product, error) {
	f.tables = append(f.tables, table)
	if f.err != nil {
		return nil, f.err
	}
	if !products.ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}
	out := make([]models.Product, len(f.rows[table]))
	copy(out, f.rows[table])
	return out, nil
}

func (f *fakeProductsRepo) Get(ctx context.Context, table string, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !products.ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}
	for _, p := range f.rows[table] {
		if p.ID == id {
			p := p
			p.DetailImages = append([]string(nil), p.DetailImages...)
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeCategoriesRepo struct {
	rows []models.Category
	err  error
}

func (f *fakeCategoriesRepo) List(ctx context.Context) ([]models.Category, error) {
	return f.rows, f.err
}

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeOrdersRepo struct {
	rows         []models.Order
	createErr    error
	findErr      error
	creates      int
	beforeCreate func(f *fakeOrdersRepo)
}

func (f *fakeOrdersRepo) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	f.creates++
	if f.beforeCreate != nil {
		f.beforeCreate(f)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	o.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *o)
	return o, nil
}

func (f *fakeOrdersRepo) FindByRequestID(ctx context.Context, userID int64, requestID string) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].RequestID == requestID {
			return &f.rows[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrdersRepo) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	products   *fakeProductsRepo
	categories *fakeCategoriesRepo
	users      *fakeUsersRepo
	orders     *fakeOrdersRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		products:   &fakeProductsRepo{rows: map[string][]models.Product{}},
		categories: &fakeCategoriesRepo{},
		users:      &fakeUsersRepo{byEmail: map[string]*models.User{}},
		orders:     &fakeOrdersRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository        { return m.products }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository    { return m.categories }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Orders(dbx.DBTX) orders.Repository            { return m.orders }
