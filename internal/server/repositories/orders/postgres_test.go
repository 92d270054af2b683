package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/money"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var orderCols = []string{"id", "user_id", "full_name", "address", "phone", "total_price", "items", "status", "request_id", "created_at"}

const insertQ = `(?s)^INSERT\s+INTO\s+orders\s*\(user_id,\s*full_name,\s*address,\s*phone,\s*total_price,\s*items,\s*status,\s*request_id\)\s*VALUES\s*\(\$1,.*\$8\)\s*RETURNING\s+id,.*created_at$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	items := json.RawMessage(`[{"id":3,"size":"42","quantity":2}]`)
	now := time.Now().UTC()

	mock.ExpectQuery(insertQ).
		WithArgs(int64(4), "Ann", "Main 1, Riga, LV-1001", "", sqlmock.AnyArg(), []byte(items), "Processing",
			sql.NullString{String: "req-1", Valid: true}).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(int64(10), int64(4), "Ann", "Main 1, Riga, LV-1001", "", "240.00", []byte(items), "Processing", "req-1", now))

	got, err := repo.Create(context.Background(), &models.Order{
		UserID:     4,
		FullName:   "Ann",
		Address:    "Main 1, Riga, LV-1001",
		TotalPrice: money.Parse("240"),
		Items:      items,
		Status:     common.OrderStatusProcessing,
		RequestID:  "req-1",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 10 || got.RequestID != "req-1" || got.TotalPrice.Format() != "240.00" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if string(got.Items) != string(items) {
		t.Fatalf("items mismatch: %s", got.Items)
	}
}

func TestCreate_EmptyRequestIDIsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs(int64(4), "Ann", "A", "", sqlmock.AnyArg(), sqlmock.AnyArg(), "Processing", sql.NullString{}).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(int64(11), int64(4), "Ann", "A", "", "1", []byte(`[]`), "Processing", nil, time.Now()))

	got, err := repo.Create(context.Background(), &models.Order{
		UserID: 4, FullName: "Ann", Address: "A", Items: json.RawMessage(`[]`), Status: "Processing",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.RequestID != "" {
		t.Fatalf("expected empty request id, got %q", got.RequestID)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Order{UserID: 1, Items: json.RawMessage(`[]`)})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_DuplicateRequestID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"orders_user_request_idx\""})

	_, err := repo.Create(context.Background(), &models.Order{UserID: 4, Items: json.RawMessage(`[]`), RequestID: "req-1"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestFindByRequestID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+orders\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+request_id\s*=\s*\$2$`

	mock.ExpectQuery(q).WithArgs(int64(4), "req-1").
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(int64(10), int64(4), "Ann", "A", "", "5", []byte(`[]`), "Processing", "req-1", time.Now()))
	mock.ExpectQuery(q).WithArgs(int64(4), "req-2").WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByRequestID(context.Background(), 4, "req-1")
	if err != nil || got.ID != 10 {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}

	_, err = repo.FindByRequestID(context.Background(), 4, "req-2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+orders\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s+DESC$`
	mock.ExpectQuery(q).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(int64(12), int64(4), "Ann", "A", "", "5", []byte(`[]`), "Processing", nil, time.Now()).
			AddRow(int64(10), int64(4), "Ann", "A", "", "7", []byte(`[]`), "Processing", "req-1", time.Now()))

	got, err := repo.ListByUser(context.Background(), 4)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 12 || got[1].ID != 10 {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+orders`).WithArgs(int64(4)).WillReturnError(errors.New("boom"))

	_, err := repo.ListByUser(context.Background(), 4)
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
