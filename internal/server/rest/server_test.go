package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/common"
	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/money"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/products"
	"github.com/dmitrijs2005/truekicks/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	rows map[string][]models.Product
	cats []models.Category
	err  error
}

func (f *fakeCatalog) List(ctx context.Context, table string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !products.ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}
	return f.rows[table], nil
}

func (f *fakeCatalog) Detail(ctx context.Context, table string, id int64) (*models.Product, error) {
	if !products.ValidTable(table) {
		return nil, common.ErrorInvalidTable
	}
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.rows[table] {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]models.Category, error) {
	return f.cats, f.err
}

type fakeUsers struct {
	registered map[string]bool
	err        error
}

func (f *fakeUsers) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if f.registered[email] {
		return nil, common.ErrorAlreadyExists
	}
	f.registered[email] = true
	return &models.User{ID: 4, FullName: fullName, Email: email, PasswordHash: "secret-hash"}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if email != "ann@example.com" || password != "pw" {
		return nil, "", common.ErrorUnauthorized
	}
	return &models.User{ID: 4, FullName: "Ann", Email: email, PasswordHash: "secret-hash"}, "tok-4", nil
}

func (f *fakeUsers) UserIDFromToken(token string) (int64, error) {
	switch token {
	case "tok-4":
		return 4, nil
	case "tok-5":
		return 5, nil
	}
	return 0, common.ErrInvalidToken
}

type fakeOrders struct {
	placed []services.OrderInput
	list   []models.Order
	err    error
}

func (f *fakeOrders) Place(ctx context.Context, in services.OrderInput) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.FullName == "" || in.Address == "" || len(in.Items) == 0 || string(in.Items) == "[]" {
		return nil, common.ErrorValidation
	}
	f.placed = append(f.placed, in)
	return &models.Order{
		ID: 10, UserID: in.UserID, FullName: in.FullName, Address: in.Address,
		TotalPrice: in.TotalPrice, Items: in.Items, Status: common.OrderStatusProcessing,
	}, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return f.list, f.err
}

type testEnv struct {
	handler http.Handler
	catalog *fakeCatalog
	users   *fakeUsers
	orders  *fakeOrders
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		catalog: &fakeCatalog{rows: map[string][]models.Product{
			"sneakers": {
				{ID: 1, Name: "Dunk Low", Price: money.Parse("120"), DetailImages: []string{}},
				{ID: 2, Name: "Samba", Price: money.Parse("100"), DetailImages: []string{}},
			},
		}, cats: []models.Category{{ID: 1, Name: "Sneakers", Emoji: "👟"}}},
		users:  &fakeUsers{registered: map[string]bool{"taken@example.com": true}},
		orders: &fakeOrders{},
	}
	s := NewServer("127.0.0.1:0", []string{"*"}, logging.Nop(), env.catalog, env.users, env.orders)
	env.handler = s.Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var obj map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &obj)
	return rec, obj
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t)
	rec, _ := env.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, livenessText, rec.Body.String())
}

func TestListTables(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/sneakers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Dunk Low", got[0].Name)
	assert.Contains(t, rec.Body.String(), `"price":120`)

	for _, path := range []string{"/api/products", "/api/apparel", "/api/categories"} {
		rec, _ := env.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestListTables_Error(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.err = errors.New("db error: down")

	rec, body := env.do(t, http.MethodGet, "/api/products", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db error: down", body["error"])

	rec, body = env.do(t, http.MethodGet, "/api/categories", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db error: down", body["error"])
}

func TestDetail(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/detail/sneakers/2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Samba", body["name"])

	rec, body = env.do(t, http.MethodGet, "/api/detail/users/2", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid table", body["message"])

	rec, body = env.do(t, http.MethodGet, "/api/detail/sneakers/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", body["message"])

	rec, _ = env.do(t, http.MethodGet, "/api/detail/sneakers/abc", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/detail/nope/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.catalog.err = errors.New("db error: down")
	rec, body = env.do(t, http.MethodGet, "/api/detail/sneakers/1", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db error: down", body["error"])
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/register",
		`{"full_name":"Ann","email":"ann@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registration successful!", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(4), user["id"])
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	rec, body = env.do(t, http.MethodPost, "/api/register",
		`{"full_name":"X","email":"taken@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is already registered!", body["message"])

	rec, _ = env.do(t, http.MethodPost, "/api/register", `{"email":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/register", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.users.err = errors.New("db error: down")
	rec, body = env.do(t, http.MethodPost, "/api/register",
		`{"full_name":"B","email":"b@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db error: down", body["message"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful!", body["message"])
	assert.Equal(t, "tok-4", body["token"])
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	rec, body = env.do(t, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Wrong email or password!", body["message"])

	env.users.err = errors.New("boom")
	rec, body = env.do(t, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", body["message"])
}

const orderBody = `{"user_id":"4","full_name":"Ann","address":"Main 1, Riga, LV-1001","phone":"","total_price":"240","items":[{"id":3,"size":"42","quantity":2}],"request_id":"req-1"}`

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/orders", orderBody, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Order created successfully!", body["message"])

	list := body["order"].([]any)
	require.Len(t, list, 1)
	row := list[0].(map[string]any)
	assert.Equal(t, "Processing", row["status"])
	assert.Equal(t, float64(240), row["total_price"])

	require.Len(t, env.orders.placed, 1)
	in := env.orders.placed[0]
	assert.Equal(t, int64(4), in.UserID)
	assert.Equal(t, "req-1", in.RequestID)
	assert.Equal(t, "240.00", in.TotalPrice.Format())
}

func TestPlaceOrder_WithMatchingToken(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/orders", orderBody, "tok-4")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/orders", orderBody, "tok-5")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/orders", orderBody, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrder_MissingData(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]string{
		"user_id not a number": `{"user_id":"abc","full_name":"Ann","address":"A","items":[{}]}`,
		"user_id missing":      `{"full_name":"Ann","address":"A","items":[{}]}`,
		"user_id null":         `{"user_id":null,"full_name":"Ann","address":"A","items":[{}]}`,
		"no full_name":         `{"user_id":4,"address":"A","items":[{}]}`,
		"no address":           `{"user_id":4,"full_name":"Ann","items":[{}]}`,
		"empty items":          `{"user_id":4,"full_name":"Ann","address":"A","items":[]}`,
		"bad json":             `{"user_id":4,`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec, obj := env.do(t, http.MethodPost, "/api/orders", body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Missing required order data.", obj["error"])
		})
	}
	assert.Empty(t, env.orders.placed)
}

func TestPlaceOrder_DBFailure(t *testing.T) {
	env := newTestEnv(t)
	env.orders.err = errors.New("db error: boom")

	rec, body := env.do(t, http.MethodPost, "/api/orders", orderBody, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DB Insert Failed: db error: boom", body["error"])
}

func TestUserOrders(t *testing.T) {
	env := newTestEnv(t)
	env.orders.list = []models.Order{{ID: 12, UserID: 4, Status: "Processing", Items: json.RawMessage(`[]`)}}

	rec, _ := env.do(t, http.MethodGet, "/api/orders/user/4", "", "tok-4")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(12), got[0].ID)

	rec, _ = env.do(t, http.MethodGet, "/api/orders/user/4", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/orders/user/4", "", "tok-5")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/orders/user/x", "", "tok-4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserOrders_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/orders/user/4", "", "tok-4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_ExplicitOrigins(t *testing.T) {
	cfg := corsConfig([]string{"http://localhost:5173"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"4", 4, true},
		{" 4 ", 4, true},
		{"4.7", 4, true},
		{"4abc", 4, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, c := range cases {
		got, ok := leadingInt(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseUserID(t *testing.T) {
	for raw, want := range map[string]int64{`4`: 4, `"4"`: 4, `4.9`: 4, `"12x"`: 12} {
		got, ok := parseUserID(json.RawMessage(raw))
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{``, `null`, `true`, `"x"`, `{}`} {
		_, ok := parseUserID(json.RawMessage(raw))
		assert.False(t, ok, raw)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	env := newTestEnv(t)
	s := NewServer("127.0.0.1:0", nil, logging.Nop(), env.catalog, env.users, env.orders)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	env := newTestEnv(t)
	s := NewServer("127.0.0.1:99999", nil, logging.Nop(), env.catalog, env.users, env.orders)
	require.Error(t, s.Run(context.Background()))
}
