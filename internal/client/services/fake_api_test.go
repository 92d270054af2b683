package services

import (
	"context"

	"github.com/dmitrijs2005/truekicks/internal/client/models"
)

// fakeAPI implements client.API for service tests.
type fakeAPI struct {
	FetchRet map[string][]byte
	FetchErr error
	Fetched  []string

	RegisterRet *models.Identity
	RegisterErr error

	LoginRet      *models.Identity
	LoginErr      error
	LastLoginUser string

	PlaceOrderRet *models.Order
	PlaceOrderErr error
	LastOrder     models.OrderRequest
	LastToken     string

	OrdersRet  []models.Order
	OrdersErr  error
	OrdersCall int
}

func (f *fakeAPI) Fetch(_ context.Context, path string) ([]byte, error) {
	f.Fetched = append(f.Fetched, path)
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return f.FetchRet[path], nil
}

func (f *fakeAPI) Register(_ context.Context, fullName, email string, _ []byte) (*models.Identity, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	if f.RegisterRet != nil {
		return f.RegisterRet, nil
	}
	return &models.Identity{ID: "1", FullName: fullName, Email: email}, nil
}

func (f *fakeAPI) Login(_ context.Context, email string, _ []byte) (*models.Identity, error) {
	f.LastLoginUser = email
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeAPI) PlaceOrder(_ context.Context, token string, req models.OrderRequest) (*models.Order, error) {
	f.LastToken = token
	f.LastOrder = req
	if f.PlaceOrderErr != nil {
		return nil, f.PlaceOrderErr
	}
	return f.PlaceOrderRet, nil
}

func (f *fakeAPI) Orders(_ context.Context, token string, _ models.ID) ([]models.Order, error) {
	f.OrdersCall++
	f.LastToken = token
	return f.OrdersRet, f.OrdersErr
}
