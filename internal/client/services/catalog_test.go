package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(api *fakeAPI, now *time.Time) (*CatalogService, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	svc := NewCatalogService(api, store, 24*time.Hour, logging.Nop())
	svc.now = func() time.Time { return *now }
	return svc, store
}

func TestCatalog_NetworkFirstThenCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{FetchRet: map[string][]byte{
		"/api/sneakers": []byte(`[{"id":1,"name":"Dunk","price":"1200000","image_url":"dunk.png"}]`),
	}}
	svc, store := newCatalog(api, &now)
	ctx := context.Background()

	got, err := svc.Sneakers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Price.Equal(money.Parse("1200000")))

	_, ok, _ := store.Get(ctx, "api-cache:/api/sneakers")
	assert.True(t, ok)

	api.FetchErr = fmt.Errorf("%w: dial tcp", client.ErrUnavailable)
	now = now.Add(time.Hour)

	got, err = svc.Sneakers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dunk", got[0].Name)
}

func TestCatalog_StaleCacheIsNotServed(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{FetchRet: map[string][]byte{"/api/categories": []byte(`[{"id":1,"name":"Running"}]`)}}
	svc, _ := newCatalog(api, &now)
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)

	api.FetchErr = client.ErrUnavailable
	now = now.Add(25 * time.Hour)

	_, err = svc.Categories(ctx)
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestCatalog_OtherErrorsBypassCache(t *testing.T) {
	now := time.Now()
	api := &fakeAPI{FetchRet: map[string][]byte{"/api/detail/sneakers/3": []byte(`{"id":3,"name":"Air"}`)}}
	svc, _ := newCatalog(api, &now)
	ctx := context.Background()

	p, err := svc.Detail(ctx, TableSneakers, "3")
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), p.ID)

	api.FetchErr = client.ErrNotFound
	_, err = svc.Detail(ctx, TableSneakers, "3")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestCatalog_DetailRejectsUnknownTable(t *testing.T) {
	now := time.Now()
	api := &fakeAPI{}
	svc, _ := newCatalog(api, &now)

	_, err := svc.Detail(context.Background(), "users", "1")
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.Empty(t, api.Fetched)
}

func TestCatalog_CorruptCacheEntryIsDropped(t *testing.T) {
	now := time.Now()
	api := &fakeAPI{FetchErr: client.ErrUnavailable}
	svc, store := newCatalog(api, &now)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "api-cache:/api/products", []byte("not json")))

	_, err := svc.Products(ctx)
	assert.ErrorIs(t, err, client.ErrUnavailable)

	_, ok, _ := store.Get(ctx, "api-cache:/api/products")
	assert.False(t, ok)
}

func TestCatalog_UndecodableBody(t *testing.T) {
	now := time.Now()
	api := &fakeAPI{FetchRet: map[string][]byte{"/api/apparel": []byte(`{"not":"a list"}`)}}
	svc, _ := newCatalog(api, &now)

	_, err := svc.Apparel(context.Background())
	assert.ErrorIs(t, err, client.ErrServer)
}
