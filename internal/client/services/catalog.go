package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/client/models"
	"github.com/dmitrijs2005/truekicks/internal/client/repositories/kv"
	"github.com/dmitrijs2005/truekicks/internal/logging"
)

const cachePrefix = "api-cache:"

// Product tables served by the storefront.
const (
	TableProducts = "products"
	TableSneakers = "sneakers"
	TableApparel  = "apparel"
)

// ErrUnknownTable is returned by Detail for tables outside the catalog.
var ErrUnknownTable = errors.New("unknown product table")

// cacheEntry is the envelope stored for every cached GET.
type cacheEntry struct {
	StoredAt time.Time       `json:"stored_at"`
	Body     json.RawMessage `json:"body"`
}

// CatalogService reads the catalog network-first. Successful responses are
// cached in the durable store; while the server is unreachable the cached
// copy is served for up to maxAge.
type CatalogService struct {
	api    client.API
	cache  kv.Store
	maxAge time.Duration
	logger logging.Logger
	now    func() time.Time
}

func NewCatalogService(api client.API, cache kv.Store, maxAge time.Duration, logger logging.Logger) *CatalogService {
	return &CatalogService{
		api:    api,
		cache:  cache,
		maxAge: maxAge,
		logger: logger.With("module", "catalog"),
		now:    time.Now,
	}
}

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, TableProducts)
}

func (s *CatalogService) Sneakers(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, TableSneakers)
}

func (s *CatalogService) Apparel(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, TableApparel)
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.get(ctx, "/api/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Detail returns a single product of the given table.
func (s *CatalogService) Detail(ctx context.Context, table string, id models.ID) (*models.Product, error) {
	if !validTable(table) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	var out models.Product
	path := "/api/detail/" + table + "/" + url.PathEscape(id.String())
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CatalogService) list(ctx context.Context, table string) ([]models.Product, error) {
	var out []models.Product
	if err := s.get(ctx, "/api/"+table, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) get(ctx context.Context, path string, out any) error {
	body, err := s.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", client.ErrServer, path, err)
	}
	return nil
}

func (s *CatalogService) fetch(ctx context.Context, path string) ([]byte, error) {
	body, err := s.api.Fetch(ctx, path)
	if err == nil {
		s.store(ctx, path, body)
		return body, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, err
	}

	cached, ok := s.lookup(ctx, path)
	if !ok {
		return nil, err
	}
	s.logger.Debug(ctx, "serving cached response", "path", path)
	return cached, nil
}

func (s *CatalogService) store(ctx context.Context, path string, body []byte) {
	blob, err := json.Marshal(cacheEntry{StoredAt: s.now().UTC(), Body: body})
	if err != nil {
		s.logger.Warn(ctx, "failed to encode cache entry", "path", path, "error", err)
		return
	}
	if err := s.cache.Set(ctx, cachePrefix+path, blob); err != nil {
		s.logger.Warn(ctx, "failed to cache response", "path", path, "error", err)
	}
}

func (s *CatalogService) lookup(ctx context.Context, path string) ([]byte, bool) {
	blob, ok, err := s.cache.Get(ctx, cachePrefix+path)
	if err != nil {
		s.logger.Warn(ctx, "failed to read cache", "path", path, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var e cacheEntry
	if err := json.Unmarshal(blob, &e); err != nil || len(e.Body) == 0 {
		s.logger.Warn(ctx, "dropping unreadable cache entry", "path", path)
		_ = s.cache.Delete(ctx, cachePrefix+path)
		return nil, false
	}
	if s.maxAge > 0 && s.now().Sub(e.StoredAt) > s.maxAge {
		return nil, false
	}
	return e.Body, true
}

func validTable(table string) bool {
	switch table {
	case TableProducts, TableSneakers, TableApparel:
		return true
	}
	return false
}
