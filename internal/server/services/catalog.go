package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/truekicks/internal/logging"
	"github.com/dmitrijs2005/truekicks/internal/server/models"
	"github.com/dmitrijs2005/truekicks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/truekicks/internal/server/storage"
)

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      storage.ImageURLResolver
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageURLResolver, logger logging.Logger) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		images:      images,
		logger:      logger.With("module", "catalog_service"),
	}
}

// List returns every row of table ordered by id. Unknown tables yield
// common.ErrorInvalidTable.
func (s *CatalogService) List(ctx context.Context, table string) ([]models.Product, error) {
	items, err := s.repomanager.Products(s.db).List(ctx, table)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.resolveImages(ctx, &items[i])
	}
	return items, nil
}

func (s *CatalogService) Detail(ctx context.Context, table string, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).Get(ctx, table, id)
	if err != nil {
		return nil, err
	}
	s.resolveImages(ctx, p)
	return p, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

// resolveImages replaces object keys with fetchable URLs. A key that fails to
// resolve is left as is so the row is still served.
func (s *CatalogService) resolveImages(ctx context.Context, p *models.Product) {
	p.ImageURL = s.resolve(ctx, p.ImageURL)
	for i, ref := range p.DetailImages {
		p.DetailImages[i] = s.resolve(ctx, ref)
	}
}

func (s *CatalogService) resolve(ctx context.Context, ref string) string {
	u, err := s.images.ImageURL(ctx, ref)
	if err != nil {
		s.logger.Warn(ctx, "image url not resolved", "ref", ref, "error", err)
		return ref
	}
	return u
}
