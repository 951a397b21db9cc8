package app

import (
	"context"
	"strconv"

	"webstore/internal/domain"
)

// InfoText is the static description served by the info endpoint.
const InfoText = "index.html => Info in HTML format"

// CatalogService encapsulates catalog read use cases.
type CatalogService struct {
	repo domain.CatalogRepository
}

// NewCatalogService creates a CatalogService backed by the given repository.
func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Info returns the static info string.
func (s *CatalogService) Info() string {
	return InfoText
}

// ProductGroups returns all groups keyed by id.
func (s *CatalogService) ProductGroups(ctx context.Context) (map[string]string, error) {
	return s.repo.Groups(ctx)
}

// Products returns the products of a group. Ids arrive as text from the
// transport; a non-numeric id can never name a resource and is NotFound.
func (s *CatalogService) Products(ctx context.Context, pgID string) ([]domain.Product, error) {
	gid, err := strconv.Atoi(pgID)
	if err != nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Product group not found: %s", pgID)
	}
	return s.repo.Products(ctx, gid)
}

// Product returns one product of a group.
func (s *CatalogService) Product(ctx context.Context, pgID, pID string) (domain.Product, error) {
	gid, err := strconv.Atoi(pgID)
	if err != nil {
		return domain.Product{}, domain.Errorf(domain.ErrNotFound, "Product group not found: %s", pgID)
	}
	id, err := strconv.Atoi(pID)
	if err != nil {
		return domain.Product{}, domain.Errorf(domain.ErrNotFound, "Product not found: %s/%s", pgID, pID)
	}
	return s.repo.Product(ctx, gid, id)
}
