package service

import (
	"context"
	"sort"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/store"
)

type catalogService struct {
	store store.Client
}

// NewCatalogService creates the read-only product catalog service.
func NewCatalogService(s store.Client) domain.CatalogService {
	return &catalogService{store: s}
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := s.store.Get(ctx, "products/"+id, &p); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get", "failed to load product")
	}
	p.ID = id
	return &p, nil
}

// ListProducts returns the catalog sorted by id, so repeated calls render
// the storefront grid in a stable order.
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var records map[string]domain.Product
	if err := s.store.Get(ctx, "products", &records); err != nil {
		if store.IsNotFound(err) {
			return []domain.Product{}, nil
		}
		return nil, domain.Internal(err, "catalog.list", "failed to load products")
	}

	products := make([]domain.Product, 0, len(records))
	for id, p := range records {
		p.ID = id
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (s *catalogService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}
