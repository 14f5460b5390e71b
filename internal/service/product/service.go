package product

import (
	"context"
	"strings"

	"luzeouro/internal/domain"
	productrepo "luzeouro/internal/repository/product"
)

var ErrUnknownPriceBand = domain.Invalid("unknown price band")

type categoryLister interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	repo       productrepo.Repository
	categories categoryLister
}

func New(repo productrepo.Repository, categories categoryLister) *Service {
	return &Service{repo: repo, categories: categories}
}

// Facets lists the values the catalog can be filtered by.
type Facets struct {
	Categories []domain.Category  `json:"categories"`
	Materials  []string           `json:"materials"`
	PriceBands []domain.PriceBand `json:"priceBands"`
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.CategoryKey = strings.TrimSpace(filter.CategoryKey)
	filter.Material = strings.TrimSpace(filter.Material)
	if filter.Band != "" && !filter.Band.Valid() {
		return nil, ErrUnknownPriceBand
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Filters(ctx context.Context) (Facets, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return Facets{}, err
	}
	materials, err := s.repo.Materials(ctx)
	if err != nil {
		return Facets{}, err
	}
	return Facets{Categories: cats, Materials: materials, PriceBands: domain.PriceBands}, nil
}

// Create validates and stores a new catalog entry.
func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = ""
	return s.Upsert(ctx, p)
}

// Upsert validates p and inserts it, or updates the row with the same id.
func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Material = strings.TrimSpace(p.Material)
	p.CategoryKey = strings.TrimSpace(p.CategoryKey)
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)
	if p.Name == "" || p.Material == "" || p.CategoryKey == "" || p.PhotoURL == "" || p.Price <= 0 {
		return nil, domain.Invalid("name, price, material, category and photo are required")
	}
	return s.repo.Upsert(ctx, p)
}
