package product

import (
	"context"
	"errors"
	"testing"

	"luzeouro/internal/domain"
)

type stubRepo struct {
	lastFilter domain.ProductFilter
	upserted   []domain.Product
	materials  []string
}

func (s *stubRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	s.lastFilter = f
	return []domain.Product{}, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	return &domain.Product{ID: id}, nil
}

func (s *stubRepo) Materials(_ context.Context) ([]string, error) {
	return s.materials, nil
}

func (s *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.upserted = append(s.upserted, p)
	p.ID = "new"
	return &p, nil
}

type stubCategories struct{}

func (stubCategories) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{{Key: "aneis", Name: "Anéis"}}, nil
}

func TestListValidatesBand(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, stubCategories{})

	if _, err := svc.List(context.Background(), domain.ProductFilter{Band: "cheap"}); !errors.Is(err, ErrUnknownPriceBand) {
		t.Fatalf("expected ErrUnknownPriceBand, got %v", err)
	}
	if _, err := svc.List(context.Background(), domain.ProductFilter{CategoryKey: " aneis ", Band: domain.PriceAbove1500}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastFilter.CategoryKey != "aneis" || repo.lastFilter.Band != domain.PriceAbove1500 {
		t.Fatalf("unexpected filter %+v", repo.lastFilter)
	}
}

func TestFilters(t *testing.T) {
	svc := New(&stubRepo{materials: []string{"Ouro", "Prata"}}, stubCategories{})
	facets, err := svc.Filters(context.Background())
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if len(facets.Categories) != 1 || len(facets.Materials) != 2 || len(facets.PriceBands) != 4 {
		t.Fatalf("unexpected facets %+v", facets)
	}
}

func TestCreateRequiresAllFields(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, stubCategories{})
	_, err := svc.Create(context.Background(), domain.Product{Name: "Anel", Price: 1000, Material: "Ouro", CategoryKey: "aneis"})
	if err == nil || err.Error() != "name, price, material, category and photo are required" {
		t.Fatalf("expected required fields error, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Fatalf("invalid product must not be stored")
	}
	created, err := svc.Create(context.Background(), domain.Product{ID: "ignored", Name: "Anel", Price: 1000, Material: "Ouro", CategoryKey: "aneis", PhotoURL: "anel.jpg"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "new" || repo.upserted[0].ID != "" {
		t.Fatalf("expected a fresh id, got %+v", repo.upserted[0])
	}
}

func TestUpsertKeepsID(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, stubCategories{})
	if _, err := svc.Upsert(context.Background(), domain.Product{ID: " p-1 ", Name: "Anel", Price: 0, Material: "Ouro", CategoryKey: "aneis", PhotoURL: "a.jpg"}); err == nil {
		t.Fatalf("expected zero price to be rejected")
	}
	if _, err := svc.Upsert(context.Background(), domain.Product{ID: " p-1 ", Name: "Anel", Price: 1000, Material: "Ouro", CategoryKey: "aneis", PhotoURL: "a.jpg"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(repo.upserted) != 1 || repo.upserted[0].ID != "p-1" {
		t.Fatalf("expected id to be kept, got %+v", repo.upserted)
	}
}
