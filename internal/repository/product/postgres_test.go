package product

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"luzeouro/internal/domain"
)

func TestListQueryFilters(t *testing.T) {
	q, args := listQuery(domain.ProductFilter{CategoryKey: "aneis", Material: "Ouro", Band: domain.Price500To1000})
	for _, want := range []string{"category_key = $1", "lower(material) = lower($2)", "price_cents > $3", "price_cents <= $4"} {
		if !strings.Contains(q, want) {
			t.Fatalf("query %q missing %q", q, want)
		}
	}
	if len(args) != 4 || args[2] != int64(50000) || args[3] != int64(100000) {
		t.Fatalf("unexpected args %v", args)
	}

	q, args = listQuery(domain.ProductFilter{Band: domain.PriceAbove1500})
	if strings.Contains(q, "<=") || len(args) != 1 {
		t.Fatalf("open band should have no upper bound: %q %v", q, args)
	}

	q, args = listQuery(domain.ProductFilter{})
	if strings.Contains(q, "WHERE") || len(args) != 0 {
		t.Fatalf("empty filter should not add conditions: %q", q)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM products WHERE id::text = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price_cents", "material", "category_key", "photo_url", "created_at"}))

	repo := NewPostgres(mock, nil)
	if _, err := repo.GetByID(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresListScansMoney(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM products WHERE category_key = \$1`).
		WithArgs("colares").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price_cents", "material", "category_key", "photo_url", "created_at"}).
			AddRow("p1", "Colar Luz", int64(129990), "Ouro", "colares", "colar.jpg", now))

	repo := NewPostgres(mock, nil)
	list, err := repo.List(context.Background(), domain.ProductFilter{CategoryKey: "colares"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Price != 129990 || list[0].Price.String() != "1299.90" {
		t.Fatalf("unexpected products %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
